package dbstorage

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/armen4ik0/shoes-shop-app1/internal/models"
	"github.com/armen4ik0/shoes-shop-app1/internal/types"
)

// searchColumns — шесть текстовых колонок, по которым работает поиск.
var searchColumns = []string{
	"article", "name", "category", "manufacturer", "supplier", "description",
}

// ListProducts builds the catalog query. Every whitespace-separated search
// term must match at least one of the six text columns (case-insensitive
// substring), different terms may match different columns. The supplier
// filter is skipped for the "all suppliers" sentinel. Without an explicit
// stock sort the rows come back ordered by article.
func (ds *DBStorage) ListProducts(ctx context.Context, q types.CatalogQuery) ([]models.Product, error) {
	db := ds.DB.WithContext(ctx).Model(&models.Product{})

	if q.Supplier != "" && q.Supplier != types.SupplierAll {
		db = db.Where("supplier = ?", q.Supplier)
	}

	// AND между словами, OR по колонкам внутри слова
	for _, term := range strings.Fields(strings.ToLower(q.Search)) {
		pattern := "%" + term + "%"
		cond := ds.DB.Where("LOWER("+searchColumns[0]+") LIKE ?", pattern)
		for _, col := range searchColumns[1:] {
			cond = cond.Or("LOWER("+col+") LIKE ?", pattern)
		}
		db = db.Where(cond)
	}

	switch q.Sort {
	case types.SortStockAsc:
		db = db.Order("stock ASC")
	case types.SortStockDesc:
		db = db.Order("stock DESC")
	default:
		db = db.Order("article")
	}

	products := make([]models.Product, 0)
	err := db.Find(&products).Error
	return products, err
}

func (ds *DBStorage) GetProduct(ctx context.Context, article string) (*models.Product, error) {
	db := ds.DB.WithContext(ctx)
	var product models.Product
	err := db.First(&product, "article = ?", article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (ds *DBStorage) CreateProduct(ctx context.Context, product models.Product) error {
	db := ds.DB.WithContext(ctx)
	var exists bool
	db.Model(&models.Product{}).
		Select("count(*) > 0").
		Where("article = ?", product.Article).
		Find(&exists)
	if exists {
		return ErrProductExists
	}

	return db.Create(&product).Error
}

// UpdateProduct overwrites every editable field of the row keyed by article.
// The article itself is immutable after creation.
func (ds *DBStorage) UpdateProduct(ctx context.Context, product models.Product) error {
	db := ds.DB.WithContext(ctx)
	var current models.Product
	err := db.First(&current, "article = ?", product.Article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	current.Name = product.Name
	current.Category = product.Category
	current.Description = product.Description
	current.Manufacturer = product.Manufacturer
	current.Supplier = product.Supplier
	current.Price = product.Price
	current.Unit = product.Unit
	current.Stock = product.Stock
	current.Discount = product.Discount
	current.PhotoPath = product.PhotoPath
	return db.Save(&current).Error
}

// ImportProduct inserts a product unless one with the same article exists.
// Returns true when the row was actually inserted.
func (ds *DBStorage) ImportProduct(ctx context.Context, product models.Product) (bool, error) {
	tx := ds.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "article"}},
			DoNothing: true,
		}).
		Create(&product)
	return tx.RowsAffected > 0, tx.Error
}

// ImportUser inserts a user unless the login is already taken.
func (ds *DBStorage) ImportUser(ctx context.Context, user models.User) (bool, error) {
	tx := ds.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "login"}},
			DoNothing: true,
		}).
		Create(&user)
	return tx.RowsAffected > 0, tx.Error
}

// ImportPickupPoint inserts a pickup point unless the address exists.
func (ds *DBStorage) ImportPickupPoint(ctx context.Context, point models.PickupPoint) (bool, error) {
	tx := ds.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "address"}},
			DoNothing: true,
		}).
		Create(&point)
	return tx.RowsAffected > 0, tx.Error
}
