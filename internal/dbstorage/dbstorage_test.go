package dbstorage

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/armen4ik0/shoes-shop-app1/internal/models"
	"github.com/armen4ik0/shoes-shop-app1/internal/types"
)

func newTestStorage(t *testing.T) *DBStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "shop.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)

	storage := &DBStorage{
		DB:     db,
		Logger: log.New(io.Discard, "", 0),
	}
	storage.InitDB()
	return storage
}

func seedProduct(t *testing.T, ds *DBStorage, p models.Product) {
	t.Helper()
	require.NoError(t, ds.CreateProduct(context.Background(), p))
}

func testProduct(article string) models.Product {
	return models.Product{
		Article:      article,
		Name:         "Ботинки демисезонные",
		Category:     "обувь",
		Manufacturer: "Rieker",
		Supplier:     "ООО Обувь-Торг",
		Price:        decimal.NewFromInt(2500),
		Unit:         "пара",
		Stock:        10,
		Discount:     0,
	}
}

func TestListProducts_MultiTermSearch(t *testing.T) {
	ds := newTestStorage(t)
	ctx := context.Background()

	both := testProduct("A112")
	both.Category = "туфли женские"
	both.Manufacturer = "Kari"
	seedProduct(t, ds, both)

	oneTerm := testProduct("B345")
	oneTerm.Category = "туфли мужские"
	oneTerm.Manufacturer = "Rieker"
	seedProduct(t, ds, oneTerm)

	// оба слова находятся, но в разных колонках
	found, err := ds.ListProducts(ctx, types.CatalogQuery{Search: "туфли kari"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "A112", found[0].Article)

	// одно слово совпало, второе нигде не найдено
	found, err = ds.ListProducts(ctx, types.CatalogQuery{Search: "туфли несуществующее"})
	require.NoError(t, err)
	assert.Empty(t, found)

	// регистронезависимость
	found, err = ds.ListProducts(ctx, types.CatalogQuery{Search: "KARI"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "A112", found[0].Article)

	// пустой поиск не добавляет условий
	found, err = ds.ListProducts(ctx, types.CatalogQuery{})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestListProducts_SupplierSentinel(t *testing.T) {
	ds := newTestStorage(t)
	ctx := context.Background()

	first := testProduct("A100")
	first.Supplier = "ИП Сидоров"
	seedProduct(t, ds, first)
	seedProduct(t, ds, testProduct("A200"))

	all, err := ds.ListProducts(ctx, types.CatalogQuery{Supplier: types.SupplierAll})
	require.NoError(t, err)
	noFilter, err := ds.ListProducts(ctx, types.CatalogQuery{})
	require.NoError(t, err)
	assert.Equal(t, noFilter, all)

	filtered, err := ds.ListProducts(ctx, types.CatalogQuery{Supplier: "ИП Сидоров"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "A100", filtered[0].Article)
}

func TestListProducts_Sort(t *testing.T) {
	ds := newTestStorage(t)
	ctx := context.Background()

	low := testProduct("C300")
	low.Stock = 1
	seedProduct(t, ds, low)
	high := testProduct("A100")
	high.Stock = 50
	seedProduct(t, ds, high)
	mid := testProduct("B200")
	mid.Stock = 7
	seedProduct(t, ds, mid)

	asc, err := ds.ListProducts(ctx, types.CatalogQuery{Sort: types.SortStockAsc})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 7, 50}, stocks(asc))

	desc, err := ds.ListProducts(ctx, types.CatalogQuery{Sort: types.SortStockDesc})
	require.NoError(t, err)
	assert.Equal(t, []int{50, 7, 1}, stocks(desc))

	// без явной сортировки — по артикулу
	byArticle, err := ds.ListProducts(ctx, types.CatalogQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A100", "B200", "C300"}, articles(byArticle))
}

func stocks(products []models.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.Stock)
	}
	return out
}

func articles(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Article)
	}
	return out
}

func TestCreateProduct_Duplicate(t *testing.T) {
	ds := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, ds.CreateProduct(ctx, testProduct("A112")))
	err := ds.CreateProduct(ctx, testProduct("A112"))
	assert.ErrorIs(t, err, ErrProductExists)
}

func TestUpdateProduct(t *testing.T) {
	ds := newTestStorage(t)
	ctx := context.Background()

	seedProduct(t, ds, testProduct("A112"))

	updated := testProduct("A112")
	updated.Name = "Ботинки зимние"
	updated.Stock = 0
	updated.Discount = 20
	require.NoError(t, ds.UpdateProduct(ctx, updated))

	got, err := ds.GetProduct(ctx, "A112")
	require.NoError(t, err)
	assert.Equal(t, "Ботинки зимние", got.Name)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, 20, got.Discount)

	missing := testProduct("ZZZ")
	assert.ErrorIs(t, ds.UpdateProduct(ctx, missing), ErrProductNotFound)
}

func TestImportProduct_Idempotent(t *testing.T) {
	ds := newTestStorage(t)
	ctx := context.Background()

	created, err := ds.ImportProduct(ctx, testProduct("A112"))
	require.NoError(t, err)
	assert.True(t, created)

	changed := testProduct("A112")
	changed.Name = "Другое имя"
	created, err = ds.ImportProduct(ctx, changed)
	require.NoError(t, err)
	assert.False(t, created)

	// первая запись победила
	got, err := ds.GetProduct(ctx, "A112")
	require.NoError(t, err)
	assert.Equal(t, "Ботинки демисезонные", got.Name)
}

func TestFindPickupPointByAddress_Trimmed(t *testing.T) {
	ds := newTestStorage(t)
	ctx := context.Background()

	_, err := ds.ImportPickupPoint(ctx, models.PickupPoint{Address: "  г. Москва, ул. Ленина, 5  "})
	require.NoError(t, err)

	point, err := ds.FindPickupPointByAddress(ctx, "г. Москва, ул. Ленина, 5")
	require.NoError(t, err)
	assert.NotZero(t, point.ID)

	_, err = ds.FindPickupPointByAddress(ctx, "г. Тверь, ул. Новая, 1")
	assert.ErrorIs(t, err, ErrPickupPointNotFound)
}

func TestDeleteOrder(t *testing.T) {
	ds := newTestStorage(t)
	ctx := context.Background()

	created, err := ds.ImportPickupPoint(ctx, models.PickupPoint{Address: "г. Москва, ул. Ленина, 5"})
	require.NoError(t, err)
	require.True(t, created)
	seedProduct(t, ds, testProduct("A112"))

	require.NoError(t, ds.CreateOrder(ctx, models.Order{Number: 101, Status: models.StatusProcessing}))
	require.NoError(t, ds.CreateOrder(ctx, models.Order{Number: 102, Status: models.StatusInTransit}))

	orders, err := ds.ListOrders(ctx, types.StatusAll)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	require.NoError(t, ds.DeleteOrder(ctx, orders[0].ID))

	// удалилась ровно одна строка, соседние таблицы не тронуты
	orders, err = ds.ListOrders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	var pointCount, productCount int64
	ds.DB.Model(&models.PickupPoint{}).Count(&pointCount)
	ds.DB.Model(&models.Product{}).Count(&productCount)
	assert.EqualValues(t, 1, pointCount)
	assert.EqualValues(t, 1, productCount)

	assert.ErrorIs(t, ds.DeleteOrder(ctx, 9999), ErrOrderNotFound)
}

func TestListOrders_StatusFilter(t *testing.T) {
	ds := newTestStorage(t)
	ctx := context.Background()

	_, err := ds.ImportPickupPoint(ctx, models.PickupPoint{Address: "г. Москва, ул. Ленина, 5"})
	require.NoError(t, err)
	point, err := ds.FindPickupPointByAddress(ctx, "г. Москва, ул. Ленина, 5")
	require.NoError(t, err)

	require.NoError(t, ds.CreateOrder(ctx, models.Order{
		Number:        101,
		Status:        models.StatusProcessing,
		PickupPointID: &point.ID,
	}))
	require.NoError(t, ds.CreateOrder(ctx, models.Order{Number: 102, Status: models.StatusDelivered}))

	delivered, err := ds.ListOrders(ctx, models.StatusDelivered)
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, 102, delivered[0].Number)
	assert.Empty(t, delivered[0].PickupAddress)

	all, err := ds.ListOrders(ctx, types.StatusAll)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// новые номера сверху
	assert.Equal(t, 102, all[0].Number)
	// адрес подтянут из пункта выдачи
	assert.Equal(t, "г. Москва, ул. Ленина, 5", all[1].PickupAddress)
}
