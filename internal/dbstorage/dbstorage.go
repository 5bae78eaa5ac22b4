package dbstorage

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/armen4ik0/shoes-shop-app1/internal/models"
)

type DBStorage struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDB(dsn string, logger *log.Logger) (DBStorage, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return DBStorage{}, err
	}
	dbConnect, err := gorm.Open(
		postgres.New(
			postgres.Config{Conn: conn}),
		&gorm.Config{},
	)
	return DBStorage{DB: dbConnect, Logger: logger}, err
}

func (ds *DBStorage) Close() error {
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitDB creates the four tables when absent. A migration failure is logged
// and swallowed: the tables may already exist in an older shape, the
// connection itself stays usable.
func (ds *DBStorage) InitDB() {
	err := ds.DB.AutoMigrate(
		&models.User{},
		&models.PickupPoint{},
		&models.Product{},
		&models.Order{},
	)
	if err != nil {
		ds.Logger.Printf("схема не создана, продолжаю: %v", err)
	}
}

func (ds *DBStorage) CreateUser(ctx context.Context, user models.User) error {
	db := ds.DB.WithContext(ctx)
	var exists bool
	db.Model(&models.User{}).
		Select("count(*) > 0").
		Where("login = ?", user.Login).
		Find(&exists)
	if exists {
		return ErrUserAlreadyExists
	}

	return db.Create(&user).Error
}

func (ds *DBStorage) GetUser(ctx context.Context, login string) (*models.User, error) {
	db := ds.DB.WithContext(ctx)
	var user models.User
	err := db.First(&user, "login = ?", login).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidLoginPassword
	}
	return &user, err
}

func (ds *DBStorage) ListPickupPoints(ctx context.Context) ([]models.PickupPoint, error) {
	db := ds.DB.WithContext(ctx)
	points := make([]models.PickupPoint, 0)
	err := db.Order("address").Find(&points).Error
	return points, err
}

// FindPickupPointByAddress ищет пункт выдачи по адресу без лишних пробелов.
func (ds *DBStorage) FindPickupPointByAddress(ctx context.Context, address string) (*models.PickupPoint, error) {
	db := ds.DB.WithContext(ctx)
	var point models.PickupPoint
	err := db.First(&point, "TRIM(address) = ?", strings.TrimSpace(address)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPickupPointNotFound
	}
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// ListSuppliers returns distinct product suppliers for the filter combo.
func (ds *DBStorage) ListSuppliers(ctx context.Context) ([]string, error) {
	db := ds.DB.WithContext(ctx)
	suppliers := make([]string, 0)
	err := db.Model(&models.Product{}).
		Distinct("supplier").
		Order("supplier").
		Pluck("supplier", &suppliers).Error
	return suppliers, err
}
