package dbstorage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/armen4ik0/shoes-shop-app1/internal/models"
	"github.com/armen4ik0/shoes-shop-app1/internal/types"
)

// ListOrders returns orders newest-number first with the pickup address
// joined in. An empty status or the "all statuses" sentinel applies no
// status predicate.
func (ds *DBStorage) ListOrders(ctx context.Context, status string) ([]types.OrderView, error) {
	db := ds.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.id, orders.number, orders.client_name, orders.articles, " +
			"orders.order_date, orders.delivery_date, pickup_points.address as pickup_address, " +
			"orders.pickup_code, orders.status").
		Joins("left join pickup_points on pickup_points.id = orders.pickup_point_id").
		Order("orders.number DESC")

	if status != "" && status != types.StatusAll {
		db = db.Where("orders.status = ?", status)
	}

	orders := make([]types.OrderView, 0)
	err := db.Scan(&orders).Error
	return orders, err
}

func (ds *DBStorage) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	db := ds.DB.WithContext(ctx)
	var order models.Order
	err := db.First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (ds *DBStorage) CreateOrder(ctx context.Context, order models.Order) error {
	db := ds.DB.WithContext(ctx)
	return db.Create(&order).Error
}

// UpdateOrder overwrites the order fields by id. The pickup point reference
// is changed only when the new order carries one.
func (ds *DBStorage) UpdateOrder(ctx context.Context, order models.Order) error {
	db := ds.DB.WithContext(ctx)
	var current models.Order
	err := db.First(&current, order.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	current.Number = order.Number
	current.Articles = order.Articles
	current.OrderDate = order.OrderDate
	current.DeliveryDate = order.DeliveryDate
	current.ClientName = order.ClientName
	current.PickupCode = order.PickupCode
	current.Status = order.Status
	if order.PickupPointID != nil {
		current.PickupPointID = order.PickupPointID
	}
	return db.Save(&current).Error
}

// DeleteOrder removes exactly the row with the given id.
func (ds *DBStorage) DeleteOrder(ctx context.Context, id uint) error {
	tx := ds.DB.WithContext(ctx).Delete(&models.Order{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ImportOrder inserts an order unless the number is already known.
func (ds *DBStorage) ImportOrder(ctx context.Context, order models.Order) (bool, error) {
	tx := ds.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "number"}},
			DoNothing: true,
		}).
		Create(&order)
	return tx.RowsAffected > 0, tx.Error
}
