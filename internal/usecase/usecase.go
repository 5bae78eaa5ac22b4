package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/armen4ik0/shoes-shop-app1/internal/dbstorage"
	"github.com/armen4ik0/shoes-shop-app1/internal/models"
	"github.com/armen4ik0/shoes-shop-app1/internal/types"
)

var ErrInvalidInput = errors.New("некорректные данные формы")

// requiredProductFields — обязательные поля формы товара; описание и фото
// могут быть пустыми.
var requiredProductFields = []string{
	"article", "name", "category", "manufacturer",
	"supplier", "price", "unit", "stock", "discount",
}

// ValidateProduct checks the raw form fields and assembles a product row.
// Any violation aborts the whole write, nothing is saved partially.
func ValidateProduct(in types.ProductInput) (models.Product, error) {
	var product models.Product

	fields := map[string]string{
		"article":      strings.TrimSpace(in.Article),
		"name":         strings.TrimSpace(in.Name),
		"category":     strings.TrimSpace(in.Category),
		"manufacturer": strings.TrimSpace(in.Manufacturer),
		"supplier":     strings.TrimSpace(in.Supplier),
		"price":        strings.TrimSpace(in.Price),
		"unit":         strings.TrimSpace(in.Unit),
		"stock":        strings.TrimSpace(in.Stock),
		"discount":     strings.TrimSpace(in.Discount),
	}
	for _, name := range requiredProductFields {
		if fields[name] == "" {
			return product, fmt.Errorf("%w: поле '%s' обязательно", ErrInvalidInput, name)
		}
	}

	price, err := decimal.NewFromString(fields["price"])
	if err != nil {
		return product, fmt.Errorf("%w: проверьте значение цены", ErrInvalidInput)
	}
	if price.IsNegative() {
		return product, fmt.Errorf("%w: цена не может быть отрицательной", ErrInvalidInput)
	}
	stock, err := strconv.Atoi(fields["stock"])
	if err != nil {
		return product, fmt.Errorf("%w: проверьте значение количества", ErrInvalidInput)
	}
	if stock < 0 {
		return product, fmt.Errorf("%w: количество не может быть отрицательным", ErrInvalidInput)
	}
	discount, err := strconv.Atoi(fields["discount"])
	if err != nil {
		return product, fmt.Errorf("%w: проверьте значение скидки", ErrInvalidInput)
	}
	if discount < 0 || discount > 100 {
		return product, fmt.Errorf("%w: скидка должна быть от 0 до 100%%", ErrInvalidInput)
	}

	product = models.Product{
		Article:      fields["article"],
		Name:         fields["name"],
		Category:     fields["category"],
		Description:  strings.TrimSpace(in.Description),
		Manufacturer: fields["manufacturer"],
		Supplier:     fields["supplier"],
		Price:        price,
		Unit:         fields["unit"],
		Stock:        stock,
		Discount:     discount,
		PhotoPath:    strings.TrimSpace(in.PhotoPath),
	}
	return product, nil
}

// SaveProduct validates the form and inserts a new product.
func SaveProduct(ctx context.Context, storage *dbstorage.DBStorage, in types.ProductInput) error {
	product, err := ValidateProduct(in)
	if err != nil {
		return err
	}
	return storage.CreateProduct(ctx, product)
}

// UpdateProduct validates the form and overwrites the product row keyed by
// its article.
func UpdateProduct(ctx context.Context, storage *dbstorage.DBStorage, in types.ProductInput) error {
	product, err := ValidateProduct(in)
	if err != nil {
		return err
	}
	return storage.UpdateProduct(ctx, product)
}

// BuildOrder maps the order form onto a row. Dates and codes stay free text,
// only the status is checked against the fixed set. A non-empty pickup
// address is resolved the same way the importer does it; an unknown address
// is an error here — the operator typed it by hand.
func BuildOrder(ctx context.Context, storage *dbstorage.DBStorage, in types.OrderInput) (models.Order, error) {
	var order models.Order

	if in.Status != "" && !models.ValidOrderStatus(in.Status) {
		return order, fmt.Errorf("%w: недопустимый статус заказа '%s'", ErrInvalidInput, in.Status)
	}

	var pickupPointID *uint
	if addr := strings.TrimSpace(in.PickupAddress); addr != "" {
		point, err := storage.FindPickupPointByAddress(ctx, addr)
		if err != nil {
			if errors.Is(err, dbstorage.ErrPickupPointNotFound) {
				return order, fmt.Errorf("%w: пункт выдачи не найден по адресу '%s'", ErrInvalidInput, addr)
			}
			return order, err
		}
		pickupPointID = &point.ID
	}

	order = models.Order{
		Number:        in.Number,
		Articles:      in.Articles,
		OrderDate:     in.OrderDate,
		DeliveryDate:  in.DeliveryDate,
		PickupPointID: pickupPointID,
		ClientName:    in.ClientName,
		PickupCode:    in.PickupCode,
		Status:        in.Status,
	}
	return order, nil
}

func SaveOrder(ctx context.Context, storage *dbstorage.DBStorage, in types.OrderInput) error {
	order, err := BuildOrder(ctx, storage, in)
	if err != nil {
		return err
	}
	return storage.CreateOrder(ctx, order)
}

func UpdateOrder(ctx context.Context, storage *dbstorage.DBStorage, id uint, in types.OrderInput) error {
	order, err := BuildOrder(ctx, storage, in)
	if err != nil {
		return err
	}
	order.ID = id
	return storage.UpdateOrder(ctx, order)
}
