package models

import "github.com/shopspring/decimal"

// Роли пользователей.
const (
	RoleGuest   = "guest"
	RoleClient  = "client"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Статусы заказов.
const (
	StatusProcessing = "Обработка"
	StatusInTransit  = "В пути"
	StatusDelivered  = "Доставлен"
	StatusCancelled  = "Отменен"
)

var OrderStatuses = []string{
	StatusProcessing,
	StatusInTransit,
	StatusDelivered,
	StatusCancelled,
}

// Единицы измерения товаров.
var Units = []string{"пара", "пары", "шт", "упаковка"}

// ValidOrderStatus reports whether status belongs to the fixed status set.
func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleGuest, RoleClient, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Login    string `gorm:"uniqueIndex:idx_logins" json:"login"`
	Password string `json:"password,omitempty"`
}

type PickupPoint struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Address string `gorm:"uniqueIndex:idx_addresses" json:"address"`
}

type Product struct {
	ID           uint            `gorm:"primaryKey" json:"-"`
	Article      string          `gorm:"uniqueIndex:idx_articles" json:"article"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Manufacturer string          `json:"manufacturer"`
	Supplier     string          `json:"supplier"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Unit         string          `json:"unit"`
	Stock        int             `json:"stock"`
	Discount     int             `json:"discount"`
	PhotoPath    string          `json:"photo_path"`
}

type Order struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Number        int          `gorm:"uniqueIndex:idx_numbers" json:"number"`
	Articles      string       `json:"articles"`
	OrderDate     string       `json:"order_date"`
	DeliveryDate  string       `json:"delivery_date"`
	PickupPointID *uint        `json:"pickup_point_id,omitempty"`
	PickupPoint   *PickupPoint `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	ClientName    string       `json:"client_name"`
	PickupCode    string       `json:"pickup_code"`
	Status        string       `json:"status"`
}
