package types

import "github.com/golang-jwt/jwt/v4"

type Claims struct {
	Login string `json:"login"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type LoginResponse struct {
	AuthToken string `json:"auth_token"`
}

// SupplierAll — значение фильтра поставщика "без ограничения".
const SupplierAll = "Все поставщики"

// StatusAll — значение фильтра статуса заказа "без ограничения".
const StatusAll = "Все статусы"

type SortMode string

const (
	SortNone      SortMode = ""
	SortStockAsc  SortMode = "stock_asc"
	SortStockDesc SortMode = "stock_desc"
)

// CatalogQuery describes the catalog screen filters: free-text search,
// supplier filter and stock sort mode.
type CatalogQuery struct {
	Search   string
	Supplier string
	Sort     SortMode
}

// ProductInput carries raw form fields of the product create/edit dialog.
// Numeric fields stay strings until validation.
type ProductInput struct {
	Article      string `json:"article"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Manufacturer string `json:"manufacturer"`
	Supplier     string `json:"supplier"`
	Price        string `json:"price"`
	Unit         string `json:"unit"`
	Stock        string `json:"stock"`
	Discount     string `json:"discount"`
	PhotoPath    string `json:"photo_path"`
}

// OrderInput carries fields of the order create/edit dialog. Dates and codes
// are free text, the pickup point is referenced by its address.
type OrderInput struct {
	Number        int    `json:"number"`
	Articles      string `json:"articles"`
	OrderDate     string `json:"order_date"`
	DeliveryDate  string `json:"delivery_date"`
	PickupAddress string `json:"pickup_address"`
	ClientName    string `json:"client_name"`
	PickupCode    string `json:"pickup_code"`
	Status        string `json:"status"`
}

// OrderView is one row of the order list: order fields plus the joined
// pickup point address (empty when the reference is null).
type OrderView struct {
	ID            uint   `json:"id"`
	Number        int    `json:"number"`
	ClientName    string `json:"client_name"`
	Articles      string `json:"articles"`
	OrderDate     string `json:"order_date"`
	DeliveryDate  string `json:"delivery_date"`
	PickupAddress string `json:"pickup_address"`
	PickupCode    string `json:"pickup_code"`
	Status        string `json:"status"`
}

// ProductCard is the catalog card representation: raw product fields plus
// the derived presentation values the card is rendered from.
type ProductCard struct {
	Article      string `json:"article"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Manufacturer string `json:"manufacturer"`
	Supplier     string `json:"supplier"`
	Unit         string `json:"unit"`
	Stock        int    `json:"stock"`
	Discount     int    `json:"discount"`
	Price        string `json:"price"`
	OldPrice     string `json:"old_price,omitempty"`
	HighDiscount bool   `json:"high_discount"`
	OutOfStock   bool   `json:"out_of_stock"`
}
