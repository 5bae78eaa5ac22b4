package usecase

import (
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/armen4ik0/shoes-shop-app1/internal/models"
	"github.com/armen4ik0/shoes-shop-app1/internal/types"
)

// Скидка выше этого порога подсвечивает карточку.
const highDiscountThreshold = 15

var hundred = decimal.NewFromInt(100)

// PriceTag holds the displayed prices: with a discount both the old and the
// discounted price are shown, otherwise only the base price.
type PriceTag struct {
	Current string
	Old     string
}

// FormatPrice computes the displayed prices with exact decimal arithmetic.
// For discount D the new price is P × (1 − D/100), both rounded to two
// decimal places.
func FormatPrice(price decimal.Decimal, discount int) PriceTag {
	base := price.Round(2).StringFixed(2)
	if discount <= 0 {
		return PriceTag{Current: base}
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(discount))).Div(hundred)
	return PriceTag{
		Current: price.Mul(factor).Round(2).StringFixed(2),
		Old:     base,
	}
}

// Card derives the catalog card of a product: formatted prices plus the
// highlight flags the original styling was driven by.
func Card(p models.Product) types.ProductCard {
	tag := FormatPrice(p.Price, p.Discount)
	return types.ProductCard{
		Article:      p.Article,
		Name:         p.Name,
		Category:     p.Category,
		Description:  p.Description,
		Manufacturer: p.Manufacturer,
		Supplier:     p.Supplier,
		Unit:         p.Unit,
		Stock:        p.Stock,
		Discount:     p.Discount,
		Price:        tag.Current,
		OldPrice:     tag.Old,
		HighDiscount: p.Discount > highDiscountThreshold,
		OutOfStock:   p.Stock == 0,
	}
}

func Cards(products []models.Product) []types.ProductCard {
	cards := make([]types.ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, Card(p))
	}
	return cards
}

// ResolvePhoto picks the product image to serve: the stored path as is, the
// base name re-joined under the images directory, the base name with .jpg
// appended when it has no extension, and finally the shared placeholder.
func ResolvePhoto(photoPath, imagesDir, placeholder string) string {
	var candidates []string
	if photoPath != "" {
		candidates = append(candidates, photoPath)
		base := filepath.Base(photoPath)
		if base != "." && base != string(filepath.Separator) {
			candidates = append(candidates, filepath.Join(imagesDir, base))
			if filepath.Ext(base) == "" {
				candidates = append(candidates, filepath.Join(imagesDir, base+".jpg"))
			}
		}
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return placeholder
}
