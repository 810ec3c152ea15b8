package model

import "github.com/shopspring/decimal"

// ItemCategory classifies a priced item in the catalog.
type ItemCategory string

const (
    CategoryDrink   ItemCategory = "drink"
    CategoryService ItemCategory = "service"
    CategoryFee     ItemCategory = "fee"
)

// Valid reports whether c is one of the known categories.
func (c ItemCategory) Valid() bool {
    switch c {
    case CategoryDrink, CategoryService, CategoryFee:
        return true
    }
    return false
}

// Item is an entry of the club price list (`items` table).  Charges copy the
// computed amount at creation time, so editing Price never rewrites history.
//
// Fields:
//  ID        – stable string key (e.g. "cerveza").
//  Name      – display name.
//  Icon      – optional glyph shown next to the name.
//  Price     – unit price, non-negative.
//  Category  – drink, service or fee.
//  SortOrder – ascending display order inside a category.
type Item struct {
    ID        string          `json:"id"`         // items.id
    Name      string          `json:"name"`       // items.name
    Icon      *string         `json:"icon"`       // items.icon (nullable)
    Price     decimal.Decimal `json:"price"`      // items.price
    Category  ItemCategory    `json:"category"`   // items.category
    SortOrder int             `json:"sort_order"` // items.sort_order
}
