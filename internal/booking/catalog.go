package booking

import (
    "github.com/shopspring/decimal"

    "github.com/lagunartea/club-ledger/internal/model"
)

// Catalog ids of the fees charged by reservations.
const (
    ItemMemberDinerFee    = "comensal_socio"
    ItemNonMemberDinerFee = "comensal_no_socio"
    ItemCourtLightFee     = "luz_fronton"
)

// PriceLookup resolves catalog items by id.  ok is false for unknown ids.
type PriceLookup interface {
    Item(id string) (model.Item, bool)
}

// Prices is an immutable PriceLookup built from a price list snapshot.
type Prices map[string]model.Item

// NewPrices indexes items by id.  Later duplicates win.
func NewPrices(items []model.Item) Prices {
    p := make(Prices, len(items))
    for _, it := range items {
        p[it.ID] = it
    }
    return p
}

// Item implements PriceLookup.
func (p Prices) Item(id string) (model.Item, bool) {
    it, ok := p[id]
    return it, ok
}

// priceOf returns the unit price of id, or zero when the item is absent.
func priceOf(prices PriceLookup, id string) decimal.Decimal {
    if prices == nil {
        return decimal.Zero
    }
    if it, ok := prices.Item(id); ok {
        return it.Price
    }
    return decimal.Zero
}
