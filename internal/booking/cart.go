package booking

import (
    "fmt"
    "slices"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/shopspring/decimal"

    "github.com/lagunartea/club-ledger/internal/model"
)

// MaxLineQuantity caps the units of a single checkout line.
const MaxLineQuantity = 99

// CartLine is one item of a cart and how many units were picked.
type CartLine struct {
    ItemID   string `json:"item_id" validate:"required"`
    Quantity int    `json:"quantity" validate:"min=1,max=99"`
}

// Cart accumulates one in-progress purchase for a member.  Lines keep the
// order in which items were first added; an item whose quantity drops to
// zero is removed.  A Cart is not safe for concurrent use.
type Cart struct {
    memberID uint64
    order    []string
    qty      map[string]int

    Now   func() time.Time
    NewID func() string
}

// NewCart returns an empty cart with no member selected.
func NewCart() *Cart {
    return &Cart{qty: make(map[string]int)}
}

// SelectMember sets the member the purchase is charged to.  Zero clears it.
func (c *Cart) SelectMember(id uint64) { c.memberID = id }

// MemberID returns the selected member, zero when none.
func (c *Cart) MemberID() uint64 { return c.memberID }

// Increment adds one unit of itemID.
func (c *Cart) Increment(itemID string) { c.Add(itemID, 1) }

// Add adds n units of itemID.  Non-positive n is a no-op.
func (c *Cart) Add(itemID string, n int) {
    if n < 1 {
        return
    }
    if c.qty == nil {
        c.qty = make(map[string]int)
    }
    if _, ok := c.qty[itemID]; !ok {
        c.order = append(c.order, itemID)
    }
    c.qty[itemID] += n
}

// Decrement removes one unit of itemID, dropping the line at zero.  It is a
// no-op for items not in the cart.
func (c *Cart) Decrement(itemID string) {
    n, ok := c.qty[itemID]
    if !ok {
        return
    }
    if n <= 1 {
        delete(c.qty, itemID)
        c.order = slices.DeleteFunc(c.order, func(id string) bool { return id == itemID })
        return
    }
    c.qty[itemID] = n - 1
}

// Quantity returns the units of itemID and whether the item has a line.
func (c *Cart) Quantity(itemID string) (int, bool) {
    n, ok := c.qty[itemID]
    return n, ok
}

// Len returns the number of lines.
func (c *Cart) Len() int { return len(c.order) }

// Lines returns the cart content in insertion order.
func (c *Cart) Lines() []CartLine {
    out := make([]CartLine, 0, len(c.order))
    for _, id := range c.order {
        out = append(out, CartLine{ItemID: id, Quantity: c.qty[id]})
    }
    return out
}

// Total sums quantity × unit price.  Unknown items contribute nothing.
func (c *Cart) Total(prices PriceLookup) decimal.Decimal {
    total := decimal.Zero
    for _, id := range c.order {
        total = total.Add(priceOf(prices, id).Mul(decimal.NewFromInt(int64(c.qty[id]))))
    }
    return total
}

// Describe renders the lines as "2x Cerveza, 1x Vino Tinto".
func (c *Cart) Describe(prices PriceLookup) string {
    parts := make([]string, 0, len(c.order))
    for _, id := range c.order {
        name := id
        if prices != nil {
            if it, ok := prices.Item(id); ok {
                name = it.Name
            }
        }
        parts = append(parts, fmt.Sprintf("%dx %s", c.qty[id], name))
    }
    return strings.Join(parts, ", ")
}

// Clear empties the lines and keeps the selected member.
func (c *Cart) Clear() {
    c.order = nil
    c.qty = make(map[string]int)
}

// Checkout turns the cart into a single charge for the selected member and
// clears it.  The member stays selected so another purchase can start
// straight away.
func (c *Cart) Checkout(prices PriceLookup) (model.Charge, error) {
    if c.memberID == 0 {
        return model.Charge{}, invalid("member_id", "select a member")
    }
    total := c.Total(prices)
    if total.IsZero() {
        return model.Charge{}, invalid("items", "the cart is empty")
    }
    now := time.Now()
    if c.Now != nil {
        now = c.Now()
    }
    var id string
    if c.NewID != nil {
        id = c.NewID()
    } else {
        id = uuid.NewString()
    }
    ch := model.Charge{
        ID:          id,
        MemberID:    c.memberID,
        Amount:      total,
        Description: c.Describe(prices),
        Date:        now.UTC().Format(time.RFC3339),
        CreatedAt:   now.UnixMilli(),
    }
    c.Clear()
    return ch, nil
}
