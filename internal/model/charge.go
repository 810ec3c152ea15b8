package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Charge is a ledger entry attributable to one member (`charges` table).
// Charges come from a cart checkout or are derived from a reservation; once
// written they are only ever deleted, never edited.
//
// Date is a display label kept for compatibility with older rows.  All
// grouping and ordering uses CreatedAt.
//
// Fields:
//  ID          – UUID.
//  MemberID    – member the amount is charged to.
//  Amount      – non-negative amount, stored unrounded.
//  Description – human readable summary of what was charged.
//  Date        – RFC 3339 wall clock label.
//  CreatedAt   – creation time in milliseconds since the epoch.
type Charge struct {
    ID          string          `json:"id"`          // charges.id
    MemberID    uint64          `json:"member_id"`   // charges.member_id
    Amount      decimal.Decimal `json:"amount"`      // charges.amount
    Description string          `json:"description"` // charges.description
    Date        string          `json:"date"`        // charges.date
    CreatedAt   int64           `json:"created_at"`  // charges.created_at
}

// CreatedTime converts CreatedAt to a time.Time in loc.
func (c Charge) CreatedTime(loc *time.Location) time.Time {
    return time.UnixMilli(c.CreatedAt).In(loc)
}
