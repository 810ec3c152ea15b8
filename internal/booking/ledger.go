package booking

import (
    "cmp"
    "iter"
    "slices"
    "time"

    "github.com/shopspring/decimal"

    "github.com/lagunartea/club-ledger/internal/model"
)

// StatementGroup collects the charges of one member on one local calendar
// day.  Charges are newest first.
type StatementGroup struct {
    MemberID    uint64          `json:"member_id"`
    Date        string          `json:"date"`
    Charges     []model.Charge  `json:"charges"`
    TotalAmount decimal.Decimal `json:"total_amount"`

    latest int64
}

// Filter narrows a statement.  A nil MemberID keeps every member.
type Filter struct {
    MemberID *uint64
}

// Ledger projects the charge stream into statements.  Day boundaries are
// taken in Location.
type Ledger struct {
    Location *time.Location
}

// NewLedger returns a Ledger grouping by days of loc (time.Local when nil).
func NewLedger(loc *time.Location) Ledger {
    if loc == nil {
        loc = time.Local
    }
    return Ledger{Location: loc}
}

// Statement is a read-time view over a snapshot of charges.  It holds no
// derived state: every call to Groups recomputes the grouping.
type Statement struct {
    charges []model.Charge
    filter  Filter
    loc     *time.Location
}

// Statement captures charges and filter.  The slice is copied so later
// changes by the caller do not leak into the view.
func (l Ledger) Statement(charges []model.Charge, f Filter) Statement {
    loc := l.Location
    if loc == nil {
        loc = time.Local
    }
    return Statement{charges: slices.Clone(charges), filter: f, loc: loc}
}

// Groups yields the statement groups, the group holding the most recent
// charge first.
func (s Statement) Groups() iter.Seq[StatementGroup] {
    return func(yield func(StatementGroup) bool) {
        for _, g := range s.compute() {
            if !yield(g) {
                return
            }
        }
    }
}

// Collect materialises Groups.
func (s Statement) Collect() []StatementGroup {
    return slices.Collect(s.Groups())
}

// AccumulatedTotal is the sum of all charges of the filtered member.  ok is
// false for the unfiltered view, which exposes no running total.
func (s Statement) AccumulatedTotal() (total decimal.Decimal, ok bool) {
    if s.filter.MemberID == nil {
        return decimal.Zero, false
    }
    total = decimal.Zero
    for _, c := range s.charges {
        if c.MemberID == *s.filter.MemberID {
            total = total.Add(c.Amount)
        }
    }
    return total, true
}

type groupKey struct {
    date   string
    member uint64
}

func (s Statement) compute() []StatementGroup {
    idx := make(map[groupKey]int)
    groups := make([]StatementGroup, 0)
    for _, c := range s.charges {
        if s.filter.MemberID != nil && c.MemberID != *s.filter.MemberID {
            continue
        }
        k := groupKey{date: c.CreatedTime(s.loc).Format(DateLayout), member: c.MemberID}
        i, ok := idx[k]
        if !ok {
            i = len(groups)
            idx[k] = i
            groups = append(groups, StatementGroup{MemberID: c.MemberID, Date: k.date, TotalAmount: decimal.Zero, latest: c.CreatedAt})
        }
        g := &groups[i]
        g.Charges = append(g.Charges, c)
        g.TotalAmount = g.TotalAmount.Add(c.Amount)
        if c.CreatedAt > g.latest {
            g.latest = c.CreatedAt
        }
    }
    for i := range groups {
        slices.SortStableFunc(groups[i].Charges, newestFirst)
    }
    slices.SortStableFunc(groups, func(a, b StatementGroup) int {
        if c := cmp.Compare(b.latest, a.latest); c != 0 {
            return c
        }
        if c := cmp.Compare(b.Date, a.Date); c != 0 {
            return c
        }
        return cmp.Compare(a.MemberID, b.MemberID)
    })
    return groups
}

func newestFirst(a, b model.Charge) int {
    if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
        return c
    }
    return cmp.Compare(a.ID, b.ID)
}

// Recent returns up to n charges, newest first.
func Recent(charges []model.Charge, n int) []model.Charge {
    out := slices.Clone(charges)
    slices.SortStableFunc(out, newestFirst)
    if n >= 0 && len(out) > n {
        out = out[:n]
    }
    return out
}
