package booking

import (
    "reflect"
    "testing"
    "time"

    "github.com/shopspring/decimal"

    "github.com/lagunartea/club-ledger/internal/model"
)

var madrid = time.FixedZone("CEST", 2*60*60)

func charge(id string, member uint64, amount string, at time.Time) model.Charge {
    return model.Charge{
        ID:        id,
        MemberID:  member,
        Amount:    decimal.RequireFromString(amount),
        Date:      "label only",
        CreatedAt: at.UnixMilli(),
    }
}

func sampleCharges() []model.Charge {
    day := func(d, h int) time.Time { return time.Date(2026, 10, d, h, 0, 0, 0, madrid) }
    return []model.Charge{
        charge("a", 1, "3.60", day(14, 12)),
        charge("b", 1, "6.00", day(14, 20)),
        charge("c", 2, "1.80", day(14, 21)),
        charge("d", 1, "10.75", day(13, 14)),
        charge("e", 2, "7.50", day(15, 9)),
    }
}

func TestStatement_GroupsByDayAndMember(t *testing.T) {
    groups := NewLedger(madrid).Statement(sampleCharges(), Filter{}).Collect()

    if len(groups) != 4 {
        t.Fatalf("expected 4 groups, got %d", len(groups))
    }
    order := []struct {
        member uint64
        date   string
        total  string
        ids    []string
    }{
        {2, "2026-10-15", "7.5", []string{"e"}},
        {2, "2026-10-14", "1.8", []string{"c"}},
        {1, "2026-10-14", "9.6", []string{"b", "a"}},
        {1, "2026-10-13", "10.75", []string{"d"}},
    }
    for i, want := range order {
        g := groups[i]
        if g.MemberID != want.member || g.Date != want.date {
            t.Errorf("group %d: expected %d/%s, got %d/%s", i, want.member, want.date, g.MemberID, g.Date)
        }
        if !g.TotalAmount.Equal(decimal.RequireFromString(want.total)) {
            t.Errorf("group %d: expected total %s, got %s", i, want.total, g.TotalAmount)
        }
        ids := make([]string, 0, len(g.Charges))
        for _, c := range g.Charges {
            ids = append(ids, c.ID)
        }
        if !reflect.DeepEqual(ids, want.ids) {
            t.Errorf("group %d: expected charges %v, got %v", i, want.ids, ids)
        }
    }
}

func TestStatement_UsesLocalCreationDay(t *testing.T) {
    // 23:30 UTC on the 14th is already the 15th in CEST.
    c := charge("late", 1, "1.00", time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC))
    c.Date = "2026-10-14T23:30:00Z"

    groups := NewLedger(madrid).Statement([]model.Charge{c}, Filter{}).Collect()
    if groups[0].Date != "2026-10-15" {
        t.Errorf("expected local day 2026-10-15, got %s", groups[0].Date)
    }
    groups = NewLedger(time.UTC).Statement([]model.Charge{c}, Filter{}).Collect()
    if groups[0].Date != "2026-10-14" {
        t.Errorf("expected UTC day 2026-10-14, got %s", groups[0].Date)
    }
}

func TestStatement_MemberFilterAndTotal(t *testing.T) {
    member := uint64(1)
    s := NewLedger(madrid).Statement(sampleCharges(), Filter{MemberID: &member})

    for g := range s.Groups() {
        if g.MemberID != member {
            t.Errorf("unexpected member %d in filtered statement", g.MemberID)
        }
    }
    total, ok := s.AccumulatedTotal()
    if !ok {
        t.Fatal("expected an accumulated total for a filtered statement")
    }
    if !total.Equal(decimal.RequireFromString("20.35")) {
        t.Errorf("expected 20.35, got %s", total)
    }

    if _, ok := NewLedger(madrid).Statement(sampleCharges(), Filter{}).AccumulatedTotal(); ok {
        t.Error("the global view must not expose a running total")
    }
}

func TestStatement_Restartable(t *testing.T) {
    s := NewLedger(madrid).Statement(sampleCharges(), Filter{})
    first := s.Collect()
    second := s.Collect()
    if !reflect.DeepEqual(first, second) {
        t.Error("expected identical groups on every iteration")
    }

    n := 0
    for range s.Groups() {
        n++
        break
    }
    if n != 1 {
        t.Errorf("expected early break to stop after one group, got %d", n)
    }
}

func TestStatement_SnapshotIsolation(t *testing.T) {
    charges := sampleCharges()
    s := NewLedger(madrid).Statement(charges, Filter{})
    charges[0].Amount = decimal.NewFromInt(1000)
    for g := range s.Groups() {
        for _, c := range g.Charges {
            if c.ID == "a" && !c.Amount.Equal(decimal.RequireFromString("3.60")) {
                t.Error("statement should not observe later edits to the input slice")
            }
        }
    }
}

func TestRecent(t *testing.T) {
    got := Recent(sampleCharges(), 2)
    if len(got) != 2 || got[0].ID != "e" || got[1].ID != "c" {
        t.Errorf("unexpected recent charges %v", got)
    }
    if len(Recent(nil, 5)) != 0 {
        t.Error("expected no recent charges")
    }
}
