package booking

import (
    "testing"
    "time"

    "github.com/lagunartea/club-ledger/internal/model"
)

func TestIsSelectable_Window(t *testing.T) {
    a := NewAvailability(30)
    today := time.Date(2026, 10, 15, 17, 45, 0, 0, time.UTC)

    cases := []struct {
        name string
        date time.Time
        want bool
    }{
        {"today", today, true},
        {"today at midnight", time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), true},
        {"last day of window", today.AddDate(0, 0, 30), true},
        {"last day late evening", time.Date(2026, 11, 14, 23, 59, 0, 0, time.UTC), true},
        {"one past window", today.AddDate(0, 0, 31), false},
        {"yesterday", today.AddDate(0, 0, -1), false},
        {"zero", time.Time{}, false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := a.IsSelectable(tc.date, today); got != tc.want {
                t.Errorf("IsSelectable(%s) = %v, want %v", tc.date, got, tc.want)
            }
        })
    }
}

func TestIsSelectableString(t *testing.T) {
    a := NewAvailability(0)
    today := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
    if !a.IsSelectableString("2026-11-14", today) {
        t.Error("expected 2026-11-14 to be selectable")
    }
    if a.IsSelectableString("2026-11-15", today) {
        t.Error("expected 2026-11-15 to be outside the window")
    }
    if a.IsSelectableString("15/10/2026", today) {
        t.Error("expected malformed date to be rejected")
    }
}

func TestMonth_CountsAndFlags(t *testing.T) {
    a := NewAvailability(30)
    today := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
    res := []model.Reservation{
        {Date: "2026-10-20", Kind: model.KindDiningHall},
        {Date: "2026-10-20", Kind: model.KindDiningHall},
        {Date: "2026-10-20", Kind: model.KindCourt},
        {Date: "2026-11-01", Kind: model.KindCourt},
    }
    g := a.Month(2026, time.October, today, res)

    if len(g.Days) != 31 {
        t.Fatalf("expected 31 days, got %d", len(g.Days))
    }
    // 1 October 2026 is a Thursday.
    if g.Offset != 3 {
        t.Errorf("expected offset 3, got %d", g.Offset)
    }
    d := g.Days[19]
    if d.Date != "2026-10-20" || d.DiningHall != 2 || d.Court != 1 {
        t.Errorf("unexpected cell %+v", d)
    }
    if !g.Days[14].IsToday || !g.Days[14].Selectable {
        t.Errorf("expected today to be flagged and selectable: %+v", g.Days[14])
    }
    if !g.Days[13].IsPast || g.Days[13].Selectable {
        t.Errorf("expected yesterday to be past and not selectable: %+v", g.Days[13])
    }
}
