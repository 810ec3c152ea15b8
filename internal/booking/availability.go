package booking

import (
    "time"

    "github.com/lagunartea/club-ledger/internal/model"
)

// DateLayout is the wire format of calendar days.
const DateLayout = "2006-01-02"

// DefaultWindowDays is how far ahead a day may be booked.
const DefaultWindowDays = 30

// Availability decides which calendar days can be selected for booking.
// A day is selectable when today <= day <= today+WindowDays; time of day is
// ignored on both sides.
type Availability struct {
    WindowDays int
}

// NewAvailability returns a calculator with the given window, falling back to
// DefaultWindowDays for non-positive values.
func NewAvailability(windowDays int) Availability {
    if windowDays <= 0 {
        windowDays = DefaultWindowDays
    }
    return Availability{WindowDays: windowDays}
}

// IsSelectable reports whether date falls inside the booking window that
// starts at today.  Zero times are rejected.
func (a Availability) IsSelectable(date, today time.Time) bool {
    if date.IsZero() || today.IsZero() {
        return false
    }
    d := midnight(date)
    start := midnight(today)
    end := start.AddDate(0, 0, a.window())
    return !d.Before(start) && !d.After(end)
}

// IsSelectableString parses a YYYY-MM-DD day and checks it against today.
// Unparseable input is rejected.
func (a Availability) IsSelectableString(date string, today time.Time) bool {
    d, err := ParseDate(date)
    if err != nil {
        return false
    }
    return a.IsSelectable(d, today)
}

func (a Availability) window() int {
    if a.WindowDays <= 0 {
        return DefaultWindowDays
    }
    return a.WindowDays
}

// ParseDate parses a YYYY-MM-DD calendar day as a UTC midnight.
func ParseDate(s string) (time.Time, error) {
    return time.Parse(DateLayout, s)
}

// midnight maps t to the UTC midnight of its own calendar day so that days
// from different locations compare by their civil date.
func midnight(t time.Time) time.Time {
    y, m, d := t.Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarDay is one cell of a month view.
type CalendarDay struct {
    Date       string `json:"date"`
    Day        int    `json:"day"`
    IsToday    bool   `json:"is_today"`
    IsPast     bool   `json:"is_past"`
    Selectable bool   `json:"selectable"`
    DiningHall int    `json:"dining_hall"`
    Court      int    `json:"court"`
}

// MonthGrid is a Monday-first month view.  Offset is the number of empty
// cells before the first day.
type MonthGrid struct {
    Year   int           `json:"year"`
    Month  int           `json:"month"`
    Offset int           `json:"offset"`
    Days   []CalendarDay `json:"days"`
}

// Month builds the calendar of year/month as seen on today, counting the
// reservations of each day by resource kind.
func (a Availability) Month(year int, month time.Month, today time.Time, reservations []model.Reservation) MonthGrid {
    first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
    daysIn := first.AddDate(0, 1, -1).Day()
    offset := (int(first.Weekday()) + 6) % 7

    byDate := make(map[string][2]int)
    for _, r := range reservations {
        c := byDate[r.Date]
        switch r.Kind {
        case model.KindDiningHall:
            c[0]++
        case model.KindCourt:
            c[1]++
        }
        byDate[r.Date] = c
    }

    t := midnight(today)
    grid := MonthGrid{Year: year, Month: int(month), Offset: offset, Days: make([]CalendarDay, 0, daysIn)}
    for d := 1; d <= daysIn; d++ {
        cell := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
        key := cell.Format(DateLayout)
        counts := byDate[key]
        grid.Days = append(grid.Days, CalendarDay{
            Date:       key,
            Day:        d,
            IsToday:    cell.Equal(t),
            IsPast:     cell.Before(t),
            Selectable: a.IsSelectable(cell, today),
            DiningHall: counts[0],
            Court:      counts[1],
        })
    }
    return grid
}
