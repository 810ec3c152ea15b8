package service

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "testing"
    "time"

    "github.com/shopspring/decimal"

    "github.com/lagunartea/club-ledger/internal/booking"
    "github.com/lagunartea/club-ledger/internal/model"
    "github.com/lagunartea/club-ledger/internal/queue"
    "github.com/lagunartea/club-ledger/internal/repository"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
    mu     sync.Mutex
    events []queue.LedgerEvent
    err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.LedgerEvent) error {
    p.mu.Lock()
    defer p.mu.Unlock()
    if p.err != nil {
        return p.err
    }
    p.events = append(p.events, ev)
    return nil
}

func (p *recordingPublisher) types() []string {
    p.mu.Lock()
    defer p.mu.Unlock()
    out := make([]string, 0, len(p.events))
    for _, ev := range p.events {
        out = append(out, ev.Type)
    }
    return out
}

func newTestService(t *testing.T, enforce bool) (*BookingService, *repository.MemoryStore, *recordingPublisher) {
    t.Helper()
    store := repository.NewMemoryStore()
    if err := repository.EnsureSeed(context.Background(), store); err != nil {
        t.Fatalf("seed: %v", err)
    }
    pub := &recordingPublisher{}
    n := 0
    svc := NewBookingService(store, pub, nil, Options{
        EnforceWindow: enforce,
        Location:      time.UTC,
        Now:           func() time.Time { return testNow },
        NewID: func() string {
            n++
            return fmt.Sprintf("id-%d", n)
        },
    })
    return svc, store, pub
}

func diningInput() booking.ReservationInput {
    return booking.ReservationInput{
        MemberID:     1,
        Date:         "2026-10-20",
        Kind:         model.KindDiningHall,
        Diners:       5,
        MemberDiners: 3,
        Spaces:       []model.Space{model.SpaceLowerFloor},
    }
}

func TestBook_DiningHallStoresReservationAndCharge(t *testing.T) {
    svc, store, pub := newTestService(t, false)
    ctx := context.Background()

    b, err := svc.Book(ctx, diningInput())
    if err != nil {
        t.Fatalf("Book: %v", err)
    }
    if b.Charge == nil || !b.Charge.Amount.Equal(decimal.RequireFromString("11.25")) {
        t.Fatalf("charge = %+v, want 11.25", b.Charge)
    }
    rs, _ := store.ListReservations(ctx)
    cs, _ := store.ListCharges(ctx)
    if len(rs) != 1 || len(cs) != 1 {
        t.Fatalf("stored %d reservations and %d charges, want 1 and 1", len(rs), len(cs))
    }
    if rs[0].StartSlot != booking.SlotLunch {
        t.Errorf("start slot = %q, want lunch default", rs[0].StartSlot)
    }
    got := pub.types()
    if len(got) != 2 || got[0] != queue.EventReservationCreated || got[1] != queue.EventChargeRecorded {
        t.Fatalf("events = %v", got)
    }
    if pub.events[0].MemberName != "Ignacio Alfonso" {
        t.Errorf("member name = %q", pub.events[0].MemberName)
    }
    if pub.events[1].Amount != "11.25" {
        t.Errorf("event amount = %q", pub.events[1].Amount)
    }
}

func TestBook_CourtWithoutLightHasNoCharge(t *testing.T) {
    svc, store, pub := newTestService(t, false)
    ctx := context.Background()

    b, err := svc.Book(ctx, booking.ReservationInput{MemberID: 2, Date: "2026-10-16", Kind: model.KindCourt})
    if err != nil {
        t.Fatalf("Book: %v", err)
    }
    if b.Charge != nil {
        t.Fatalf("unexpected charge %+v", b.Charge)
    }
    if b.Reservation.StartSlot != booking.DefaultCourtSlot {
        t.Errorf("start slot = %q", b.Reservation.StartSlot)
    }
    cs, _ := store.ListCharges(ctx)
    if len(cs) != 0 {
        t.Fatalf("stored %d charges, want 0", len(cs))
    }
    if got := pub.types(); len(got) != 1 {
        t.Fatalf("events = %v, want one", got)
    }
}

func TestBook_ValidationWritesNothing(t *testing.T) {
    svc, store, pub := newTestService(t, false)
    ctx := context.Background()
    in := diningInput()
    in.Spaces = nil

    _, err := svc.Book(ctx, in)
    var ve *booking.ValidationError
    if !errors.As(err, &ve) || ve.Field != "spaces" {
        t.Fatalf("err = %v, want spaces validation error", err)
    }
    rs, _ := store.ListReservations(ctx)
    if len(rs) != 0 || len(pub.types()) != 0 {
        t.Fatal("validation failure must not write or publish")
    }
}

func TestBook_WindowEnforcement(t *testing.T) {
    ctx := context.Background()
    far := diningInput()
    far.Date = "2027-01-10"

    svc, _, _ := newTestService(t, true)
    _, err := svc.Book(ctx, far)
    var ve *booking.ValidationError
    if !errors.As(err, &ve) || ve.Field != "date" {
        t.Fatalf("enforced: err = %v, want date validation error", err)
    }

    svc, _, _ = newTestService(t, false)
    if _, err := svc.Book(ctx, far); err != nil {
        t.Fatalf("not enforced: %v", err)
    }
}

func TestBook_PersistenceFailure(t *testing.T) {
    svc, store, pub := newTestService(t, false)
    store.FailWrites = errors.New("connection reset")

    _, err := svc.Book(context.Background(), diningInput())
    var pe *booking.PersistenceError
    if !errors.As(err, &pe) || pe.Op != "save booking" {
        t.Fatalf("err = %v, want save booking persistence error", err)
    }
    if len(pub.types()) != 0 {
        t.Fatal("nothing must be published after a failed write")
    }
}

func TestBook_PublisherFailureIsNotFatal(t *testing.T) {
    svc, store, pub := newTestService(t, false)
    pub.err = errors.New("broker down")

    if _, err := svc.Book(context.Background(), diningInput()); err != nil {
        t.Fatalf("Book: %v", err)
    }
    rs, _ := store.ListReservations(context.Background())
    if len(rs) != 1 {
        t.Fatalf("stored %d reservations, want 1", len(rs))
    }
}

func TestCheckout(t *testing.T) {
    svc, store, pub := newTestService(t, false)
    ctx := context.Background()

    ch, err := svc.Checkout(ctx, 2, []booking.CartLine{{ItemID: "cerveza", Quantity: 2}, {ItemID: "vino_tinto", Quantity: 1}})
    if err != nil {
        t.Fatalf("Checkout: %v", err)
    }
    if !ch.Amount.Equal(decimal.RequireFromString("9.60")) {
        t.Errorf("amount = %s, want 9.60", ch.Amount)
    }
    if want := "2x Cerveza, 1x Vino Tinto (Sarria)"; ch.Description != want {
        t.Errorf("description = %q, want %q", ch.Description, want)
    }
    if ch.CreatedAt != testNow.UnixMilli() {
        t.Errorf("created_at = %d", ch.CreatedAt)
    }
    cs, _ := store.ListCharges(ctx)
    if len(cs) != 1 {
        t.Fatalf("stored %d charges, want 1", len(cs))
    }
    if got := pub.types(); len(got) != 1 || got[0] != queue.EventChargeRecorded {
        t.Fatalf("events = %v", got)
    }
}

func TestCheckout_LargeLineIsAddedInBulk(t *testing.T) {
    svc, _, _ := newTestService(t, false)
    done := make(chan error, 1)
    go func() {
        _, err := svc.Checkout(context.Background(), 3, []booking.CartLine{{ItemID: "cerveza", Quantity: booking.MaxLineQuantity}})
        done <- err
    }()
    select {
    case err := <-done:
        if err != nil {
            t.Fatalf("Checkout: %v", err)
        }
    case <-time.After(2 * time.Second):
        t.Fatal("checkout of a full line did not return")
    }
}

func TestCheckout_Validation(t *testing.T) {
    svc, _, _ := newTestService(t, false)
    cases := []struct {
        name   string
        member uint64
        lines  []booking.CartLine
        field  string
    }{
        {"no member", 0, []booking.CartLine{{ItemID: "cerveza", Quantity: 1}}, "member_id"},
        {"empty cart", 3, nil, "items"},
        {"zero quantity", 3, []booking.CartLine{{ItemID: "cerveza", Quantity: 0}}, "items"},
        {"quantity over the line cap", 3, []booking.CartLine{{ItemID: "cerveza", Quantity: 1 << 40}}, "quantity"},
        {"only unknown items", 3, []booking.CartLine{{ItemID: "champagne", Quantity: 2}}, "items"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            _, err := svc.Checkout(context.Background(), tc.member, tc.lines)
            var ve *booking.ValidationError
            if !errors.As(err, &ve) || ve.Field != tc.field {
                t.Fatalf("err = %v, want validation error on %s", err, tc.field)
            }
        })
    }
}

func TestStatement_FilteredTotal(t *testing.T) {
    svc, _, _ := newTestService(t, false)
    ctx := context.Background()
    for _, m := range []uint64{4, 4, 5} {
        if _, err := svc.Checkout(ctx, m, []booking.CartLine{{ItemID: "sidra", Quantity: 1}}); err != nil {
            t.Fatal(err)
        }
    }

    all, err := svc.Statement(ctx, nil)
    if err != nil {
        t.Fatal(err)
    }
    if all.AccumulatedTotal != nil {
        t.Error("unfiltered statement must not carry a total")
    }
    if len(all.Groups) != 2 {
        t.Fatalf("groups = %d, want 2", len(all.Groups))
    }

    id := uint64(4)
    one, err := svc.Statement(ctx, &id)
    if err != nil {
        t.Fatal(err)
    }
    if one.AccumulatedTotal == nil || !one.AccumulatedTotal.Equal(decimal.RequireFromString("10")) {
        t.Fatalf("total = %v, want 10", one.AccumulatedTotal)
    }
    if len(one.Groups) != 1 || one.Groups[0].MemberName != "Rafael Araujo" {
        t.Fatalf("groups = %+v", one.Groups)
    }
}

func TestDayReservations_SlotOrder(t *testing.T) {
    svc, _, _ := newTestService(t, false)
    ctx := context.Background()
    lunch := diningInput()
    breakfast := diningInput()
    breakfast.StartSlot = booking.SlotBreakfast
    court := booking.ReservationInput{MemberID: 3, Date: lunch.Date, Kind: model.KindCourt, StartSlot: "12:30"}
    other := diningInput()
    other.Date = "2026-10-21"

    for _, in := range []booking.ReservationInput{lunch, court, breakfast, other} {
        if _, err := svc.Book(ctx, in); err != nil {
            t.Fatal(err)
        }
    }
    got, err := svc.DayReservations(ctx, lunch.Date)
    if err != nil {
        t.Fatal(err)
    }
    want := []string{booking.SlotBreakfast, "12:30", booking.SlotLunch}
    if len(got) != len(want) {
        t.Fatalf("got %d reservations, want %d", len(got), len(want))
    }
    for i, w := range want {
        if got[i].StartSlot != w {
            t.Errorf("[%d] slot = %q, want %q", i, got[i].StartSlot, w)
        }
    }

    if _, err := svc.DayReservations(ctx, "20-10-2026"); err == nil {
        t.Fatal("expected validation error for malformed date")
    }
}

func TestCalendar(t *testing.T) {
    svc, _, _ := newTestService(t, false)
    ctx := context.Background()
    if _, err := svc.Book(ctx, diningInput()); err != nil {
        t.Fatal(err)
    }
    grid, err := svc.Calendar(ctx, 2026, time.October)
    if err != nil {
        t.Fatal(err)
    }
    if d := grid.Days[19]; d.Date != "2026-10-20" || d.DiningHall != 1 || !d.Selectable {
        t.Fatalf("day 20 = %+v", d)
    }
    if _, err := svc.Calendar(ctx, 2026, 13); err == nil {
        t.Fatal("expected error for month 13")
    }
}

func TestCancelReservation_KeepsCharge(t *testing.T) {
    svc, store, _ := newTestService(t, false)
    ctx := context.Background()
    b, err := svc.Book(ctx, diningInput())
    if err != nil {
        t.Fatal(err)
    }
    if err := svc.CancelReservation(ctx, b.Reservation.ID); err != nil {
        t.Fatalf("CancelReservation: %v", err)
    }
    cs, _ := store.ListCharges(ctx)
    if len(cs) != 1 {
        t.Fatalf("charges = %d, want the booking charge kept", len(cs))
    }
    if err := svc.CancelReservation(ctx, b.Reservation.ID); !errors.Is(err, repository.ErrNotFound) {
        t.Fatalf("second cancel err = %v, want ErrNotFound", err)
    }
}

func TestMembers_FallsBackToSeed(t *testing.T) {
    svc, store, _ := newTestService(t, false)
    store.FailReads = errors.New("timeout")
    if got := svc.Members(context.Background()); len(got) != len(repository.SeedMembers()) {
        t.Fatalf("members = %d, want seed list", len(got))
    }
}

func TestCatalogValidation(t *testing.T) {
    svc, _, _ := newTestService(t, false)
    ctx := context.Background()

    err := svc.CreateItem(ctx, model.Item{ID: "cafe", Name: "Café", Price: decimal.NewFromInt(-1), Category: model.CategoryDrink})
    var ve *booking.ValidationError
    if !errors.As(err, &ve) || ve.Field != "price" {
        t.Fatalf("err = %v, want price validation error", err)
    }
    err = svc.CreateMember(ctx, model.Member{ID: 1, FirstName: "Dup", LastName: "Licate"})
    if !errors.Is(err, repository.ErrConflict) {
        t.Fatalf("err = %v, want ErrConflict", err)
    }
    if err := svc.UpdateMember(ctx, model.Member{ID: 999, FirstName: "No", LastName: "One"}); !errors.Is(err, repository.ErrNotFound) {
        t.Fatalf("err = %v, want ErrNotFound", err)
    }
}
