// Package service wires the booking engine to persistence and the event
// stream.  Handlers talk to BookingService only.
package service

import (
    "cmp"
    "context"
    "fmt"
    "slices"
    "time"

    "github.com/google/uuid"
    "github.com/shopspring/decimal"
    "go.uber.org/zap"

    "github.com/lagunartea/club-ledger/internal/booking"
    "github.com/lagunartea/club-ledger/internal/model"
    "github.com/lagunartea/club-ledger/internal/queue"
    "github.com/lagunartea/club-ledger/internal/repository"
)

// Options tunes a BookingService.  Zero values pick the defaults.
type Options struct {
    WindowDays    int            // booking window length, booking.DefaultWindowDays when 0
    EnforceWindow bool           // reject bookings for days outside the window
    Location      *time.Location // statement and calendar day boundaries, time.Local when nil
    Now           func() time.Time
    NewID         func() string
}

// BookingService runs the club's use cases: calendar and day views,
// reservations, cart checkouts, statements and catalog maintenance.
type BookingService struct {
    store   repository.Store
    pub     Publisher
    log     *zap.Logger
    builder *booking.Builder
    avail   booking.Availability
    ledger  booking.Ledger
    enforce bool
    now     func() time.Time
    newID   func() string
}

// NewBookingService builds a service over store.  A nil pub drops events
// and a nil logger discards logs.
func NewBookingService(store repository.Store, pub Publisher, logger *zap.Logger, opts Options) *BookingService {
    if pub == nil {
        pub = NopPublisher{}
    }
    if logger == nil {
        logger = zap.NewNop()
    }
    now := opts.Now
    if now == nil {
        now = time.Now
    }
    newID := opts.NewID
    if newID == nil {
        newID = uuid.NewString
    }
    return &BookingService{
        store:   store,
        pub:     pub,
        log:     logger,
        builder: &booking.Builder{Now: now, NewID: newID},
        avail:   booking.NewAvailability(opts.WindowDays),
        ledger:  booking.NewLedger(opts.Location),
        enforce: opts.EnforceWindow,
        now:     now,
        newID:   newID,
    }
}

// Today is the current time in the service's location.
func (s *BookingService) Today() time.Time { return s.now().In(s.ledger.Location) }

// IsSelectable reports whether date lies inside today's booking window.
func (s *BookingService) IsSelectable(date string) bool {
    return s.avail.IsSelectableString(date, s.Today())
}

func persistence(op string, err error) error {
    return &booking.PersistenceError{Op: op, Err: err}
}

// ReservationView is a reservation with its owner's display name.
type ReservationView struct {
    model.Reservation
    MemberName string `json:"member_name"`
}

// ChargeView is a charge with its owner's display name.
type ChargeView struct {
    model.Charge
    MemberName string `json:"member_name"`
}

// Calendar returns the month grid of year/month with per-day counts.
func (s *BookingService) Calendar(ctx context.Context, year int, month time.Month) (booking.MonthGrid, error) {
    if month < time.January || month > time.December {
        return booking.MonthGrid{}, &booking.ValidationError{Field: "month", Message: "month must be between 01 and 12"}
    }
    rs, err := s.store.ListReservations(ctx)
    if err != nil {
        return booking.MonthGrid{}, persistence("list reservations", err)
    }
    return s.avail.Month(year, month, s.Today(), rs), nil
}

// DayReservations lists the reservations of date ordered by start slot,
// meal slots placed at their usual clock time.
func (s *BookingService) DayReservations(ctx context.Context, date string) ([]ReservationView, error) {
    if _, err := booking.ParseDate(date); err != nil {
        return nil, &booking.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
    }
    rs, err := s.store.ListReservations(ctx)
    if err != nil {
        return nil, persistence("list reservations", err)
    }
    members := s.Members(ctx)
    out := make([]ReservationView, 0)
    for _, r := range rs {
        if r.Date == date {
            out = append(out, ReservationView{Reservation: r, MemberName: model.MemberName(members, r.MemberID)})
        }
    }
    slices.SortStableFunc(out, func(a, b ReservationView) int {
        return cmp.Or(
            cmp.Compare(booking.SlotSortKey(a.StartSlot), booking.SlotSortKey(b.StartSlot)),
            cmp.Compare(a.CreatedAt, b.CreatedAt),
        )
    })
    return out, nil
}

// Book validates in, derives its charge and stores both in one write.
// When the window is enforced, days outside it are rejected.
func (s *BookingService) Book(ctx context.Context, in booking.ReservationInput) (booking.Booking, error) {
    items, err := s.store.ListItems(ctx)
    if err != nil {
        return booking.Booking{}, persistence("list items", err)
    }
    b, err := s.builder.Build(in, booking.NewPrices(items))
    if err != nil {
        return booking.Booking{}, err
    }
    if s.enforce && !s.avail.IsSelectableString(b.Reservation.Date, s.Today()) {
        return booking.Booking{}, &booking.ValidationError{Field: "date", Message: "the date is outside the booking window"}
    }
    if err := s.store.SaveBooking(ctx, b.Reservation, b.Charge); err != nil {
        return booking.Booking{}, persistence("save booking", err)
    }
    s.log.Info("reservation created",
        zap.String("reservation_id", b.Reservation.ID),
        zap.Uint64("member_id", b.Reservation.MemberID),
        zap.String("kind", string(b.Reservation.Kind)),
        zap.String("date", b.Reservation.Date),
        zap.Bool("charged", b.Charge != nil))

    name := model.MemberName(s.Members(ctx), b.Reservation.MemberID)
    s.publish(ctx, queue.LedgerEvent{
        Type:          queue.EventReservationCreated,
        ReservationID: b.Reservation.ID,
        MemberID:      b.Reservation.MemberID,
        MemberName:    name,
        Kind:          string(b.Reservation.Kind),
        Date:          b.Reservation.Date,
        StartSlot:     b.Reservation.StartSlot,
        OccurredAt:    s.now().UTC().Format(time.RFC3339),
    })
    if b.Charge != nil {
        s.publish(ctx, chargeEvent(*b.Charge, name))
    }
    return b, nil
}

// CancelReservation deletes a reservation.  Its charge, if any, stays on
// the ledger and has to be removed separately.
func (s *BookingService) CancelReservation(ctx context.Context, id string) error {
    if err := s.store.DeleteReservation(ctx, id); err != nil {
        return persistence("delete reservation", err)
    }
    s.log.Info("reservation deleted", zap.String("reservation_id", id))
    return nil
}

// Checkout turns cart lines into a single charge for memberID.  Lines are
// replayed into a booking.Cart in the given order.
func (s *BookingService) Checkout(ctx context.Context, memberID uint64, lines []booking.CartLine) (model.Charge, error) {
    cart := booking.NewCart()
    cart.Now = s.now
    cart.NewID = s.newID
    cart.SelectMember(memberID)
    if memberID == 0 {
        return model.Charge{}, &booking.ValidationError{Field: "member_id", Message: "select a member"}
    }
    for _, l := range lines {
        if l.ItemID == "" || l.Quantity < 1 {
            return model.Charge{}, &booking.ValidationError{Field: "items", Message: "each line needs an item and a positive quantity"}
        }
        if l.Quantity > booking.MaxLineQuantity {
            return model.Charge{}, &booking.ValidationError{Field: "quantity", Message: fmt.Sprintf("at most %d units per line", booking.MaxLineQuantity)}
        }
        cart.Add(l.ItemID, l.Quantity)
    }
    items, err := s.store.ListItems(ctx)
    if err != nil {
        return model.Charge{}, persistence("list items", err)
    }
    ch, err := cart.Checkout(booking.NewPrices(items))
    if err != nil {
        return model.Charge{}, err
    }
    if err := s.store.CreateCharge(ctx, ch); err != nil {
        return model.Charge{}, persistence("create charge", err)
    }
    s.log.Info("charge recorded",
        zap.String("charge_id", ch.ID),
        zap.Uint64("member_id", ch.MemberID),
        zap.String("amount", ch.Amount.String()))
    s.publish(ctx, chargeEvent(ch, model.MemberName(s.Members(ctx), ch.MemberID)))
    return ch, nil
}

// DeleteCharge removes a charge from the ledger.
func (s *BookingService) DeleteCharge(ctx context.Context, id string) error {
    if err := s.store.DeleteCharge(ctx, id); err != nil {
        return persistence("delete charge", err)
    }
    s.log.Info("charge deleted", zap.String("charge_id", id))
    return nil
}

// StatementGroupView is a statement group with its member's display name.
type StatementGroupView struct {
    booking.StatementGroup
    MemberName string `json:"member_name"`
}

// StatementReport is the rendered ledger.  AccumulatedTotal is set only
// when the report is filtered to one member.
type StatementReport struct {
    MemberID         *uint64              `json:"member_id,omitempty"`
    Groups           []StatementGroupView `json:"groups"`
    AccumulatedTotal *decimal.Decimal     `json:"accumulated_total,omitempty"`
}

// Statement groups the ledger by day and member, optionally for one member.
func (s *BookingService) Statement(ctx context.Context, memberID *uint64) (StatementReport, error) {
    charges, err := s.store.ListCharges(ctx)
    if err != nil {
        return StatementReport{}, persistence("list charges", err)
    }
    members := s.Members(ctx)
    st := s.ledger.Statement(charges, booking.Filter{MemberID: memberID})
    rep := StatementReport{MemberID: memberID, Groups: make([]StatementGroupView, 0)}
    for g := range st.Groups() {
        rep.Groups = append(rep.Groups, StatementGroupView{StatementGroup: g, MemberName: model.MemberName(members, g.MemberID)})
    }
    if total, ok := st.AccumulatedTotal(); ok {
        rep.AccumulatedTotal = &total
    }
    return rep, nil
}

// RecentCharges returns the n most recent charges, newest first.
func (s *BookingService) RecentCharges(ctx context.Context, n int) ([]ChargeView, error) {
    charges, err := s.store.ListCharges(ctx)
    if err != nil {
        return nil, persistence("list charges", err)
    }
    members := s.Members(ctx)
    recent := booking.Recent(charges, n)
    out := make([]ChargeView, 0, len(recent))
    for _, c := range recent {
        out = append(out, ChargeView{Charge: c, MemberName: model.MemberName(members, c.MemberID)})
    }
    return out, nil
}

func chargeEvent(c model.Charge, memberName string) queue.LedgerEvent {
    return queue.LedgerEvent{
        Type:        queue.EventChargeRecorded,
        ChargeID:    c.ID,
        MemberID:    c.MemberID,
        MemberName:  memberName,
        Amount:      c.Amount.String(),
        Description: c.Description,
        OccurredAt:  time.UnixMilli(c.CreatedAt).UTC().Format(time.RFC3339),
    }
}

// publish delivers ev without letting a broker problem fail the request.
func (s *BookingService) publish(ctx context.Context, ev queue.LedgerEvent) {
    ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
    defer cancel()
    if err := s.pub.Publish(ctx, ev); err != nil {
        s.log.Warn("event not published", zap.String("type", ev.Type), zap.Error(err))
    }
}
