package repository

import (
    "context"
    "database/sql"

    "github.com/lagunartea/club-ledger/internal/model"
)

// SQLStore implements Store on MySQL by delegating to the per-table repos.
type SQLStore struct {
    db           *sql.DB
    Members      *MemberRepo
    Items        *ItemRepo
    Reservations *ReservationRepo
    Charges      *ChargeRepo
}

// NewSQLStore wires the table repositories onto db.
func NewSQLStore(db *sql.DB) *SQLStore {
    return &SQLStore{
        db:           db,
        Members:      NewMemberRepo(db),
        Items:        NewItemRepo(db),
        Reservations: NewReservationRepo(db),
        Charges:      NewChargeRepo(db),
    }
}

// DB exposes the underlying handle for callers that manage transactions.
func (s *SQLStore) DB() *sql.DB { return s.db }

func (s *SQLStore) ListMembers(ctx context.Context) ([]model.Member, error) {
    return s.Members.List(ctx)
}
func (s *SQLStore) CreateMember(ctx context.Context, m model.Member) error {
    return s.Members.Create(ctx, m)
}
func (s *SQLStore) UpdateMember(ctx context.Context, m model.Member) error {
    return s.Members.Update(ctx, m)
}
func (s *SQLStore) DeleteMember(ctx context.Context, id uint64) error {
    return s.Members.Delete(ctx, id)
}

func (s *SQLStore) ListItems(ctx context.Context) ([]model.Item, error) { return s.Items.List(ctx) }
func (s *SQLStore) CreateItem(ctx context.Context, it model.Item) error {
    return s.Items.Create(ctx, it)
}
func (s *SQLStore) UpdateItem(ctx context.Context, it model.Item) error {
    return s.Items.Update(ctx, it)
}
func (s *SQLStore) DeleteItem(ctx context.Context, id string) error { return s.Items.Delete(ctx, id) }

func (s *SQLStore) ListReservations(ctx context.Context) ([]model.Reservation, error) {
    return s.Reservations.List(ctx)
}
func (s *SQLStore) CreateReservation(ctx context.Context, r model.Reservation) error {
    return s.Reservations.Create(ctx, r)
}
func (s *SQLStore) DeleteReservation(ctx context.Context, id string) error {
    return s.Reservations.Delete(ctx, id)
}

func (s *SQLStore) ListCharges(ctx context.Context) ([]model.Charge, error) {
    return s.Charges.List(ctx)
}
func (s *SQLStore) CreateCharge(ctx context.Context, c model.Charge) error {
    return s.Charges.Create(ctx, c)
}
func (s *SQLStore) DeleteCharge(ctx context.Context, id string) error {
    return s.Charges.Delete(ctx, id)
}

// SaveBooking inserts the reservation and its charge in one transaction so
// a booking is never persisted without the fee it incurred.
func (s *SQLStore) SaveBooking(ctx context.Context, r model.Reservation, charge *model.Charge) error {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := s.Reservations.CreateTx(ctx, tx, r); err != nil {
        return err
    }
    if charge != nil {
        if err := s.Charges.CreateTx(ctx, tx, *charge); err != nil {
            return err
        }
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

var _ Store = (*SQLStore)(nil)
