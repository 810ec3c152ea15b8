package repository

import (
    "context"

    "github.com/lagunartea/club-ledger/internal/model"
)

// Store is the persistence contract of the booking service.  Bulk reads
// carry no filtering or pagination; callers filter in memory.
type Store interface {
    ListMembers(ctx context.Context) ([]model.Member, error)
    CreateMember(ctx context.Context, m model.Member) error
    UpdateMember(ctx context.Context, m model.Member) error
    DeleteMember(ctx context.Context, id uint64) error

    ListItems(ctx context.Context) ([]model.Item, error)
    CreateItem(ctx context.Context, it model.Item) error
    UpdateItem(ctx context.Context, it model.Item) error
    DeleteItem(ctx context.Context, id string) error

    ListReservations(ctx context.Context) ([]model.Reservation, error)
    CreateReservation(ctx context.Context, r model.Reservation) error
    DeleteReservation(ctx context.Context, id string) error

    ListCharges(ctx context.Context) ([]model.Charge, error)
    CreateCharge(ctx context.Context, c model.Charge) error
    DeleteCharge(ctx context.Context, id string) error

    // SaveBooking writes a reservation and its derived charge atomically.
    // charge may be nil.
    SaveBooking(ctx context.Context, r model.Reservation, charge *model.Charge) error
}
