package repository

import (
    "cmp"
    "context"
    "slices"
    "sync"

    "github.com/lagunartea/club-ledger/internal/model"
)

// MemoryStore is an in-process Store used by tests and local runs without
// MySQL or Redis.  FailWrites, when set, makes every write return it.
type MemoryStore struct {
    mu           sync.Mutex
    members      map[uint64]model.Member
    items        map[string]model.Item
    reservations map[string]model.Reservation
    charges      map[string]model.Charge

    FailWrites error
    FailReads  error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
    return &MemoryStore{
        members:      make(map[uint64]model.Member),
        items:        make(map[string]model.Item),
        reservations: make(map[string]model.Reservation),
        charges:      make(map[string]model.Charge),
    }
}

func (s *MemoryStore) ListMembers(_ context.Context) ([]model.Member, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.FailReads != nil {
        return nil, s.FailReads
    }
    out := valuesOf(s.members)
    slices.SortFunc(out, func(a, b model.Member) int {
        return cmp.Or(cmp.Compare(a.LastName, b.LastName), cmp.Compare(a.FirstName, b.FirstName), cmp.Compare(a.ID, b.ID))
    })
    return out, nil
}

func (s *MemoryStore) CreateMember(_ context.Context, m model.Member) error {
    return putNew(s, s.members, m.ID, m)
}

func (s *MemoryStore) UpdateMember(_ context.Context, m model.Member) error {
    return replace(s, s.members, m.ID, m)
}

func (s *MemoryStore) DeleteMember(_ context.Context, id uint64) error {
    return drop(s, s.members, id)
}

func (s *MemoryStore) ListItems(_ context.Context) ([]model.Item, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.FailReads != nil {
        return nil, s.FailReads
    }
    out := valuesOf(s.items)
    slices.SortFunc(out, func(a, b model.Item) int {
        return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.SortOrder, b.SortOrder), cmp.Compare(a.ID, b.ID))
    })
    return out, nil
}

func (s *MemoryStore) CreateItem(_ context.Context, it model.Item) error {
    return putNew(s, s.items, it.ID, it)
}

func (s *MemoryStore) UpdateItem(_ context.Context, it model.Item) error {
    return replace(s, s.items, it.ID, it)
}

func (s *MemoryStore) DeleteItem(_ context.Context, id string) error {
    return drop(s, s.items, id)
}

func (s *MemoryStore) ListReservations(_ context.Context) ([]model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.FailReads != nil {
        return nil, s.FailReads
    }
    out := valuesOf(s.reservations)
    slices.SortFunc(out, func(a, b model.Reservation) int {
        return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.CreatedAt, b.CreatedAt), cmp.Compare(a.ID, b.ID))
    })
    return out, nil
}

func (s *MemoryStore) CreateReservation(_ context.Context, r model.Reservation) error {
    return putNew(s, s.reservations, r.ID, r)
}

func (s *MemoryStore) DeleteReservation(_ context.Context, id string) error {
    return drop(s, s.reservations, id)
}

func (s *MemoryStore) ListCharges(_ context.Context) ([]model.Charge, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.FailReads != nil {
        return nil, s.FailReads
    }
    out := valuesOf(s.charges)
    slices.SortFunc(out, func(a, b model.Charge) int {
        return cmp.Or(cmp.Compare(b.CreatedAt, a.CreatedAt), cmp.Compare(a.ID, b.ID))
    })
    return out, nil
}

func (s *MemoryStore) CreateCharge(_ context.Context, c model.Charge) error {
    return putNew(s, s.charges, c.ID, c)
}

func (s *MemoryStore) DeleteCharge(_ context.Context, id string) error {
    return drop(s, s.charges, id)
}

// SaveBooking writes both records under one lock.
func (s *MemoryStore) SaveBooking(_ context.Context, r model.Reservation, charge *model.Charge) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.FailWrites != nil {
        return s.FailWrites
    }
    if _, ok := s.reservations[r.ID]; ok {
        return ErrConflict
    }
    if charge != nil {
        if _, ok := s.charges[charge.ID]; ok {
            return ErrConflict
        }
        s.charges[charge.ID] = *charge
    }
    s.reservations[r.ID] = r
    return nil
}

func valuesOf[K comparable, V any](m map[K]V) []V {
    out := make([]V, 0, len(m))
    for _, v := range m {
        out = append(out, v)
    }
    return out
}

func putNew[K comparable, V any](s *MemoryStore, m map[K]V, k K, v V) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.FailWrites != nil {
        return s.FailWrites
    }
    if _, ok := m[k]; ok {
        return ErrConflict
    }
    m[k] = v
    return nil
}

func replace[K comparable, V any](s *MemoryStore, m map[K]V, k K, v V) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.FailWrites != nil {
        return s.FailWrites
    }
    if _, ok := m[k]; !ok {
        return ErrNotFound
    }
    m[k] = v
    return nil
}

func drop[K comparable, V any](s *MemoryStore, m map[K]V, k K) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.FailWrites != nil {
        return s.FailWrites
    }
    if _, ok := m[k]; !ok {
        return ErrNotFound
    }
    delete(m, k)
    return nil
}

var _ Store = (*MemoryStore)(nil)
