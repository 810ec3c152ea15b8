package service

import (
    "context"
    "strings"

    "go.uber.org/zap"

    "github.com/lagunartea/club-ledger/internal/booking"
    "github.com/lagunartea/club-ledger/internal/model"
    "github.com/lagunartea/club-ledger/internal/repository"
)

// Members returns the roster.  When the store cannot be read the seed list
// is served instead so member pickers keep working.
func (s *BookingService) Members(ctx context.Context) []model.Member {
    ms, err := s.store.ListMembers(ctx)
    if err != nil {
        s.log.Warn("members unavailable, serving seed list", zap.Error(err))
        return repository.SeedMembers()
    }
    return ms
}

// Items returns the price list.
func (s *BookingService) Items(ctx context.Context) ([]model.Item, error) {
    items, err := s.store.ListItems(ctx)
    if err != nil {
        return nil, persistence("list items", err)
    }
    return items, nil
}

func checkMember(m model.Member) error {
    if m.ID == 0 {
        return &booking.ValidationError{Field: "id", Message: "member id is required"}
    }
    if strings.TrimSpace(m.FirstName) == "" || strings.TrimSpace(m.LastName) == "" {
        return &booking.ValidationError{Field: "name", Message: "first and last name are required"}
    }
    return nil
}

func checkItem(it model.Item) error {
    switch {
    case strings.TrimSpace(it.ID) == "":
        return &booking.ValidationError{Field: "id", Message: "item id is required"}
    case strings.TrimSpace(it.Name) == "":
        return &booking.ValidationError{Field: "name", Message: "item name is required"}
    case it.Price.IsNegative():
        return &booking.ValidationError{Field: "price", Message: "price cannot be negative"}
    case !it.Category.Valid():
        return &booking.ValidationError{Field: "category", Message: "unknown category"}
    }
    return nil
}

// CreateMember adds a member to the roster.
func (s *BookingService) CreateMember(ctx context.Context, m model.Member) error {
    if err := checkMember(m); err != nil {
        return err
    }
    if err := s.store.CreateMember(ctx, m); err != nil {
        return persistence("create member", err)
    }
    return nil
}

// UpdateMember replaces a member's name and phone.
func (s *BookingService) UpdateMember(ctx context.Context, m model.Member) error {
    if err := checkMember(m); err != nil {
        return err
    }
    if err := s.store.UpdateMember(ctx, m); err != nil {
        return persistence("update member", err)
    }
    return nil
}

// DeleteMember removes a member.  Their reservations and charges are kept
// and render as an unknown member.
func (s *BookingService) DeleteMember(ctx context.Context, id uint64) error {
    if err := s.store.DeleteMember(ctx, id); err != nil {
        return persistence("delete member", err)
    }
    return nil
}

// CreateItem adds an item to the price list.
func (s *BookingService) CreateItem(ctx context.Context, it model.Item) error {
    if err := checkItem(it); err != nil {
        return err
    }
    if err := s.store.CreateItem(ctx, it); err != nil {
        return persistence("create item", err)
    }
    return nil
}

// UpdateItem replaces an item.  Existing charges keep the amount they were
// recorded with.
func (s *BookingService) UpdateItem(ctx context.Context, it model.Item) error {
    if err := checkItem(it); err != nil {
        return err
    }
    if err := s.store.UpdateItem(ctx, it); err != nil {
        return persistence("update item", err)
    }
    return nil
}

// DeleteItem removes an item from the price list.
func (s *BookingService) DeleteItem(ctx context.Context, id string) error {
    if err := s.store.DeleteItem(ctx, id); err != nil {
        return persistence("delete item", err)
    }
    return nil
}
