package repository

import (
    "context"
    "database/sql"

    "github.com/lagunartea/club-ledger/internal/model"
)

// ItemRepo reads and writes the items price list.
type ItemRepo struct{ db *sql.DB }

// NewItemRepo returns an ItemRepo bound to db.
func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

// List returns the price list ordered by category and sort order.
func (r *ItemRepo) List(ctx context.Context) ([]model.Item, error) {
    const q = `SELECT id, name, icon, price, category, sort_order FROM items ORDER BY category, sort_order, id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Item, 0)
    for rows.Next() {
        var it model.Item
        var icon sql.NullString
        var category string
        if err := rows.Scan(&it.ID, &it.Name, &icon, &it.Price, &category, &it.SortOrder); err != nil {
            return nil, err
        }
        if icon.Valid {
            s := icon.String
            it.Icon = &s
        }
        it.Category = model.ItemCategory(category)
        out = append(out, it)
    }
    return out, rows.Err()
}

// Create inserts it.  A duplicate id yields ErrConflict.
func (r *ItemRepo) Create(ctx context.Context, it model.Item) error {
    _, err := r.db.ExecContext(ctx,
        "INSERT INTO items (id, name, icon, price, category, sort_order) VALUES (?,?,?,?,?,?)",
        it.ID, it.Name, nullString(it.Icon), it.Price, string(it.Category), it.SortOrder)
    if isDuplicate(err) {
        return ErrConflict
    }
    return err
}

// Update overwrites every column of it.ID.
func (r *ItemRepo) Update(ctx context.Context, it model.Item) error {
    res, err := r.db.ExecContext(ctx,
        "UPDATE items SET name=?, icon=?, price=?, category=?, sort_order=? WHERE id=?",
        it.Name, nullString(it.Icon), it.Price, string(it.Category), it.SortOrder, it.ID)
    if err != nil {
        return err
    }
    return expectRow(ctx, r.db, res, "SELECT 1 FROM items WHERE id=?", it.ID)
}

// Delete removes an item from the price list.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
    res, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id=?", id)
    if err != nil {
        return err
    }
    return affected(res)
}
