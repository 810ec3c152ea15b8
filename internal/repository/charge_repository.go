package repository

import (
    "context"
    "database/sql"

    "github.com/lagunartea/club-ledger/internal/model"
)

// ChargeRepo reads and writes ledger entries.
type ChargeRepo struct{ db *sql.DB }

// NewChargeRepo returns a ChargeRepo bound to db.
func NewChargeRepo(db *sql.DB) *ChargeRepo { return &ChargeRepo{db: db} }

// List returns every charge, newest first.
func (r *ChargeRepo) List(ctx context.Context) ([]model.Charge, error) {
    const q = `SELECT id, member_id, amount, description, date, created_at FROM charges ORDER BY created_at DESC, id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Charge, 0)
    for rows.Next() {
        var c model.Charge
        if err := rows.Scan(&c.ID, &c.MemberID, &c.Amount, &c.Description, &c.Date, &c.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}

// Create inserts a charge outside of a transaction.
func (r *ChargeRepo) Create(ctx context.Context, c model.Charge) error {
    return r.insert(ctx, r.db, c)
}

// CreateTx inserts a charge inside tx.
func (r *ChargeRepo) CreateTx(ctx context.Context, tx *sql.Tx, c model.Charge) error {
    return r.insert(ctx, tx, c)
}

func (r *ChargeRepo) insert(ctx context.Context, ex execer, c model.Charge) error {
    _, err := ex.ExecContext(ctx,
        "INSERT INTO charges (id, member_id, amount, description, date, created_at) VALUES (?,?,?,?,?,?)",
        c.ID, c.MemberID, c.Amount, c.Description, c.Date, c.CreatedAt)
    if isDuplicate(err) {
        return ErrConflict
    }
    return err
}

// Delete removes a charge.
func (r *ChargeRepo) Delete(ctx context.Context, id string) error {
    res, err := r.db.ExecContext(ctx, "DELETE FROM charges WHERE id = ?", id)
    if err != nil {
        return err
    }
    return affected(res)
}
