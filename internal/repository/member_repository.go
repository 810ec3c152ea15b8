package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/lagunartea/club-ledger/internal/model"
)

// MemberRepo reads and writes the members table.
type MemberRepo struct{ db *sql.DB }

// NewMemberRepo returns a MemberRepo bound to db.
func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{db: db} }

// List returns all members ordered by last name.
func (r *MemberRepo) List(ctx context.Context) ([]model.Member, error) {
    const q = `SELECT id, first_name, last_name, phone FROM members ORDER BY last_name, first_name, id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Member, 0)
    for rows.Next() {
        var m model.Member
        var phone sql.NullString
        if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &phone); err != nil {
            return nil, err
        }
        if phone.Valid {
            p := phone.String
            m.Phone = &p
        }
        out = append(out, m)
    }
    return out, rows.Err()
}

// Create inserts m with its explicit id.  A duplicate id yields ErrConflict.
func (r *MemberRepo) Create(ctx context.Context, m model.Member) error {
    _, err := r.db.ExecContext(ctx,
        "INSERT INTO members (id, first_name, last_name, phone) VALUES (?,?,?,?)",
        m.ID, m.FirstName, m.LastName, nullString(m.Phone))
    if isDuplicate(err) {
        return ErrConflict
    }
    return err
}

// Update overwrites the names and phone of m.ID.
func (r *MemberRepo) Update(ctx context.Context, m model.Member) error {
    res, err := r.db.ExecContext(ctx,
        "UPDATE members SET first_name=?, last_name=?, phone=? WHERE id=?",
        m.FirstName, m.LastName, nullString(m.Phone), m.ID)
    if err != nil {
        return err
    }
    return expectRow(ctx, r.db, res, "SELECT 1 FROM members WHERE id=?", m.ID)
}

// Delete removes a member.  Reservations and charges that reference the id
// are left untouched.
func (r *MemberRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, "DELETE FROM members WHERE id=?", id)
    if err != nil {
        return err
    }
    return affected(res)
}

func nullString(s *string) sql.NullString {
    if s == nil {
        return sql.NullString{}
    }
    return sql.NullString{String: *s, Valid: true}
}

// isDuplicate matches MySQL error 1062 (duplicate entry).
func isDuplicate(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

func affected(res sql.Result) error {
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

// expectRow treats zero affected rows as success when the row exists: MySQL
// reports 0 for an UPDATE that changes nothing.
func expectRow(ctx context.Context, db *sql.DB, res sql.Result, probe string, arg any) error {
    if n, err := res.RowsAffected(); err != nil || n > 0 {
        return err
    }
    var one int
    if err := db.QueryRowContext(ctx, probe, arg).Scan(&one); err != nil {
        if err == sql.ErrNoRows {
            return ErrNotFound
        }
        return err
    }
    return nil
}
