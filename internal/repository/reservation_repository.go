package repository

import (
    "context"
    "database/sql"
    "encoding/json"

    "github.com/lagunartea/club-ledger/internal/model"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
    ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ReservationRepo provides CRUD operations for reservations.  Spaces and
// kitchen services are stored as JSON arrays; kind-specific columns are
// NULL for the other kind.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// List returns every reservation ordered by day and creation time.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
    const q = `SELECT id, member_id, date, start_slot, kind, diners, member_diners,
                      spaces, kitchen_services, light_included, created_at
               FROM reservations
               ORDER BY date, created_at`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Reservation, 0)
    for rows.Next() {
        var (
            res           model.Reservation
            kind          string
            diners        sql.NullInt64
            memberDiners  sql.NullInt64
            spaces        sql.NullString
            services      sql.NullString
            lightIncluded sql.NullBool
        )
        if err := rows.Scan(&res.ID, &res.MemberID, &res.Date, &res.StartSlot, &kind,
            &diners, &memberDiners, &spaces, &services, &lightIncluded, &res.CreatedAt); err != nil {
            return nil, err
        }
        res.Kind = model.ResourceKind(kind)
        if diners.Valid {
            n := int(diners.Int64)
            res.Diners = &n
        }
        if memberDiners.Valid {
            n := int(memberDiners.Int64)
            res.MemberDiners = &n
        }
        if spaces.Valid && spaces.String != "" {
            if err := json.Unmarshal([]byte(spaces.String), &res.Spaces); err != nil {
                return nil, err
            }
        }
        if services.Valid && services.String != "" {
            if err := json.Unmarshal([]byte(services.String), &res.KitchenServices); err != nil {
                return nil, err
            }
        }
        if lightIncluded.Valid {
            b := lightIncluded.Bool
            res.LightIncluded = &b
        }
        out = append(out, res)
    }
    return out, rows.Err()
}

// Create inserts a reservation outside of a transaction.
func (r *ReservationRepo) Create(ctx context.Context, res model.Reservation) error {
    return r.insert(ctx, r.db, res)
}

// CreateTx inserts a reservation within the scope of an existing
// transaction.  The caller must commit or rollback the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res model.Reservation) error {
    return r.insert(ctx, tx, res)
}

func (r *ReservationRepo) insert(ctx context.Context, ex execer, res model.Reservation) error {
    spaces, err := jsonColumn(res.Spaces)
    if err != nil {
        return err
    }
    services, err := jsonColumn(res.KitchenServices)
    if err != nil {
        return err
    }
    const q = `INSERT INTO reservations
               (id, member_id, date, start_slot, kind, diners, member_diners, spaces, kitchen_services, light_included, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    _, err = ex.ExecContext(ctx, q,
        res.ID, res.MemberID, res.Date, res.StartSlot, string(res.Kind),
        nullInt(res.Diners), nullInt(res.MemberDiners), spaces, services,
        nullBool(res.LightIncluded), res.CreatedAt)
    if isDuplicate(err) {
        return ErrConflict
    }
    return err
}

// Delete removes a reservation.  A charge derived from it is kept.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
    res, err := r.db.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
    if err != nil {
        return err
    }
    return affected(res)
}

func jsonColumn[T any](v []T) (sql.NullString, error) {
    if v == nil {
        return sql.NullString{}, nil
    }
    b, err := json.Marshal(v)
    if err != nil {
        return sql.NullString{}, err
    }
    return sql.NullString{String: string(b), Valid: true}, nil
}

func nullInt(p *int) sql.NullInt64 {
    if p == nil {
        return sql.NullInt64{}
    }
    return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullBool(p *bool) sql.NullBool {
    if p == nil {
        return sql.NullBool{}
    }
    return sql.NullBool{Bool: *p, Valid: true}
}
