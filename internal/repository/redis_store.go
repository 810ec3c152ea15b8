package repository

import (
    "cmp"
    "context"
    "encoding/json"
    "slices"
    "strconv"

    "github.com/redis/go-redis/v9"

    "github.com/lagunartea/club-ledger/internal/model"
)

// RedisStore keeps each collection as a hash of JSON documents keyed by id.
// It is the fallback used when no MySQL database is configured.
type RedisStore struct {
    rdb    *redis.Client
    prefix string
}

// NewRedisStore returns a store whose keys start with prefix (default "club").
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
    if prefix == "" {
        prefix = "club"
    }
    return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(collection string) string { return s.prefix + ":" + collection }

func (s *RedisStore) ListMembers(ctx context.Context) ([]model.Member, error) {
    out, err := listJSON[model.Member](ctx, s.rdb, s.key("members"))
    if err != nil {
        return nil, err
    }
    slices.SortFunc(out, func(a, b model.Member) int {
        return cmp.Or(cmp.Compare(a.LastName, b.LastName), cmp.Compare(a.FirstName, b.FirstName), cmp.Compare(a.ID, b.ID))
    })
    return out, nil
}

func (s *RedisStore) CreateMember(ctx context.Context, m model.Member) error {
    return createJSON(ctx, s.rdb, s.key("members"), memberKey(m.ID), m)
}

func (s *RedisStore) UpdateMember(ctx context.Context, m model.Member) error {
    return updateJSON(ctx, s.rdb, s.key("members"), memberKey(m.ID), m)
}

func (s *RedisStore) DeleteMember(ctx context.Context, id uint64) error {
    return deleteField(ctx, s.rdb, s.key("members"), memberKey(id))
}

func (s *RedisStore) ListItems(ctx context.Context) ([]model.Item, error) {
    out, err := listJSON[model.Item](ctx, s.rdb, s.key("items"))
    if err != nil {
        return nil, err
    }
    slices.SortFunc(out, func(a, b model.Item) int {
        return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.SortOrder, b.SortOrder), cmp.Compare(a.ID, b.ID))
    })
    return out, nil
}

func (s *RedisStore) CreateItem(ctx context.Context, it model.Item) error {
    return createJSON(ctx, s.rdb, s.key("items"), it.ID, it)
}

func (s *RedisStore) UpdateItem(ctx context.Context, it model.Item) error {
    return updateJSON(ctx, s.rdb, s.key("items"), it.ID, it)
}

func (s *RedisStore) DeleteItem(ctx context.Context, id string) error {
    return deleteField(ctx, s.rdb, s.key("items"), id)
}

func (s *RedisStore) ListReservations(ctx context.Context) ([]model.Reservation, error) {
    out, err := listJSON[model.Reservation](ctx, s.rdb, s.key("reservations"))
    if err != nil {
        return nil, err
    }
    slices.SortFunc(out, func(a, b model.Reservation) int {
        return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.CreatedAt, b.CreatedAt), cmp.Compare(a.ID, b.ID))
    })
    return out, nil
}

func (s *RedisStore) CreateReservation(ctx context.Context, r model.Reservation) error {
    return createJSON(ctx, s.rdb, s.key("reservations"), r.ID, r)
}

func (s *RedisStore) DeleteReservation(ctx context.Context, id string) error {
    return deleteField(ctx, s.rdb, s.key("reservations"), id)
}

func (s *RedisStore) ListCharges(ctx context.Context) ([]model.Charge, error) {
    out, err := listJSON[model.Charge](ctx, s.rdb, s.key("charges"))
    if err != nil {
        return nil, err
    }
    slices.SortFunc(out, func(a, b model.Charge) int {
        return cmp.Or(cmp.Compare(b.CreatedAt, a.CreatedAt), cmp.Compare(a.ID, b.ID))
    })
    return out, nil
}

func (s *RedisStore) CreateCharge(ctx context.Context, c model.Charge) error {
    return createJSON(ctx, s.rdb, s.key("charges"), c.ID, c)
}

func (s *RedisStore) DeleteCharge(ctx context.Context, id string) error {
    return deleteField(ctx, s.rdb, s.key("charges"), id)
}

// SaveBooking writes both documents inside MULTI/EXEC.
func (s *RedisStore) SaveBooking(ctx context.Context, r model.Reservation, charge *model.Charge) error {
    resJSON, err := json.Marshal(r)
    if err != nil {
        return err
    }
    var chargeJSON []byte
    if charge != nil {
        if chargeJSON, err = json.Marshal(charge); err != nil {
            return err
        }
    }
    _, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
        pipe.HSet(ctx, s.key("reservations"), r.ID, resJSON)
        if charge != nil {
            pipe.HSet(ctx, s.key("charges"), charge.ID, chargeJSON)
        }
        return nil
    })
    return err
}

func memberKey(id uint64) string { return strconv.FormatUint(id, 10) }

func listJSON[T any](ctx context.Context, rdb *redis.Client, key string) ([]T, error) {
    vals, err := rdb.HVals(ctx, key).Result()
    if err != nil {
        return nil, err
    }
    out := make([]T, 0, len(vals))
    for _, v := range vals {
        var t T
        if err := json.Unmarshal([]byte(v), &t); err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    return out, nil
}

func createJSON(ctx context.Context, rdb *redis.Client, key, field string, v any) error {
    b, err := json.Marshal(v)
    if err != nil {
        return err
    }
    ok, err := rdb.HSetNX(ctx, key, field, b).Result()
    if err != nil {
        return err
    }
    if !ok {
        return ErrConflict
    }
    return nil
}

// updateScript replaces a hash field only when it already exists.
var updateScript = redis.NewScript(`
    if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 0 then
        return 0
    end
    redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
    return 1
`)

func updateJSON(ctx context.Context, rdb *redis.Client, key, field string, v any) error {
    b, err := json.Marshal(v)
    if err != nil {
        return err
    }
    n, err := updateScript.Run(ctx, rdb, []string{key}, field, b).Int()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

func deleteField(ctx context.Context, rdb *redis.Client, key, field string) error {
    n, err := rdb.HDel(ctx, key, field).Result()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

var _ Store = (*RedisStore)(nil)
