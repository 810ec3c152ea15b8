package booking

import (
    "fmt"
    "regexp"
    "slices"
    "time"

    "github.com/google/uuid"
    "github.com/shopspring/decimal"

    "github.com/lagunartea/club-ledger/internal/model"
)

// Dining hall meal slots.
const (
    SlotBreakfast = "breakfast"
    SlotLunch     = "lunch"
    SlotDinner    = "dinner"
)

// DefaultCourtSlot is the start time used when a court booking names none.
const DefaultCourtSlot = "18:00"

var (
    clockRe   = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
    mealClock = map[string]string{SlotBreakfast: "10:00", SlotLunch: "14:00", SlotDinner: "21:00"}
)

// SlotSortKey maps a start slot onto a clock time so meal slots and court
// times sort together on a day view.
func SlotSortKey(slot string) string {
    if c, ok := mealClock[slot]; ok {
        return c
    }
    return slot
}

// ReservationInput is the raw form a member submits.  Fields that do not
// apply to Kind are ignored.
type ReservationInput struct {
    MemberID        uint64
    Date            string
    StartSlot       string
    Kind            model.ResourceKind
    Diners          int
    MemberDiners    int
    Spaces          []model.Space
    KitchenServices []model.KitchenService
    LightIncluded   bool
}

// Booking is a reservation together with the charge it produced, if any.
// Both records must be written together.
type Booking struct {
    Reservation model.Reservation `json:"reservation"`
    Charge      *model.Charge     `json:"charge,omitempty"`
}

// Builder validates reservation input and derives its charge.
type Builder struct {
    Now   func() time.Time
    NewID func() string
}

// NewBuilder returns a Builder using the wall clock and random UUIDs.
func NewBuilder() *Builder {
    return &Builder{Now: time.Now, NewID: func() string { return uuid.NewString() }}
}

// ClampDiners keeps memberDiners within [0, diners].
func ClampDiners(diners, memberDiners int) (int, int) {
    if diners < 0 {
        diners = 0
    }
    if memberDiners > diners {
        memberDiners = diners
    }
    if memberDiners < 0 {
        memberDiners = 0
    }
    return diners, memberDiners
}

// DiningHallCost prices a dining hall booking: members pay the member diner
// fee, everybody else the non-member fee.  Missing prices count as zero.
func DiningHallCost(diners, memberDiners int, prices PriceLookup) decimal.Decimal {
    nonMembers := max(0, diners-memberDiners)
    member := priceOf(prices, ItemMemberDinerFee).Mul(decimal.NewFromInt(int64(memberDiners)))
    guest := priceOf(prices, ItemNonMemberDinerFee).Mul(decimal.NewFromInt(int64(nonMembers)))
    return member.Add(guest)
}

// CourtCost prices a court booking: only the light costs money.
func CourtCost(lightIncluded bool, prices PriceLookup) decimal.Decimal {
    if !lightIncluded {
        return decimal.Zero
    }
    return priceOf(prices, ItemCourtLightFee)
}

// Build turns in into a reservation and, when the booking costs something,
// the charge to add to the member's ledger.
func (b *Builder) Build(in ReservationInput, prices PriceLookup) (Booking, error) {
    if in.MemberID == 0 {
        return Booking{}, invalid("member_id", "select a member")
    }
    if !in.Kind.Valid() {
        return Booking{}, invalid("kind", fmt.Sprintf("unknown resource kind %q", in.Kind))
    }
    if _, err := ParseDate(in.Date); err != nil {
        return Booking{}, invalid("date", "date must be YYYY-MM-DD")
    }

    now := b.now()
    res := model.Reservation{
        ID:        b.newID(),
        MemberID:  in.MemberID,
        Date:      in.Date,
        Kind:      in.Kind,
        CreatedAt: now.UnixMilli(),
    }

    var (
        amount decimal.Decimal
        desc   string
    )
    switch in.Kind {
    case model.KindDiningHall:
        slot := in.StartSlot
        if slot == "" {
            slot = SlotLunch
        }
        if _, ok := mealClock[slot]; !ok {
            return Booking{}, invalid("start_slot", fmt.Sprintf("unknown meal slot %q", slot))
        }
        spaces, err := distinctSpaces(in.Spaces)
        if err != nil {
            return Booking{}, err
        }
        if len(spaces) == 0 {
            return Booking{}, invalid("spaces", "select at least one space")
        }
        services, err := distinctServices(in.KitchenServices)
        if err != nil {
            return Booking{}, err
        }
        if in.Diners < 1 {
            return Booking{}, invalid("diners", "at least one diner is required")
        }
        diners, memberDiners := ClampDiners(in.Diners, in.MemberDiners)
        if memberDiners < 1 {
            return Booking{}, invalid("member_diners", "at least one diner must be a member")
        }
        res.StartSlot = slot
        res.Diners = &diners
        res.MemberDiners = &memberDiners
        res.Spaces = spaces
        res.KitchenServices = services
        amount = DiningHallCost(diners, memberDiners, prices)
        desc = fmt.Sprintf("Dining hall booking: %d member diner(s), %d non-member diner(s)", memberDiners, diners-memberDiners)

    case model.KindCourt:
        slot := in.StartSlot
        if slot == "" {
            slot = DefaultCourtSlot
        }
        if !clockRe.MatchString(slot) {
            return Booking{}, invalid("start_slot", "court start time must be HH:MM")
        }
        light := in.LightIncluded
        res.StartSlot = slot
        res.LightIncluded = &light
        amount = CourtCost(light, prices)
        desc = "Court light fee"
    }

    out := Booking{Reservation: res}
    if amount.IsPositive() {
        out.Charge = &model.Charge{
            ID:          b.newID(),
            MemberID:    in.MemberID,
            Amount:      amount,
            Description: desc,
            Date:        now.UTC().Format(time.RFC3339),
            CreatedAt:   now.UnixMilli(),
        }
    }
    return out, nil
}

func (b *Builder) now() time.Time {
    if b.Now == nil {
        return time.Now()
    }
    return b.Now()
}

func (b *Builder) newID() string {
    if b.NewID == nil {
        return uuid.NewString()
    }
    return b.NewID()
}

func distinctSpaces(in []model.Space) ([]model.Space, error) {
    out := make([]model.Space, 0, len(in))
    for _, s := range in {
        if !slices.Contains(model.Spaces, s) {
            return nil, invalid("spaces", fmt.Sprintf("unknown space %q", s))
        }
        if !slices.Contains(out, s) {
            out = append(out, s)
        }
    }
    return out, nil
}

func distinctServices(in []model.KitchenService) ([]model.KitchenService, error) {
    out := make([]model.KitchenService, 0, len(in))
    for _, s := range in {
        if !slices.Contains(model.KitchenServices, s) {
            return nil, invalid("kitchen_services", fmt.Sprintf("unknown kitchen service %q", s))
        }
        if !slices.Contains(out, s) {
            out = append(out, s)
        }
    }
    return out, nil
}
