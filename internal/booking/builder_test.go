package booking

import (
    "errors"
    "fmt"
    "testing"
    "time"

    "github.com/shopspring/decimal"

    "github.com/lagunartea/club-ledger/internal/model"
)

func testPrices() Prices {
    return NewPrices([]model.Item{
        {ID: ItemMemberDinerFee, Name: "Member diner", Price: decimal.RequireFromString("1.75"), Category: model.CategoryFee},
        {ID: ItemNonMemberDinerFee, Name: "Non-member diner", Price: decimal.RequireFromString("3.00"), Category: model.CategoryFee},
        {ID: ItemCourtLightFee, Name: "Court light", Price: decimal.RequireFromString("6.00"), Category: model.CategoryService},
        {ID: "cerveza", Name: "Cerveza", Price: decimal.RequireFromString("1.80"), Category: model.CategoryDrink},
        {ID: "vino_tinto", Name: "Vino Tinto", Price: decimal.RequireFromString("6.00"), Category: model.CategoryDrink},
    })
}

func fixedBuilder() *Builder {
    n := 0
    return &Builder{
        Now: func() time.Time { return time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC) },
        NewID: func() string {
            n++
            return fmt.Sprintf("id-%d", n)
        },
    }
}

func diningInput() ReservationInput {
    return ReservationInput{
        MemberID:     7,
        Date:         "2026-10-20",
        Kind:         model.KindDiningHall,
        Diners:       4,
        MemberDiners: 1,
        Spaces:       []model.Space{model.SpaceLowerFloor},
    }
}

func TestBuild_DiningHallCost(t *testing.T) {
    b, err := fixedBuilder().Build(diningInput(), testPrices())
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if b.Charge == nil {
        t.Fatal("expected a derived charge")
    }
    if want := decimal.RequireFromString("10.75"); !b.Charge.Amount.Equal(want) {
        t.Errorf("expected amount %s, got %s", want, b.Charge.Amount)
    }
    if b.Charge.MemberID != 7 {
        t.Errorf("expected charge for member 7, got %d", b.Charge.MemberID)
    }
    if b.Charge.Description != "Dining hall booking: 1 member diner(s), 3 non-member diner(s)" {
        t.Errorf("unexpected description %q", b.Charge.Description)
    }
    r := b.Reservation
    if r.LightIncluded != nil {
        t.Error("dining hall reservation must not carry a light flag")
    }
    if r.Diners == nil || *r.Diners != 4 || r.MemberDiners == nil || *r.MemberDiners != 1 {
        t.Errorf("unexpected diner counts %v/%v", r.Diners, r.MemberDiners)
    }
    if r.StartSlot != SlotLunch {
        t.Errorf("expected default slot %q, got %q", SlotLunch, r.StartSlot)
    }
    if r.CreatedAt != b.Charge.CreatedAt {
        t.Error("reservation and charge should share the creation instant")
    }
}

func TestBuild_CourtLight(t *testing.T) {
    in := ReservationInput{MemberID: 3, Date: "2026-10-20", Kind: model.KindCourt, StartSlot: "19:30"}

    b, err := fixedBuilder().Build(in, testPrices())
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if b.Charge != nil {
        t.Errorf("expected no charge without light, got %+v", b.Charge)
    }
    if b.Reservation.Diners != nil || b.Reservation.MemberDiners != nil || len(b.Reservation.Spaces) != 0 {
        t.Error("court reservation must not carry dining hall fields")
    }

    in.LightIncluded = true
    b, err = fixedBuilder().Build(in, testPrices())
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if b.Charge == nil || !b.Charge.Amount.Equal(decimal.RequireFromString("6.00")) {
        t.Fatalf("expected a 6.00 light charge, got %+v", b.Charge)
    }
    if b.Charge.Description != "Court light fee" {
        t.Errorf("unexpected description %q", b.Charge.Description)
    }
}

func TestBuild_MissingPricesCountAsZero(t *testing.T) {
    b, err := fixedBuilder().Build(diningInput(), Prices{})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if b.Charge != nil {
        t.Errorf("expected no charge when fees are absent, got %+v", b.Charge)
    }
}

func TestBuild_ClampsMemberDiners(t *testing.T) {
    in := diningInput()
    in.Diners = 2
    in.MemberDiners = 5
    b, err := fixedBuilder().Build(in, testPrices())
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if *b.Reservation.MemberDiners != 2 {
        t.Errorf("expected member diners clamped to 2, got %d", *b.Reservation.MemberDiners)
    }
    if want := decimal.RequireFromString("3.50"); !b.Charge.Amount.Equal(want) {
        t.Errorf("expected %s, got %s", want, b.Charge.Amount)
    }
}

func TestBuild_ValidationErrors(t *testing.T) {
    cases := []struct {
        name  string
        edit  func(*ReservationInput)
        field string
    }{
        {"no member", func(in *ReservationInput) { in.MemberID = 0 }, "member_id"},
        {"no space", func(in *ReservationInput) { in.Spaces = nil }, "spaces"},
        {"no member diner", func(in *ReservationInput) { in.MemberDiners = 0 }, "member_diners"},
        {"no diners", func(in *ReservationInput) { in.Diners = 0 }, "diners"},
        {"bad kind", func(in *ReservationInput) { in.Kind = "POOL" }, "kind"},
        {"bad date", func(in *ReservationInput) { in.Date = "20/10/2026" }, "date"},
        {"bad slot", func(in *ReservationInput) { in.StartSlot = "brunch" }, "start_slot"},
        {"bad space", func(in *ReservationInput) { in.Spaces = []model.Space{"roof"} }, "spaces"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            in := diningInput()
            tc.edit(&in)
            _, err := fixedBuilder().Build(in, testPrices())
            var ve *ValidationError
            if !errors.As(err, &ve) {
                t.Fatalf("expected ValidationError, got %v", err)
            }
            if ve.Field != tc.field {
                t.Errorf("expected field %q, got %q", tc.field, ve.Field)
            }
        })
    }
}

func TestBuild_CourtRejectsMalformedTime(t *testing.T) {
    in := ReservationInput{MemberID: 3, Date: "2026-10-20", Kind: model.KindCourt, StartSlot: "25:00"}
    _, err := fixedBuilder().Build(in, testPrices())
    var ve *ValidationError
    if !errors.As(err, &ve) || ve.Field != "start_slot" {
        t.Fatalf("expected start_slot validation error, got %v", err)
    }
}

func TestBuild_DeduplicatesSelections(t *testing.T) {
    in := diningInput()
    in.Spaces = []model.Space{model.SpaceOutdoor, model.SpaceOutdoor, model.SpaceUpperFloor}
    in.KitchenServices = []model.KitchenService{model.KitchenOven1, model.KitchenOven1}
    b, err := fixedBuilder().Build(in, testPrices())
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(b.Reservation.Spaces) != 2 || b.Reservation.Spaces[0] != model.SpaceOutdoor {
        t.Errorf("unexpected spaces %v", b.Reservation.Spaces)
    }
    if len(b.Reservation.KitchenServices) != 1 {
        t.Errorf("unexpected kitchen services %v", b.Reservation.KitchenServices)
    }
}

func TestClampDiners(t *testing.T) {
    for diners := 1; diners <= 12; diners++ {
        for member := 1; member <= diners+3; member++ {
            d, m := ClampDiners(diners, member)
            if m > d {
                t.Fatalf("ClampDiners(%d,%d) = %d,%d: member diners exceed total", diners, member, d, m)
            }
            if d-m < 0 {
                t.Fatalf("ClampDiners(%d,%d): negative non-member count", diners, member)
            }
        }
    }
}

func TestSlotSortKey(t *testing.T) {
    if SlotSortKey(SlotDinner) <= SlotSortKey("18:00") {
        t.Error("dinner should sort after an 18:00 court booking")
    }
    if SlotSortKey(SlotBreakfast) >= SlotSortKey(SlotLunch) {
        t.Error("breakfast should sort before lunch")
    }
}
