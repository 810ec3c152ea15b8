package model

// ResourceKind names one of the two bookable facilities.
type ResourceKind string

const (
    KindDiningHall ResourceKind = "DINING_HALL"
    KindCourt      ResourceKind = "COURT"
)

// Valid reports whether k is a known resource kind.
func (k ResourceKind) Valid() bool {
    return k == KindDiningHall || k == KindCourt
}

// Space is a selectable area of the dining hall.
type Space string

const (
    SpaceLowerFloor Space = "lower_floor"
    SpaceUpperFloor Space = "upper_floor"
    SpaceOutdoor    Space = "outdoor"
)

// Spaces lists every dining hall area in display order.
var Spaces = []Space{SpaceLowerFloor, SpaceUpperFloor, SpaceOutdoor}

// KitchenService is an optional cooking facility booked with the dining hall.
type KitchenService string

const (
    KitchenBarbecue1 KitchenService = "barbecue_1"
    KitchenBarbecue2 KitchenService = "barbecue_2"
    KitchenOven1     KitchenService = "oven_1"
    KitchenOven2     KitchenService = "oven_2"
)

// KitchenServices lists every kitchen service in display order.
var KitchenServices = []KitchenService{KitchenBarbecue1, KitchenBarbecue2, KitchenOven1, KitchenOven2}

// Reservation records a booking of the dining hall or the court for one
// calendar day.  Kind-specific fields are nil for the other kind: a court
// reservation never carries diner counts and a dining hall reservation
// never carries the light flag.
//
// Fields:
//  ID              – UUID assigned by the builder.
//  MemberID        – member who owns the booking.
//  Date            – calendar day, YYYY-MM-DD.
//  StartSlot       – meal slot for the dining hall, HH:MM for the court.
//  Kind            – DINING_HALL or COURT.
//  Diners          – total diners (dining hall only).
//  MemberDiners    – diners who are members (dining hall only).
//  Spaces          – selected areas (dining hall only).
//  KitchenServices – selected cooking facilities (dining hall only).
//  LightIncluded   – whether the court light is booked (court only).
//  CreatedAt       – creation time in milliseconds since the epoch.
type Reservation struct {
    ID              string           `json:"id"`                         // reservations.id
    MemberID        uint64           `json:"member_id"`                  // reservations.member_id
    Date            string           `json:"date"`                       // reservations.date
    StartSlot       string           `json:"start_slot"`                 // reservations.start_slot
    Kind            ResourceKind     `json:"kind"`                       // reservations.kind
    Diners          *int             `json:"diners,omitempty"`           // reservations.diners (nullable)
    MemberDiners    *int             `json:"member_diners,omitempty"`    // reservations.member_diners (nullable)
    Spaces          []Space          `json:"spaces,omitempty"`           // reservations.spaces (JSON)
    KitchenServices []KitchenService `json:"kitchen_services,omitempty"` // reservations.kitchen_services (JSON)
    LightIncluded   *bool            `json:"light_included,omitempty"`   // reservations.light_included (nullable)
    CreatedAt       int64            `json:"created_at"`                 // reservations.created_at
}
