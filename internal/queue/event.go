// Package queue defines the ledger event payloads exchanged over RabbitMQ
// and the background consumer that records them.
package queue

// LedgerQueueName is the durable queue both events are published to.
const LedgerQueueName = "ledger.events"

// Event types.
const (
    EventReservationCreated = "reservation.created"
    EventChargeRecorded     = "charge.recorded"
)

// LedgerEvent is published after a reservation or charge has been stored.
// Fields that do not apply to Type are left empty.  Amount is a decimal
// string so no precision is lost on the wire.
type LedgerEvent struct {
    Type          string `json:"type"`
    ReservationID string `json:"reservation_id,omitempty"`
    ChargeID      string `json:"charge_id,omitempty"`
    MemberID      uint64 `json:"member_id"`
    MemberName    string `json:"member_name,omitempty"`
    Kind          string `json:"kind,omitempty"`
    Date          string `json:"date,omitempty"`
    StartSlot     string `json:"start_slot,omitempty"`
    Amount        string `json:"amount,omitempty"`
    Description   string `json:"description,omitempty"`
    OccurredAt    string `json:"occurred_at"`
}
