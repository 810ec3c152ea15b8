package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "strings"
    "testing"
)

func TestFormatLine(t *testing.T) {
    cases := []struct {
        name string
        ev   LedgerEvent
        want string
    }{
        {
            name: "reservation",
            ev: LedgerEvent{Type: EventReservationCreated, ReservationID: "r1", MemberID: 7, MemberName: "Ana Ruiz",
                Kind: "COURT", Date: "2026-10-20", StartSlot: "18:00", OccurredAt: "2026-10-15T10:00:00Z"},
            want: "[2026-10-15T10:00:00Z] Reservation created | reservation_id=r1 | member_id=7 | member=\"Ana Ruiz\" | kind=COURT | date=2026-10-20 | slot=18:00\n",
        },
        {
            name: "charge",
            ev: LedgerEvent{Type: EventChargeRecorded, ChargeID: "c1", MemberID: 3, Amount: "9.6",
                Description: "2x Cerveza", OccurredAt: "2026-10-15T10:00:00Z"},
            want: "[2026-10-15T10:00:00Z] Charge recorded | charge_id=c1 | member_id=3 | amount=9.6 | description=\"2x Cerveza\"\n",
        },
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := FormatLine(tc.ev); got != tc.want {
                t.Fatalf("FormatLine() = %q, want %q", got, tc.want)
            }
        })
    }
}

func TestLedgerLog_HandleAppends(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "logs")
    l := LedgerLog{Dir: dir, File: "ledger.log"}
    for _, id := range []string{"c1", "c2"} {
        body, _ := json.Marshal(LedgerEvent{Type: EventChargeRecorded, ChargeID: id, MemberID: 1, Amount: "1"})
        if err := l.Handle(body); err != nil {
            t.Fatalf("Handle: %v", err)
        }
    }
    raw, err := os.ReadFile(filepath.Join(dir, "ledger.log"))
    if err != nil {
        t.Fatal(err)
    }
    lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
    if len(lines) != 2 || !strings.Contains(lines[1], "charge_id=c2") {
        t.Fatalf("unexpected log contents: %q", raw)
    }
}

func TestLedgerLog_HandleRejectsBadPayload(t *testing.T) {
    l := LedgerLog{Dir: t.TempDir(), File: "ledger.log"}
    if err := l.Handle([]byte("not json")); err == nil {
        t.Fatal("expected unmarshal error")
    }
    if err := l.Handle([]byte(`{"member_id":1}`)); err == nil {
        t.Fatal("expected error for missing type")
    }
}
