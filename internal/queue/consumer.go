package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"
)

// LedgerLog appends one line per ledger event to a file.
type LedgerLog struct {
    Dir  string
    File string
}

// DefaultLedgerLog writes to logs/ledger.log.
var DefaultLedgerLog = LedgerLog{Dir: "logs", File: "ledger.log"}

// StartLedgerConsumer consumes LedgerQueueName and appends every event to
// out.  It reconnects with exponential backoff (capped at 30s) until ctx is
// cancelled, which is the only way it returns.
func StartLedgerConsumer(ctx context.Context, url string, out LedgerLog, logger *zap.Logger) error {
    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return ctx.Err()
        }
        conn, err := amqp.Dial(url)
        if err != nil {
            logger.Warn("ledger-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = consumeLoop(ctx, conn, out, logger)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        logger.Warn("ledger-consumer: consume loop ended, reconnecting", zap.Error(err))
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, out LedgerLog, logger *zap.Logger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        logger.Warn("ledger-consumer: set QoS failed", zap.Error(err))
    }
    if _, err := ch.QueueDeclare(LedgerQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.ConsumeWithContext(ctx, LedgerQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := out.Handle(d.Body); err != nil {
            logger.Error("ledger-consumer: handle message failed", zap.Error(err))
            _ = d.Nack(false, false) // drop, requeueing a poison message would spin
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

// Handle decodes one message body and appends its line to the log file.
func (l LedgerLog) Handle(body []byte) error {
    var ev LedgerEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" {
        return errors.New("event without type")
    }
    if err := os.MkdirAll(l.Dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", l.Dir, err)
    }
    f, err := os.OpenFile(filepath.Join(l.Dir, l.File), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    if _, err := f.WriteString(FormatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatLine renders ev as a single newline-terminated log line.
func FormatLine(ev LedgerEvent) string {
    member := fmt.Sprintf("member_id=%d", ev.MemberID)
    if ev.MemberName != "" {
        member += fmt.Sprintf(" | member=%q", ev.MemberName)
    }
    switch ev.Type {
    case EventReservationCreated:
        return fmt.Sprintf("[%s] Reservation created | reservation_id=%s | %s | kind=%s | date=%s | slot=%s\n",
            ev.OccurredAt, ev.ReservationID, member, ev.Kind, ev.Date, ev.StartSlot)
    case EventChargeRecorded:
        return fmt.Sprintf("[%s] Charge recorded | charge_id=%s | %s | amount=%s | description=%q\n",
            ev.OccurredAt, ev.ChargeID, member, ev.Amount, ev.Description)
    default:
        return fmt.Sprintf("[%s] %s | %s\n", ev.OccurredAt, ev.Type, member)
    }
}
