package service

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/lagunartea/club-ledger/internal/queue"
)

// Publisher delivers ledger events.  Delivery is best effort: the service
// logs a failure and carries on.
type Publisher interface {
    Publish(ctx context.Context, ev queue.LedgerEvent) error
}

// NopPublisher drops every event.  It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.LedgerEvent) error { return nil }

// AMQPPublisher publishes to queue.LedgerQueueName on the default exchange.
// Each call opens its own connection, which keeps the publisher free of
// reconnect state at the price of a dial per event.
type AMQPPublisher struct {
    URL    string
    Logger *zap.Logger
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, logger *zap.Logger) *AMQPPublisher {
    return &AMQPPublisher{URL: url, Logger: logger}
}

// defaultDialTimeout bounds the broker dial when ctx has no deadline.
const defaultDialTimeout = 3 * time.Second

// dialTimeout is what is left of ctx's deadline, or defaultDialTimeout.
func dialTimeout(ctx context.Context) time.Duration {
    dl, ok := ctx.Deadline()
    if !ok {
        return defaultDialTimeout
    }
    if left := time.Until(dl); left > 0 {
        return left
    }
    return time.Millisecond
}

// Publish sends ev as a persistent JSON message.  The queue is declared on
// every call so publishing works before the consumer has ever run.
func (p *AMQPPublisher) Publish(ctx context.Context, ev queue.LedgerEvent) error {
    conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(dialTimeout(ctx))})
    if err != nil {
        p.Logger.Warn("rabbitmq: dial failed", zap.Error(err))
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        p.Logger.Warn("rabbitmq: channel open failed", zap.Error(err))
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(queue.LedgerQueueName, true, false, false, false, nil); err != nil {
        p.Logger.Warn("rabbitmq: queue declare failed", zap.Error(err))
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Type:         ev.Type,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", queue.LedgerQueueName, false, false, pub); err != nil {
        p.Logger.Warn("rabbitmq: publish failed", zap.String("type", ev.Type), zap.Error(err))
        return err
    }
    return nil
}
