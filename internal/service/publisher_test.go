package service

import (
    "context"
    "net"
    "testing"
    "time"

    "go.uber.org/zap"

    "github.com/lagunartea/club-ledger/internal/queue"
)

func TestDialTimeout(t *testing.T) {
    if got := dialTimeout(context.Background()); got != defaultDialTimeout {
        t.Errorf("no deadline: %s, want %s", got, defaultDialTimeout)
    }
    ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
    defer cancel()
    if got := dialTimeout(ctx); got <= 0 || got > 500*time.Millisecond {
        t.Errorf("with deadline: %s", got)
    }
    past, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
    defer cancel2()
    if got := dialTimeout(past); got != time.Millisecond {
        t.Errorf("expired deadline: %s", got)
    }
}

// A broker that accepts TCP but never speaks AMQP must not hold Publish
// past the context deadline.
func TestAMQPPublisher_SilentBrokerHonoursDeadline(t *testing.T) {
    ln, err := net.Listen("tcp", "127.0.0.1:0")
    if err != nil {
        t.Skipf("no loopback listener: %v", err)
    }
    defer ln.Close()
    go func() {
        for {
            conn, err := ln.Accept()
            if err != nil {
                return
            }
            defer conn.Close()
        }
    }()

    p := NewAMQPPublisher("amqp://guest:guest@"+ln.Addr().String()+"/", zap.NewNop())
    ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
    defer cancel()

    start := time.Now()
    err = p.Publish(ctx, queue.LedgerEvent{Type: queue.EventChargeRecorded})
    if err == nil {
        t.Fatal("publish to a silent broker succeeded")
    }
    if took := time.Since(start); took > 2*time.Second {
        t.Fatalf("publish took %s", took)
    }
}
