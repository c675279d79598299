package event_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicer/internal/event"
)

func TestRedisRelay_DeliversToOtherInstances(t *testing.T) {
	mr := miniredis.RunT(t)

	newClient := func() *redis.Client {
		c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = c.Close() })

		return c
	}

	sender := event.NewRedisRelay(newClient(), "invoicer.events", nil)
	receiver := event.NewRedisRelay(newClient(), "invoicer.events", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan event.Envelope, 1)
	ready := make(chan struct{})

	go func() {
		close(ready)
		_ = receiver.Listen(ctx, func(env event.Envelope) { got <- env })
	}()

	<-ready

	invoiceID := uuid.New()
	published := event.PaymentRecorded{InvoiceID: invoiceID, Number: "INV-7", Amount: 15000, BalanceDue: 0, At: time.Now().UTC()}

	// The subscriber may not be registered yet; keep publishing until it is.
	var env event.Envelope

	require.Eventually(t, func() bool {
		if err := sender.Handle(ctx, published); err != nil {
			return false
		}

		select {
		case env = <-got:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 3*time.Second, 10*time.Millisecond)

	assert.Equal(t, event.KindPaymentRecorded, env.Kind)

	var payload event.PaymentRecorded
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, invoiceID, payload.InvoiceID)
	assert.Equal(t, "INV-7", payload.Number)
}

func TestRedisRelay_SkipsOwnEnvelopes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	relay := event.NewRedisRelay(client, "invoicer.events", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	received := 0

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = relay.Handle(context.Background(), event.InvoicesDeleted{At: time.Now()})
	}()

	require.NoError(t, relay.Listen(ctx, func(event.Envelope) { received++ }))
	assert.Zero(t, received)
}
