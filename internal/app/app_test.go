package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicer/internal/config"
	"github.com/MrJamesThe3rd/invoicer/internal/event"
)

func TestNew(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NotNil(t, a.Bus)
	assert.NotNil(t, a.Company)
	assert.NotNil(t, a.Clients)
	assert.NotNil(t, a.Items)
	assert.NotNil(t, a.Invoices)
	assert.NotNil(t, a.Reports)
	assert.NotNil(t, a.Importer)
	assert.NotNil(t, a.Export)
}

func TestRelay_ForwardsBusEvents(t *testing.T) {
	mr := miniredis.RunT(t)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(db, logger)

	var cfg config.Config
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.EventsChannel = "invoicer:test"

	_, rdb := a.Relay(&cfg, logger)
	defer rdb.Close()

	sub := redis.NewClient(&redis.Options{Addr: mr.Addr()}).Subscribe(context.Background(), "invoicer:test")
	defer sub.Close()

	_, err = sub.Receive(context.Background())
	require.NoError(t, err)

	a.Bus.Publish(context.Background(), event.InvoicesDeleted{InvoiceIDs: []uuid.UUID{uuid.New()}, At: time.Now()})

	select {
	case msg := <-sub.Channel():
		assert.Contains(t, msg.Payload, string(event.KindInvoicesDeleted))
	case <-time.After(2 * time.Second):
		t.Fatal("event was not relayed")
	}
}
