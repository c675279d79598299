// Package app wires the services shared by every binary.
package app

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/invoicer/internal/client"
	clientStore "github.com/MrJamesThe3rd/invoicer/internal/client/store"
	"github.com/MrJamesThe3rd/invoicer/internal/company"
	companyStore "github.com/MrJamesThe3rd/invoicer/internal/company/store"
	"github.com/MrJamesThe3rd/invoicer/internal/config"
	"github.com/MrJamesThe3rd/invoicer/internal/event"
	"github.com/MrJamesThe3rd/invoicer/internal/export"
	"github.com/MrJamesThe3rd/invoicer/internal/importer"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/invoicer/internal/invoice/store"
	"github.com/MrJamesThe3rd/invoicer/internal/item"
	itemStore "github.com/MrJamesThe3rd/invoicer/internal/item/store"
	"github.com/MrJamesThe3rd/invoicer/internal/report"
)

type App struct {
	Bus      *event.Bus
	Company  *company.Service
	Clients  *client.Service
	Items    *item.Service
	Invoices *invoice.Service
	Reports  *report.Service
	Importer *importer.Service
	Export   *export.Service
}

func New(db *sql.DB, logger *slog.Logger) *App {
	bus := event.NewBus(logger)

	var (
		companySvc = company.NewService(companyStore.New(db), bus)
		clientSvc  = client.NewService(clientStore.New(db))
		itemSvc    = item.NewService(itemStore.New(db))
		invoiceSvc = invoice.NewService(invoiceStore.New(db), clientSvc, itemSvc, bus)
	)

	return &App{
		Bus:      bus,
		Company:  companySvc,
		Clients:  clientSvc,
		Items:    itemSvc,
		Invoices: invoiceSvc,
		Reports:  report.NewService(invoiceSvc),
		Importer: importer.NewService(itemSvc, clientSvc),
		Export:   export.NewService(invoiceSvc),
	}
}

// Relay connects the bus to the Redis events channel. Local events are forwarded from then on;
// the caller runs Listen to receive events from other processes.
func (a *App) Relay(cfg *config.Config, logger *slog.Logger) (*event.RedisRelay, *redis.Client) {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	relay := event.NewRedisRelay(rdb, cfg.Redis.EventsChannel, logger)

	a.Bus.Subscribe(relay.Handle)

	return relay, rdb
}
