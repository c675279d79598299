package event

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Handler reacts to a published event.
type Handler func(ctx context.Context, e Event) error

type subscription struct {
	id      int
	handler Handler
}

// Bus is a synchronous in-process publisher. Handlers run in subscription order;
// a failing or panicking handler is logged and does not stop the others.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	byKind map[Kind][]subscription
	all    []subscription
	logger *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}

	return &Bus{
		byKind: make(map[Kind][]subscription),
		logger: logger,
	}
}

// Subscribe registers h for the given kinds, or for every kind when none are given.
// The returned func removes the subscription.
func (b *Bus) Subscribe(h Handler, kinds ...Kind) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := subscription{id: b.nextID, handler: h}

	if len(kinds) == 0 {
		b.all = append(b.all, sub)
	}

	for _, k := range kinds {
		b.byKind[k] = append(b.byKind[k], sub)
	}

	return func() { b.remove(sub.id) }
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.all = without(b.all, id)
	for k, subs := range b.byKind {
		b.byKind[k] = without(subs, id)
	}
}

func without(subs []subscription, id int) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}

	return out
}

// Publish delivers events in order.
func (b *Bus) Publish(ctx context.Context, events ...Event) {
	for _, e := range events {
		b.mu.RLock()
		subs := make([]subscription, 0, len(b.byKind[e.Kind()])+len(b.all))
		subs = append(subs, b.byKind[e.Kind()]...)
		subs = append(subs, b.all...)
		b.mu.RUnlock()

		for _, s := range subs {
			if err := b.dispatch(ctx, s.handler, e); err != nil {
				b.logger.Error("event handler failed", "kind", e.Kind(), "error", err)
			}
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, h Handler, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return h(ctx, e)
}
