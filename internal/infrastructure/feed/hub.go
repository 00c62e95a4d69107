// Package feed turns MongoDB change streams into an in-process fan-out that
// SSE handlers subscribe to. The subscription is the single source of truth
// for collection state: whatever a client wrote optimistically, the feed's
// version of the document wins.
package feed

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/aro-bazzar/storefront-api/internal/api/metrics"
)

// Kind classifies a change event.
type Kind string

const (
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// Event is one change observed on a collection. Document is nil for deletes.
type Event struct {
	Collection string         `json:"collection"`
	Kind       Kind           `json:"kind"`
	ID         string         `json:"id"`
	Document   map[string]any `json:"document,omitempty"`
}

const subscriberBuffer = 64

// Subscriber receives matching events on C until Unsubscribe is called.
type Subscriber struct {
	C      chan Event
	filter func(Event) bool
}

// Hub fans change events out to subscribers. Publishing never blocks: a
// subscriber whose buffer is full loses the event and a metric is bumped —
// live feeds are best effort, clients resync with a plain list call.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
	log  zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[*Subscriber]struct{}),
		log:  log,
	}
}

// Subscribe registers a subscriber receiving events for which filter returns
// true. A nil filter matches everything.
func (h *Hub) Subscribe(filter func(Event) bool) *Subscriber {
	if filter == nil {
		filter = func(Event) bool { return true }
	}
	sub := &Subscriber{
		C:      make(chan Event, subscriberBuffer),
		filter: filter,
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	metrics.FeedSubscribers.Inc()
	return sub
}

// Unsubscribe removes the subscriber. Its channel is not closed; the caller
// simply stops reading.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	delete(h.subs, sub)
	h.mu.Unlock()

	if ok {
		metrics.FeedSubscribers.Dec()
	}
}

// Publish delivers the event to every matching subscriber without blocking.
func (h *Hub) Publish(ev Event) {
	metrics.FeedEventsTotal.WithLabelValues(ev.Collection).Inc()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if !sub.filter(ev) {
			continue
		}
		select {
		case sub.C <- ev:
		default:
			metrics.FeedEventsDroppedTotal.WithLabelValues(ev.Collection).Inc()
			h.log.Warn().
				Str("collection", ev.Collection).
				Str("id", ev.ID).
				Msg("feed event dropped for slow subscriber")
		}
	}
}
