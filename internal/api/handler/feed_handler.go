package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aro-bazzar/storefront-api/internal/core/domain"
	"github.com/aro-bazzar/storefront-api/internal/infrastructure/feed"
)

// FeedHandler streams collection change events to clients over SSE. Clients
// render whatever the feed says, replacing any optimistic local state; a
// dropped event is recovered by re-fetching the plain list endpoint.
type FeedHandler struct {
	hub *feed.Hub
}

func NewFeedHandler(hub *feed.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// Products handles GET /v1/feed/products — a public stream of catalog
// changes.
func (h *FeedHandler) Products(c echo.Context) error {
	return h.stream(c, func(ev feed.Event) bool {
		return ev.Collection == "products"
	})
}

// Orders handles GET /v1/feed/orders — order changes scoped to the caller:
// admins receive every event, users only events for their own orders.
func (h *FeedHandler) Orders(c echo.Context) error {
	uid, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	return h.stream(c, func(ev feed.Event) bool {
		if ev.Collection != "orders" {
			return false
		}
		if role == domain.RoleAdmin {
			return true
		}
		// Delete events carry no document, so owners would not see them.
		// Orders are never deleted, which keeps this moot.
		owner, _ := ev.Document["user_id"].(string)
		return owner == uid
	})
}

// stream subscribes to the hub and writes events until the client goes away.
// Unsubscription is tied to request-context cancellation so a dropped
// connection never leaks a subscriber.
func (h *FeedHandler) stream(c echo.Context, filter func(feed.Event) bool) error {
	sub := h.hub.Subscribe(filter)
	defer h.hub.Unsubscribe(sub)

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-sub.C:
			if err := writeSSE(res, ev); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func writeSSE(res *echo.Response, ev feed.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(res, "event: %s\ndata: %s\n\n", ev.Kind, data)
	return err
}
