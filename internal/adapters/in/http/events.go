package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"loadboard/internal/core/domain/events"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/notifications"

	"github.com/labstack/echo/v4"
)

// EventStream serves server-sent events scoped to the authenticated caller.
// Each connection gets its own hub subscription, so a caller only receives
// events for orders they own, bid on, or explicitly watch.
type EventStream struct {
	hub *notifications.Hub
}

// NewEventStream creates the SSE endpoint backed by the notification hub.
func NewEventStream(hub *notifications.Hub) *EventStream {
	return &EventStream{hub: hub}
}

// RegisterRoutes wires the event stream onto the echo instance.
func (s *EventStream) RegisterRoutes(e *echo.Echo, secret []byte) {
	e.GET("/api/v1/events", s.Stream, AuthMiddleware(secret))
}

type streamEvent struct {
	Kind       string    `json:"kind"`
	OrderID    string    `json:"order_id"`
	MerchantID string    `json:"merchant_id"`
	DriverID   string    `json:"driver_id,omitempty"`
	BidID      string    `json:"bid_id,omitempty"`
	Price      int64     `json:"price,omitempty"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newStreamEvent(event events.Event) streamEvent {
	message := streamEvent{
		Kind:       string(event.Kind),
		OrderID:    event.Order.ID.String(),
		MerchantID: event.Order.MerchantID.String(),
		Status:     event.Order.Status.String(),
		OccurredAt: event.OccurredAt,
	}

	if event.Order.DriverID != nil {
		message.DriverID = event.Order.DriverID.String()
	}

	if event.Bid != nil {
		message.BidID = event.Bid.ID.String()
		message.Price = event.Bid.Price
	}

	return message
}

// Stream handles GET /api/v1/events - streams lifecycle events as SSE.
// The optional "orders" query parameter is a comma-separated list of order
// identifiers to watch in addition to the caller's own activity.
func (s *EventStream) Stream(ctx echo.Context) error {
	identity := identityFrom(ctx)

	subscription := s.hub.Subscribe(identity.SubjectID, identity.Role)
	defer subscription.Close()

	if orders := ctx.QueryParam("orders"); orders != "" {
		for _, raw := range strings.Split(orders, ",") {
			orderID, err := kernel.UUIDFromString(strings.TrimSpace(raw))
			if err != nil {
				return badRequest(ctx, "Invalid order id: "+err.Error())
			}

			subscription.Join(orderID)
		}
	}

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	// Heartbeats keep intermediaries from closing an idle stream.
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	requestCtx := ctx.Request().Context()

	for {
		select {
		case <-requestCtx.Done():
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(response, ": keep-alive\n\n"); err != nil {
				return nil
			}

			response.Flush()
		case event, ok := <-subscription.Events():
			if !ok {
				return nil
			}

			payload, err := json.Marshal(newStreamEvent(event))
			if err != nil {
				continue
			}

			if _, err := fmt.Fprintf(response, "event: %s\ndata: %s\n\n", event.Kind, payload); err != nil {
				return nil
			}

			response.Flush()
		}
	}
}
