// Package notifications fans domain events out to connected clients.
//
// The Hub keeps an in-memory registry of live subscriptions. A subscription
// belongs to one subject (a merchant or driver identity) and lives exactly as
// long as the client's event stream connection; closing the connection closes
// the subscription and releases every order scope it joined.
//
// Delivery is at most once. Each subscription has a small buffer and sends
// never block: a subscriber that cannot keep up loses events rather than
// stalling publishers. Clients are expected to re-read state after
// reconnecting instead of relying on a complete event history.
package notifications

import (
	"context"
	"log/slog"
	"sync"

	"loadboard/internal/core/domain/events"
	"loadboard/internal/core/domain/model/kernel"
)

const subscriptionBuffer = 16

// Subscriber roles. Broadcast events are scoped by role: new-order
// announcements go to parties that can act on them, not to every
// connected client.
const (
	RoleMerchant = "merchant"
	RoleDriver   = "driver"
	RoleAdmin    = "admin"
)

// Subscription is one client's live event feed.
type Subscription struct {
	subject kernel.UUID
	role    string
	events  chan events.Event

	hub    *Hub
	scopes map[string]struct{}
}

// Events returns the channel the hub delivers on. The channel is closed when
// the subscription is closed.
func (s *Subscription) Events() <-chan events.Event {
	return s.events
}

// Subject returns the identity this subscription belongs to.
func (s *Subscription) Subject() kernel.UUID {
	return s.subject
}

// Join adds the subscription to the given order's scope, so it receives every
// event of that order regardless of subject targeting.
func (s *Subscription) Join(orderID kernel.UUID) {
	s.hub.join(s, orderID)
}

// Leave removes the subscription from the given order's scope.
func (s *Subscription) Leave(orderID kernel.UUID) {
	s.hub.leave(s, orderID)
}

// Close removes the subscription from the hub and all joined scopes and
// closes the event channel. Safe to call once per subscription.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub routes domain events to live subscriptions. It implements the event
// publisher port, so command handlers publish to connected clients the same
// way they publish to Kafka.
type Hub struct {
	mu        sync.RWMutex
	bySubject map[string]map[*Subscription]struct{}
	byOrder   map[string]map[*Subscription]struct{}
	logger    *slog.Logger
}

// NewHub creates an empty notification hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		bySubject: make(map[string]map[*Subscription]struct{}),
		byOrder:   make(map[string]map[*Subscription]struct{}),
		logger:    logger.With("component", "notification_hub"),
	}
}

// Subscribe registers a new subscription for the given subject and role.
// The caller owns the subscription and must Close it when the client
// disconnects.
func (h *Hub) Subscribe(subject kernel.UUID, role string) *Subscription {
	sub := &Subscription{
		subject: subject,
		role:    role,
		events:  make(chan events.Event, subscriptionBuffer),
		hub:     h,
		scopes:  make(map[string]struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	key := subject.String()
	if h.bySubject[key] == nil {
		h.bySubject[key] = make(map[*Subscription]struct{})
	}
	h.bySubject[key][sub] = struct{}{}

	return sub
}

// Publish delivers the event to every subscription in the order's scope and
// to the subjects the event concerns: the merchant, the assigned driver, and
// all drivers holding a pending bid. OrderPosted is broadcast to driver and
// admin subscriptions so drivers learn about orders open for bidding. Each
// subscription receives the event at most once, and slow subscribers are
// skipped.
func (h *Hub) Publish(_ context.Context, event events.Event) {
	// The read lock covers the sends as well: subscriptions are closed under
	// the write lock, so no channel can close mid-send. Sends never block,
	// so holding the lock here is cheap.
	h.mu.RLock()
	defer h.mu.RUnlock()

	targets := make(map[*Subscription]struct{})

	if event.Kind == events.OrderPosted {
		for _, subs := range h.bySubject {
			for sub := range subs {
				if sub.role == RoleDriver || sub.role == RoleAdmin {
					targets[sub] = struct{}{}
				}
			}
		}
	}

	for sub := range h.byOrder[event.Order.ID.String()] {
		targets[sub] = struct{}{}
	}

	h.collectSubject(targets, event.Order.MerchantID)
	if event.Order.DriverID != nil {
		h.collectSubject(targets, *event.Order.DriverID)
	}
	for _, bidder := range event.Bidders {
		h.collectSubject(targets, bidder)
	}

	for sub := range targets {
		select {
		case sub.events <- event:
		default:
			h.logger.Warn("subscriber buffer full, event dropped",
				"subject", sub.subject.String(),
				"kind", event.Kind)
		}
	}
}

func (h *Hub) collectSubject(targets map[*Subscription]struct{}, subject kernel.UUID) {
	for sub := range h.bySubject[subject.String()] {
		targets[sub] = struct{}{}
	}
}

func (h *Hub) join(sub *Subscription, orderID kernel.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := orderID.String()
	if h.byOrder[key] == nil {
		h.byOrder[key] = make(map[*Subscription]struct{})
	}
	h.byOrder[key][sub] = struct{}{}
	sub.scopes[key] = struct{}{}
}

func (h *Hub) leave(sub *Subscription, orderID kernel.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.detachScope(sub, orderID.String())
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := sub.subject.String()
	if subs, ok := h.bySubject[key]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.bySubject, key)
		}
	}

	for scope := range sub.scopes {
		h.detachScope(sub, scope)
	}

	close(sub.events)
}

func (h *Hub) detachScope(sub *Subscription, key string) {
	if subs, ok := h.byOrder[key]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.byOrder, key)
		}
	}
	delete(sub.scopes, key)
}
