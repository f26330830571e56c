// Package order provides domain entities and business logic for delivery
// orders in the loadboard marketplace. It implements the Order aggregate root
// with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, ownership, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders are posted by a merchant and start in PendingDispatch with no driver
//   - Awarding a bid moves the order to OnTransit and sets driver, price, and dispatch time
//   - A driver is assigned iff the order is OnTransit or Delivered
//   - Delivered and Cancelled are terminal; no further mutation succeeds
//   - OnTransit orders can only be cancelled through the admin override path
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
