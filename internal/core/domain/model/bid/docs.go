// Package bid provides domain entities and business logic for driver bids in
// the loadboard marketplace. It implements the Bid aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Bid: The aggregate root that manages bid identity, ownership, and lifecycle
//   - Status: A state machine that enforces valid bid status transitions
//
// Key business rules:
//   - Bids are placed by a driver on an open order and start in Pending
//   - A driver holds at most one Pending bid per order; a replacement bid
//     withdraws the previous one
//   - Accepted, Rejected and Withdrawn are terminal; every transition starts
//     from Pending and happens exactly once
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package bid
