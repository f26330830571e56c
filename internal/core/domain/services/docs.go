// Package services contains domain services that coordinate operations
// across multiple aggregates. Services here hold pure business logic with no
// infrastructure dependencies; persistence and transactions stay in the
// application layer.
//
// The package currently provides BidAwarder, which settles an order's bidding
// round by accepting the winning bid, rejecting the rest and moving the order
// on transit.
package services
