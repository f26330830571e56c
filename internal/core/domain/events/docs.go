// Package events defines the domain events emitted after order and bid
// lifecycle transitions commit. Events are plain value objects carrying
// aggregate snapshots; publishing them is the job of the application layer
// and its notification ports.
package events
