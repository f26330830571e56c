package commands

import "sync"

// publishGate serializes the commit-publish window per order. Subscribers
// must see an order's events in the sequence the owning transactions
// committed; holding the order's gate from just before Commit until after
// Publish means a later commit cannot get its event out first.
type publishGate struct {
	mu      sync.Mutex
	entries map[string]*gateEntry
}

type gateEntry struct {
	mu   sync.Mutex
	refs int
}

func newPublishGate() *publishGate {
	return &publishGate{entries: make(map[string]*gateEntry)}
}

// lock acquires the gate for the key and returns the release func. Entries
// are reference counted so the map does not grow with every order ever seen.
func (g *publishGate) lock(key string) func() {
	g.mu.Lock()
	entry := g.entries[key]
	if entry == nil {
		entry = &gateEntry{}
		g.entries[key] = entry
	}
	entry.refs++
	g.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		g.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(g.entries, key)
		}
		g.mu.Unlock()
	}
}

// orderGate is shared by every command handler in the process; all writers
// publishing events for the same order contend on the same entry.
var orderGate = newPublishGate()
