// Package observe provides stock subscribers: a state trace logger and an
// invocation counter. Logging is one possible subscriber, not part of the
// container contract.
package observe

import (
	"log"
	"sync/atomic"

	"github.com/comalice/storex"
)

// NewTrace returns a subscriber that logs the store's state after every
// dispatch. It runs on the dispatching goroutine; GetState never blocks
// during notification.
func NewTrace[S any](logger *log.Logger, store *storex.Store[S]) storex.Subscriber {
	return func() {
		logger.Printf("state: %+v", store.GetState())
	}
}

// Counter counts dispatch notifications. Safe for concurrent stores.
type Counter struct {
	n atomic.Int64
}

// Subscriber returns the counting callback to register on a store.
func (c *Counter) Subscriber() storex.Subscriber {
	return func() { c.n.Add(1) }
}

// Count returns the number of notifications observed so far.
func (c *Counter) Count() int64 {
	return c.n.Load()
}
