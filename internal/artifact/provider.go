package artifact

import (
	"sync/atomic"

	"github.com/keesa/smsparse/internal/index"
)

// Provider hands out the current Store. Swaps are atomic, so a request
// sees exactly one coherent store for its whole lifetime. A Provider with
// no store yet reports not ready through the NotReady store.
type Provider struct {
	current atomic.Pointer[Store]
}

// NotReady is an empty store that fails readiness. Providers start here
// so requests arriving before loading completes are rejected cleanly.
var NotReady = &Store{index: index.Empty(), catalog: index.EmptyCatalog()}

// NewProvider creates a Provider serving the given store. A nil store
// leaves the provider in the not-ready state.
func NewProvider(s *Store) *Provider {
	p := &Provider{}
	if s == nil {
		s = NotReady
	}
	p.current.Store(s)
	return p
}

// Current returns the store to use for a request.
func (p *Provider) Current() *Store {
	return p.current.Load()
}

// Swap atomically replaces the served store. In-flight requests keep the
// store they started with.
func (p *Provider) Swap(s *Store) {
	if s == nil {
		s = NotReady
	}
	p.current.Store(s)
}
