package memory

import (
	"time"

	"github.com/agentry/riskgate/service/approval"
	"github.com/agentry/riskgate/service/messaging"
)

type Option func(*service)

// WithTTL overrides the default validity window applied when a request
// arrives without an explicit deadline.
func WithTTL(ttl time.Duration) Option {
	return func(s *service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithPollInterval tunes the WaitForResolution safety-net poll.
func WithPollInterval(interval time.Duration) Option {
	return func(s *service) {
		if interval > 0 {
			s.pollInterval = interval
		}
	}
}

// WithStore swaps the request store, e.g. for a relational implementation.
// The store's Update must be atomic - the state machine depends on it.
func WithStore(requests approval.Store) Option {
	return func(s *service) { s.requests = requests }
}

// WithQueue attaches an externally owned event queue so that downstream
// consumers (orchestration engine, approval UI) share the stream.
func WithQueue(events messaging.Queue[approval.Event]) Option {
	return func(s *service) { s.events = events }
}
