package approval

import (
	"github.com/agentry/riskgate/service/dao"
)

// Store persists approval requests. Update must apply its callback
// atomically with respect to concurrent writers - the state machine relies
// on it for compare-and-set transitions out of pending, so a responder and
// the expiry sweep crossing the same row resolve to exactly one terminal
// state.
type Store interface {
	dao.Service[string, Request]
	dao.Mutator[string, Request]
}
