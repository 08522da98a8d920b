package memory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/agentry/riskgate/internal/clock"
	"github.com/agentry/riskgate/internal/idgen"
	"github.com/agentry/riskgate/service/approval"
	"github.com/agentry/riskgate/service/dao"
	"github.com/agentry/riskgate/service/dao/store"
	"github.com/agentry/riskgate/service/messaging"
	qmem "github.com/agentry/riskgate/service/messaging/memory"
	"github.com/agentry/riskgate/tracing"
)

type service struct {
	requests approval.Store
	events   messaging.Queue[approval.Event]

	ttl          time.Duration
	pollInterval time.Duration

	// per-request wakeup channels; the transitioning writer fires them so
	// waiters observe a resolution without waiting for the next poll
	waiterMu sync.Mutex
	waiters  map[string][]chan approval.Request
}

func requestKey(r *approval.Request) string { return r.ID }

// New creates an in-memory approval manager.
func New(options ...Option) approval.Service {
	ret := &service{
		ttl:          approval.DefaultTTL,
		pollInterval: 250 * time.Millisecond,
		waiters:      make(map[string][]chan approval.Request),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.requests == nil {
		ret.requests = store.NewMemory[string, approval.Request](requestKey)
	}
	if ret.events == nil {
		ret.events = qmem.NewQueue[approval.Event](qmem.DefaultConfig())
	}
	return ret
}

func (s *service) RequestApproval(ctx context.Context, r *approval.Request) (request *approval.Request, err error) {
	ctx, span := tracing.StartSpan(ctx, "approval.RequestApproval")
	defer func() { tracing.EndSpan(span, err) }()

	if r == nil {
		return nil, fmt.Errorf("approval request was nil")
	}
	if r.ActionType == "" {
		return nil, fmt.Errorf("approval request actionType was empty")
	}
	now := clock.Now()
	created := *r
	if created.ID == "" {
		created.ID = idgen.New()
	}
	created.Status = approval.StatusPending
	created.RequestedAt = now
	if created.ExpiresAt.IsZero() {
		created.ExpiresAt = now.Add(s.ttl)
	}
	if !created.ExpiresAt.After(created.RequestedAt) {
		return nil, fmt.Errorf("approval request %s expires at %v, before it was requested", created.ID, created.ExpiresAt)
	}
	if err = s.requests.Save(ctx, &created); err != nil {
		return nil, fmt.Errorf("failed to save approval %v: %w", created.ID, err)
	}
	s.publish(ctx, &approval.Event{
		Topic:      approval.TopicApprovalRequested,
		ApprovalID: created.ID,
		ActionType: created.ActionType,
		RiskLevel:  created.RiskLevel,
		ExpiresAt:  &created.ExpiresAt,
		At:         now,
	})
	return &created, nil
}

func (s *service) Approve(ctx context.Context, id, responderID, reason string) (*approval.Request, error) {
	return s.transition(ctx, id, approval.StatusApproved, responderID, reason)
}

func (s *service) Reject(ctx context.Context, id, responderID, reason string) (*approval.Request, error) {
	if reason == "" {
		return nil, fmt.Errorf("rejection of approval %s requires a reason", id)
	}
	return s.transition(ctx, id, approval.StatusRejected, responderID, reason)
}

func (s *service) Get(ctx context.Context, id string) (*approval.Request, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	r, err := s.requests.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("approval %s: %w", id, approval.ErrNotFound)
	}
	return r, nil
}

func (s *service) ListPending(ctx context.Context, filters ...approval.PendingFilter) ([]*approval.Request, error) {
	all, err := s.requests.List(ctx, dao.NewParameter("Status", string(approval.StatusPending)))
	if err != nil {
		return nil, err
	}
	pending := make([]*approval.Request, 0, len(all))
outer:
	for _, r := range all {
		if r.Status != approval.StatusPending {
			continue
		}
		for _, filter := range filters {
			if !filter(r) {
				continue outer
			}
		}
		pending = append(pending, r)
	}
	return pending, nil
}

func (s *service) CheckExpired(ctx context.Context) (expired []*approval.Request, err error) {
	ctx, span := tracing.StartSpan(ctx, "approval.CheckExpired")
	defer func() { tracing.EndSpan(span, err) }()

	all, err := s.requests.List(ctx, dao.NewParameter("Status", string(approval.StatusPending)))
	if err != nil {
		return nil, err
	}
	now := clock.Now()
	for _, r := range all {
		if r.Status != approval.StatusPending || !r.ExpiresAt.Before(now) {
			continue
		}
		snapshot, transitionErr := s.transition(ctx, r.ID, approval.StatusExpired, "", "")
		if transitionErr != nil {
			// lost the race to a responder or a concurrent sweep; the row
			// already reached its single terminal state
			if _, resolved := approval.IsAlreadyResolved(transitionErr); resolved {
				continue
			}
			return nil, transitionErr
		}
		expired = append(expired, snapshot)
	}
	return expired, nil
}

func (s *service) WaitForResolution(ctx context.Context, id string, timeout time.Duration) (*approval.Request, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("wait timeout must be positive, had %v", timeout)
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status.Terminal() {
		return r, nil
	}

	wakeup := s.addWaiter(id)
	defer s.removeWaiter(id, wakeup)

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	// polling is a safety net against a missed wakeup; it also re-checks
	// the request's own deadline so expiry is observed even when the
	// background sweep has not run yet
	poll := time.NewTicker(s.pollInterval)
	defer poll.Stop()

	for {
		select {
		case snapshot := <-wakeup:
			return &snapshot, nil
		case <-poll.C:
			if r, err = s.Get(ctx, id); err != nil {
				return nil, err
			}
			if r.Status.Terminal() {
				return r, nil
			}
			if r.ExpiresAt.Before(clock.Now()) {
				snapshot, transitionErr := s.transition(ctx, id, approval.StatusExpired, "", "")
				if transitionErr == nil {
					return snapshot, nil
				}
				if _, resolved := approval.IsAlreadyResolved(transitionErr); resolved {
					return s.Get(ctx, id)
				}
				return nil, transitionErr
			}
		case <-deadline.C:
			return nil, fmt.Errorf("approval %s: %w", id, approval.ErrWaitTimeout)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (s *service) Queue() messaging.Queue[approval.Event] { return s.events }

// transition performs the guarded pending -> terminal move as a single
// atomic conditional update, then wakes waiters and emits the lifecycle
// event.
func (s *service) transition(ctx context.Context, id string, to approval.Status, responderID, reason string) (*approval.Request, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	var snapshot approval.Request
	err := s.requests.Update(ctx, id, func(r *approval.Request) error {
		if r.Status != approval.StatusPending {
			return &approval.AlreadyResolvedError{ID: id, Status: r.Status}
		}
		r.Status = to
		if to != approval.StatusExpired {
			now := clock.Now()
			r.RespondedAt = &now
			r.ResponderID = responderID
			r.ResponseReason = reason
		}
		snapshot = *r
		return nil
	})
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, fmt.Errorf("approval %s: %w", id, approval.ErrNotFound)
		}
		return nil, err
	}

	s.notifyWaiters(id, snapshot)
	s.publish(ctx, &approval.Event{
		Topic:       eventTopic(to),
		ApprovalID:  id,
		ActionType:  snapshot.ActionType,
		RiskLevel:   snapshot.RiskLevel,
		ResponderID: snapshot.ResponderID,
		Reason:      snapshot.ResponseReason,
		At:          clock.Now(),
	})
	return &snapshot, nil
}

func eventTopic(status approval.Status) string {
	switch status {
	case approval.StatusApproved:
		return approval.TopicApprovalGranted
	case approval.StatusRejected:
		return approval.TopicApprovalDenied
	default:
		return approval.TopicApprovalExpired
	}
}

// publishTimeout bounds the blocking publish fallback for queues without a
// non-blocking path.
const publishTimeout = 50 * time.Millisecond

// publish emits e fire-and-forget; a delivery failure or a backed-up queue
// must never fail or stall the transition that produced it, so the event is
// logged and dropped on back-pressure.
func (s *service) publish(ctx context.Context, e *approval.Event) {
	var err error
	if q, ok := s.events.(messaging.TryPublisher[approval.Event]); ok {
		err = q.TryPublish(ctx, e)
	} else {
		bounded, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		err = s.events.Publish(bounded, e)
	}
	if err != nil {
		log.Printf("approval: dropped %s event for %s: %v", e.Topic, e.ApprovalID, err)
	}
}

func (s *service) addWaiter(id string) chan approval.Request {
	ch := make(chan approval.Request, 1)
	s.waiterMu.Lock()
	s.waiters[id] = append(s.waiters[id], ch)
	s.waiterMu.Unlock()
	return ch
}

func (s *service) removeWaiter(id string, ch chan approval.Request) {
	s.waiterMu.Lock()
	defer s.waiterMu.Unlock()
	remaining := s.waiters[id][:0]
	for _, existing := range s.waiters[id] {
		if existing != ch {
			remaining = append(remaining, existing)
		}
	}
	if len(remaining) == 0 {
		delete(s.waiters, id)
		return
	}
	s.waiters[id] = remaining
}

func (s *service) notifyWaiters(id string, snapshot approval.Request) {
	s.waiterMu.Lock()
	defer s.waiterMu.Unlock()
	for _, ch := range s.waiters[id] {
		select {
		case ch <- snapshot:
		default:
		}
	}
	delete(s.waiters, id)
}

var _ approval.Service = (*service)(nil)
