package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentry/riskgate/model/risk"
	"github.com/agentry/riskgate/service/approval"
	qmem "github.com/agentry/riskgate/service/messaging/memory"
)

func newRequest(id string) *approval.Request {
	return &approval.Request{
		ID:           id,
		TaskID:       "task-1",
		IdentityID:   "agent-1",
		ActionType:   "delete_database",
		AssessmentID: "assessment-1",
		RiskLevel:    risk.LevelHigh,
	}
}

func TestRequestApproval(t *testing.T) {
	ctx := context.Background()
	svc := New()

	created, err := svc.RequestApproval(ctx, newRequest(""))
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, approval.StatusPending, created.Status)
	assert.False(t, created.RequestedAt.IsZero())
	assert.Equal(t, approval.DefaultTTL, created.ExpiresAt.Sub(created.RequestedAt))

	_, err = svc.RequestApproval(ctx, nil)
	assert.Error(t, err)
	_, err = svc.RequestApproval(ctx, &approval.Request{})
	assert.Error(t, err, "missing action type must be rejected before persistence")
}

func TestRequestApprovalEmitsEvent(t *testing.T) {
	ctx := context.Background()
	svc := New()

	created, err := svc.RequestApproval(ctx, newRequest("r1"))
	assert.NoError(t, err)

	consumeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	msg, err := svc.Queue().Consume(consumeCtx)
	assert.NoError(t, err)
	event := msg.T()
	assert.Equal(t, approval.TopicApprovalRequested, event.Topic)
	assert.Equal(t, created.ID, event.ApprovalID)
	assert.Equal(t, risk.LevelHigh, event.RiskLevel)
	if assert.NotNil(t, event.ExpiresAt) {
		assert.Equal(t, created.ExpiresAt, *event.ExpiresAt)
	}
	assert.NoError(t, msg.Ack())
}

func TestApproveAndReject(t *testing.T) {
	type testCase struct {
		name     string
		decide   func(svc approval.Service, id string) (*approval.Request, error)
		expected approval.Status
		topic    string
	}

	tests := []testCase{
		{
			name: "approve",
			decide: func(svc approval.Service, id string) (*approval.Request, error) {
				return svc.Approve(context.Background(), id, "reviewer-1", "looks safe")
			},
			expected: approval.StatusApproved,
			topic:    approval.TopicApprovalGranted,
		},
		{
			name: "reject",
			decide: func(svc approval.Service, id string) (*approval.Request, error) {
				return svc.Reject(context.Background(), id, "reviewer-1", "too risky")
			},
			expected: approval.StatusRejected,
			topic:    approval.TopicApprovalDenied,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			svc := New()
			created, _ := svc.RequestApproval(ctx, newRequest("r1"))

			resolved, err := tc.decide(svc, created.ID)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, resolved.Status)
			assert.Equal(t, "reviewer-1", resolved.ResponderID)
			assert.NotNil(t, resolved.RespondedAt)

			// requested event first, then the resolution event
			consumeCtx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			first, _ := svc.Queue().Consume(consumeCtx)
			assert.Equal(t, approval.TopicApprovalRequested, first.T().Topic)
			second, err := svc.Queue().Consume(consumeCtx)
			assert.NoError(t, err)
			assert.Equal(t, tc.topic, second.T().Topic)
			assert.Equal(t, "reviewer-1", second.T().ResponderID)
		})
	}
}

func TestRejectRequiresReason(t *testing.T) {
	ctx := context.Background()
	svc := New()
	created, _ := svc.RequestApproval(ctx, newRequest("r1"))

	_, err := svc.Reject(ctx, created.ID, "reviewer-1", "")
	assert.Error(t, err)

	current, _ := svc.Get(ctx, created.ID)
	assert.Equal(t, approval.StatusPending, current.Status)
}

func TestTerminalStateIsFinal(t *testing.T) {
	ctx := context.Background()
	svc := New()
	created, _ := svc.RequestApproval(ctx, newRequest("r1"))

	_, err := svc.Approve(ctx, created.ID, "reviewer-1", "")
	assert.NoError(t, err)

	_, err = svc.Reject(ctx, created.ID, "reviewer-2", "changed my mind")
	status, resolved := approval.IsAlreadyResolved(err)
	assert.True(t, resolved)
	assert.Equal(t, approval.StatusApproved, status)

	_, err = svc.Approve(ctx, created.ID, "reviewer-2", "")
	_, resolved = approval.IsAlreadyResolved(err)
	assert.True(t, resolved)

	current, _ := svc.Get(ctx, created.ID)
	assert.Equal(t, approval.StatusApproved, current.Status)
	assert.Equal(t, "reviewer-1", current.ResponderID)
}

func TestGetUnknown(t *testing.T) {
	svc := New()
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, approval.ErrNotFound)
}

func TestListPendingFilters(t *testing.T) {
	ctx := context.Background()
	svc := New()

	r1 := newRequest("r1")
	r2 := newRequest("r2")
	r2.TaskID = "task-2"
	r3 := newRequest("r3")
	r3.ActionType = "read_profile"
	for _, r := range []*approval.Request{r1, r2, r3} {
		_, err := svc.RequestApproval(ctx, r)
		assert.NoError(t, err)
	}
	_, _ = svc.Approve(ctx, "r3", "reviewer-1", "")

	all, err := svc.ListPending(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2, "resolved requests are not pending")

	byTask, err := svc.ListPending(ctx, approval.WithTaskID("task-2"))
	assert.NoError(t, err)
	if assert.Len(t, byTask, 1) {
		assert.Equal(t, "r2", byTask[0].ID)
	}

	none, err := svc.ListPending(ctx, approval.WithTaskID("task-1"), approval.WithActionType("read_profile"))
	assert.NoError(t, err)
	assert.Empty(t, none)
}

// Expired request: the sweep resolves it and a late approval fails with an
// "already resolved" signal.
func TestTransitionsSurviveBackedUpQueue(t *testing.T) {
	ctx := context.Background()
	queue := qmem.NewQueue[approval.Event](qmem.Config{
		MaxRetries: 1, RetryDelay: time.Millisecond, DeadLetter: true, QueueBuffer: 2,
	})
	svc := New(WithQueue(queue))

	// nobody consumes, so the buffer fills after two events; every later
	// lifecycle transition must still complete, dropping its event
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			created, err := svc.RequestApproval(ctx, newRequest(""))
			if !assert.NoError(t, err) {
				return
			}
			_, err = svc.Approve(ctx, created.ID, "reviewer-1", "acceptable")
			if !assert.NoError(t, err) {
				return
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("approval transition stalled on a full event queue")
	}
	assert.Equal(t, 2, queue.Size())
}

func TestCheckExpired(t *testing.T) {
	ctx := context.Background()
	svc := New()

	short := newRequest("short")
	short.ExpiresAt = time.Now().Add(30 * time.Millisecond)
	_, err := svc.RequestApproval(ctx, short)
	assert.NoError(t, err)
	longLived, err := svc.RequestApproval(ctx, newRequest("long"))
	assert.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	expired, err := svc.CheckExpired(ctx)
	assert.NoError(t, err)
	if assert.Len(t, expired, 1) {
		assert.Equal(t, "short", expired[0].ID)
		assert.Equal(t, approval.StatusExpired, expired[0].Status)
	}

	// sweep is idempotent
	again, err := svc.CheckExpired(ctx)
	assert.NoError(t, err)
	assert.Empty(t, again)

	// untouched rows stay pending
	current, _ := svc.Get(ctx, longLived.ID)
	assert.Equal(t, approval.StatusPending, current.Status)

	// late approval of the expired row fails loudly
	_, err = svc.Approve(ctx, "short", "reviewer-1", "")
	status, resolved := approval.IsAlreadyResolved(err)
	assert.True(t, resolved)
	assert.Equal(t, approval.StatusExpired, status)
}

func TestCheckExpiredSkipsResolved(t *testing.T) {
	ctx := context.Background()
	svc := New()

	r := newRequest("r1")
	r.ExpiresAt = time.Now().Add(10 * time.Millisecond)
	_, _ = svc.RequestApproval(ctx, r)
	_, err := svc.Approve(ctx, "r1", "reviewer-1", "")
	assert.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	expired, err := svc.CheckExpired(ctx)
	assert.NoError(t, err)
	assert.Empty(t, expired)

	current, _ := svc.Get(ctx, "r1")
	assert.Equal(t, approval.StatusApproved, current.Status)
}

// A responder and the sweep crossing the same row must resolve it to
// exactly one terminal state.
func TestApproveExpireRace(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		svc := New()
		r := newRequest("r1")
		r.ExpiresAt = time.Now().Add(time.Millisecond)
		_, err := svc.RequestApproval(ctx, r)
		assert.NoError(t, err)
		time.Sleep(2 * time.Millisecond)

		var wins int64
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := svc.Approve(ctx, "r1", "reviewer-1", ""); err == nil {
				atomic.AddInt64(&wins, 1)
			}
		}()
		go func() {
			defer wg.Done()
			if expired, err := svc.CheckExpired(ctx); err == nil && len(expired) > 0 {
				atomic.AddInt64(&wins, 1)
			}
		}()
		wg.Wait()

		assert.Equal(t, int64(1), wins, "exactly one transition must win")
		current, _ := svc.Get(ctx, "r1")
		assert.True(t, current.Status.Terminal())
		assert.Contains(t, []approval.Status{approval.StatusApproved, approval.StatusExpired}, current.Status)
	}
}

func TestWaitForResolution(t *testing.T) {
	type testCase struct {
		name        string
		approve     bool
		expectError bool
		timeout     time.Duration
		decideDelay time.Duration
	}

	tests := []testCase{{
		name:        "approved before timeout",
		approve:     true,
		timeout:     500 * time.Millisecond,
		decideDelay: 10 * time.Millisecond,
	}, {
		name:        "rejected before timeout",
		approve:     false,
		timeout:     500 * time.Millisecond,
		decideDelay: 10 * time.Millisecond,
	}, {
		name:        "timeout waiting for decision",
		approve:     true, // irrelevant - decision arrives after timeout
		expectError: true,
		timeout:     50 * time.Millisecond,
		decideDelay: 200 * time.Millisecond,
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			svc := New()
			created, err := svc.RequestApproval(ctx, newRequest("r1"))
			assert.NoError(t, err)

			go func() {
				time.Sleep(tc.decideDelay)
				if tc.approve {
					_, _ = svc.Approve(ctx, created.ID, "reviewer-1", "")
				} else {
					_, _ = svc.Reject(ctx, created.ID, "reviewer-1", "nope")
				}
			}()

			resolved, err := svc.WaitForResolution(ctx, created.ID, tc.timeout)
			if tc.expectError {
				assert.ErrorIs(t, err, approval.ErrWaitTimeout)
				// caller timeout never mutates the request
				current, _ := svc.Get(ctx, created.ID)
				assert.Equal(t, approval.StatusPending, current.Status)
				return
			}
			assert.NoError(t, err)
			expected := approval.StatusRejected
			if tc.approve {
				expected = approval.StatusApproved
			}
			assert.Equal(t, expected, resolved.Status)
		})
	}
}

// Expiry must be observed by a waiter even when the background sweep never
// runs.
func TestWaitForResolutionObservesExpiry(t *testing.T) {
	ctx := context.Background()
	svc := New(WithPollInterval(10 * time.Millisecond))

	r := newRequest("r1")
	r.ExpiresAt = time.Now().Add(20 * time.Millisecond)
	created, err := svc.RequestApproval(ctx, r)
	assert.NoError(t, err)

	resolved, err := svc.WaitForResolution(ctx, created.ID, time.Second)
	assert.NoError(t, err)
	assert.Equal(t, approval.StatusExpired, resolved.Status)
}

func TestWaitForResolutionAlreadyTerminal(t *testing.T) {
	ctx := context.Background()
	svc := New()
	created, _ := svc.RequestApproval(ctx, newRequest("r1"))
	_, _ = svc.Approve(ctx, created.ID, "reviewer-1", "")

	resolved, err := svc.WaitForResolution(ctx, created.ID, time.Second)
	assert.NoError(t, err)
	assert.Equal(t, approval.StatusApproved, resolved.Status)
}

func TestWaitForResolutionUnknownRequest(t *testing.T) {
	svc := New()
	_, err := svc.WaitForResolution(context.Background(), "missing", time.Second)
	assert.ErrorIs(t, err, approval.ErrNotFound)
}

func TestWaitForResolutionInvalidTimeout(t *testing.T) {
	svc := New()
	_, err := svc.WaitForResolution(context.Background(), "r1", 0)
	assert.Error(t, err)
}

// Many waiters on the same request all observe the single resolution.
func TestWaitForResolutionManyWaiters(t *testing.T) {
	ctx := context.Background()
	svc := New()
	created, _ := svc.RequestApproval(ctx, newRequest("r1"))

	const waiters = 8
	results := make(chan approval.Status, waiters)
	var wg sync.WaitGroup
	wg.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			defer wg.Done()
			resolved, err := svc.WaitForResolution(ctx, created.ID, time.Second)
			if err == nil {
				results <- resolved.Status
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	_, err := svc.Approve(ctx, created.ID, "reviewer-1", "")
	assert.NoError(t, err)
	wg.Wait()
	close(results)

	count := 0
	for status := range results {
		assert.Equal(t, approval.StatusApproved, status)
		count++
	}
	assert.Equal(t, waiters, count)
}
