package approval

import (
	"context"
	"time"

	"github.com/agentry/riskgate/service/messaging"
)

// Service defines the approval manager contract.
type Service interface {
	// RequestApproval opens a pending request. When r.ExpiresAt is zero the
	// service applies its TTL (DefaultTTL unless configured otherwise). An
	// "approval requested" event is emitted fire-and-forget.
	RequestApproval(ctx context.Context, r *Request) (*Request, error)

	// Approve transitions a pending request to approved with responder
	// metadata. A request in any terminal state yields AlreadyResolvedError.
	Approve(ctx context.Context, id, responderID, reason string) (*Request, error)

	// Reject transitions a pending request to rejected.
	Reject(ctx context.Context, id, responderID, reason string) (*Request, error)

	// Get loads a request; unknown ids yield ErrNotFound.
	Get(ctx context.Context, id string) (*Request, error)

	// ListPending returns pending requests matching every supplied filter.
	ListPending(ctx context.Context, filters ...PendingFilter) ([]*Request, error)

	// CheckExpired idempotently transitions every pending request whose
	// deadline has passed to expired and returns the affected requests.
	// Safe to run concurrently with itself and with Approve/Reject.
	CheckExpired(ctx context.Context) ([]*Request, error)

	// WaitForResolution blocks until the request leaves pending or timeout
	// elapses, returning the first terminal snapshot observed. A caller-side
	// timeout yields ErrWaitTimeout without mutating the request.
	WaitForResolution(ctx context.Context, id string, timeout time.Duration) (*Request, error)

	// Queue exposes the lifecycle event stream.
	Queue() messaging.Queue[Event]
}
