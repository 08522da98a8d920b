package approval

import (
	"time"

	"github.com/agentry/riskgate/model/risk"
)

// Status is the lifecycle state of an approval request. Every status other
// than pending is terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// Terminal reports whether the status permits no further transition.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusExpired
}

// DefaultTTL bounds how long a request stays actionable unless the caller
// overrides ExpiresAt.
const DefaultTTL = 24 * time.Hour

// Request represents a request for approval of a specific assessed action.
type Request struct {
	ID             string                 `json:"id"`
	TaskID         string                 `json:"taskId,omitempty"`
	StepID         string                 `json:"stepId,omitempty"`
	IdentityID     string                 `json:"identityId,omitempty"`
	ActionType     string                 `json:"actionType"`
	ActionDetails  map[string]interface{} `json:"actionDetails,omitempty"`
	AssessmentID   string                 `json:"assessmentId"`
	RiskLevel      risk.Level             `json:"riskLevel,omitempty"`
	Status         Status                 `json:"status"`
	RequestedAt    time.Time              `json:"requestedAt"`
	ExpiresAt      time.Time              `json:"expiresAt"`
	RespondedAt    *time.Time             `json:"respondedAt,omitempty"`
	ResponderID    string                 `json:"responderId,omitempty"`
	ResponseReason string                 `json:"responseReason,omitempty"`
}

// Event topics, one per lifecycle transition.
const (
	TopicApprovalRequested = "approval.requested"
	TopicApprovalGranted   = "approval.granted"
	TopicApprovalDenied    = "approval.denied"
	TopicApprovalExpired   = "approval.expired"
)

// Event is the envelope published to the external notification collaborator
// on every lifecycle transition. Delivery is fire-and-forget: a publish
// failure is logged and must never fail the transition itself.
type Event struct {
	Topic       string     `json:"topic"`
	ApprovalID  string     `json:"approvalId"`
	ActionType  string     `json:"actionType,omitempty"`
	RiskLevel   risk.Level `json:"riskLevel,omitempty"`
	ResponderID string     `json:"responderId,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	At          time.Time  `json:"at"`
}

// PendingFilter narrows ListPending results.
type PendingFilter func(r *Request) bool

// WithTaskID keeps requests belonging to the given task.
func WithTaskID(taskID string) PendingFilter {
	return func(r *Request) bool { return r.TaskID == taskID }
}

// WithIdentityID keeps requests raised for the given identity.
func WithIdentityID(identityID string) PendingFilter {
	return func(r *Request) bool { return r.IdentityID == identityID }
}

// WithActionType keeps requests for the given action type.
func WithActionType(actionType string) PendingFilter {
	return func(r *Request) bool { return r.ActionType == actionType }
}
