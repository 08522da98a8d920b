package risk

import "time"

// Input describes a proposed agent action submitted for scoring. It is
// ephemeral - only the resulting Assessment is persisted.
type Input struct {
	IdentityID    string                 `json:"identityId"`
	ActionType    string                 `json:"actionType"`
	ActionDetails map[string]interface{} `json:"actionDetails,omitempty"`
	Context       *ActionContext         `json:"context,omitempty"`
}

// ActionContext carries optional execution context flags that adjust scoring.
type ActionContext struct {
	ElevatedPrivileges bool `json:"elevatedPrivileges,omitempty"`
	VerifiedUser       bool `json:"verifiedUser,omitempty"`
}

// FactorScore records one scored dimension of an assessment together with
// the weight it contributed and a human-readable explanation.
type FactorScore struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Score       float64 `json:"score"`
	Description string  `json:"description,omitempty"`
}

// Assessment is the immutable, append-only audit record produced by the
// scorer. Once persisted it is never mutated - outcome feedback and
// recalibration are recorded separately.
type Assessment struct {
	ID               string                 `json:"id"`
	IdentityID       string                 `json:"identityId"`
	ActionType       string                 `json:"actionType"`
	ActionDetails    map[string]interface{} `json:"actionDetails,omitempty"`
	Score            float64                `json:"score"`
	Level            Level                  `json:"level"`
	Categories       []Category             `json:"categories"`
	Factors          []FactorScore          `json:"factors"`
	RequiresApproval bool                   `json:"requiresApproval"`
	Blocked          bool                   `json:"blocked,omitempty"` // action is on the identity's blocklist
	CreatedAt        time.Time              `json:"createdAt"`
}
