package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentry/riskgate/model/risk"
)

// Default thresholds applied when an identity has no stored profile.
const (
	DefaultRiskTolerance            = 0.5
	DefaultAutoApproveThreshold     = 0.3
	DefaultRequireApprovalThreshold = 0.7
)

// Profile captures one identity's risk policy. All thresholds live in
// [0,1] and AutoApproveThreshold must not exceed RequireApprovalThreshold.
type Profile struct {
	IdentityID               string                    `json:"identityId" yaml:"identityId"`
	RiskTolerance            float64                   `json:"riskTolerance" yaml:"riskTolerance"`
	AutoApproveThreshold     float64                   `json:"autoApproveThreshold" yaml:"autoApproveThreshold"`
	RequireApprovalThreshold float64                   `json:"requireApprovalThreshold" yaml:"requireApprovalThreshold"`
	CategoryOverrides        map[risk.Category]float64 `json:"categoryOverrides,omitempty" yaml:"categoryOverrides,omitempty"`
	BlockedActions           []string                  `json:"blockedActions,omitempty" yaml:"blockedActions,omitempty"`
	AllowedActions           []string                  `json:"allowedActions,omitempty" yaml:"allowedActions,omitempty"`
	CreatedAt                time.Time                 `json:"createdAt" yaml:"createdAt"`
	UpdatedAt                time.Time                 `json:"updatedAt" yaml:"updatedAt"`
}

// Default returns the profile used for identities that never stored one.
func Default(identityID string) *Profile {
	return &Profile{
		IdentityID:               identityID,
		RiskTolerance:            DefaultRiskTolerance,
		AutoApproveThreshold:     DefaultAutoApproveThreshold,
		RequireApprovalThreshold: DefaultRequireApprovalThreshold,
	}
}

// Validate rejects out-of-range thresholds and an inverted threshold pair
// before anything reaches storage.
func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("profile was nil")
	}
	if p.IdentityID == "" {
		return fmt.Errorf("profile identityId was empty")
	}
	for name, value := range map[string]float64{
		"riskTolerance":            p.RiskTolerance,
		"autoApproveThreshold":     p.AutoApproveThreshold,
		"requireApprovalThreshold": p.RequireApprovalThreshold,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("profile %s %v outside [0,1]", name, value)
		}
	}
	if p.AutoApproveThreshold > p.RequireApprovalThreshold {
		return fmt.Errorf("autoApproveThreshold %v exceeds requireApprovalThreshold %v",
			p.AutoApproveThreshold, p.RequireApprovalThreshold)
	}
	for category, override := range p.CategoryOverrides {
		if override < 0 || override > 1 {
			return fmt.Errorf("category override %s %v outside [0,1]", category, override)
		}
	}
	return nil
}

// IsBlocked reports whether actionType is on the blocklist. Matching is
// case-insensitive on the exact action name.
func (p *Profile) IsBlocked(actionType string) bool {
	return containsFold(p.BlockedActions, actionType)
}

// IsAllowed reports whether actionType is on the allowlist.
func (p *Profile) IsAllowed(actionType string) bool {
	return containsFold(p.AllowedActions, actionType)
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
