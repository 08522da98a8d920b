package autoapprove

import (
	"fmt"

	"github.com/agentry/riskgate/model/risk"
)

// TimeWindow restricts a rule to hours of the day, half-open [Start, End).
// A window may wrap midnight, e.g. {Start: 22, End: 6}.
type TimeWindow struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Contains reports whether hour falls inside the window.
func (w *TimeWindow) Contains(hour int) bool {
	if w.Start <= w.End {
		return hour >= w.Start && hour < w.End
	}
	return hour >= w.Start || hour < w.End
}

// Condition lists the requirements a rule imposes. Absent or empty fields
// are wildcards; every present field must hold for the rule to match.
type Condition struct {
	MaxRiskScore       *float64        `json:"maxRiskScore,omitempty" yaml:"maxRiskScore,omitempty"`
	AllowedActionTypes []string        `json:"allowedActionTypes,omitempty" yaml:"allowedActionTypes,omitempty"`
	AllowedCategories  []risk.Category `json:"allowedCategories,omitempty" yaml:"allowedCategories,omitempty"`
	TimeWindow         *TimeWindow     `json:"timeWindow,omitempty" yaml:"timeWindow,omitempty"`
}

// Rule is one declarative auto-approval entry. Rules are evaluated in the
// order supplied; the first match wins.
type Rule struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Condition Condition `json:"condition" yaml:"condition"`
	Enabled   bool      `json:"enabled" yaml:"enabled"`
}

// Validate rejects malformed rules before they reach the evaluator.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule id was empty")
	}
	if score := r.Condition.MaxRiskScore; score != nil && (*score < 0 || *score > 1) {
		return fmt.Errorf("rule %s maxRiskScore %v outside [0,1]", r.ID, *score)
	}
	if w := r.Condition.TimeWindow; w != nil {
		if w.Start < 0 || w.Start > 23 || w.End < 0 || w.End > 24 {
			return fmt.Errorf("rule %s time window [%d,%d) outside a day", r.ID, w.Start, w.End)
		}
	}
	return nil
}
