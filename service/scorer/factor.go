package scorer

import (
	"encoding/json"
	"strings"

	"github.com/agentry/riskgate/model/risk"
)

// View is a normalized, matching-friendly projection of an assessment
// input: the lower-cased action type, a lower-cased serialized rendering of
// the action type plus details, and the optional context flags. Malformed
// details render as an empty object rather than failing the assessment.
type View struct {
	ActionType string
	Text       string
	Context    risk.ActionContext
}

// NewView builds a View from an input.
func NewView(input *risk.Input) *View {
	ret := &View{ActionType: strings.ToLower(input.ActionType)}
	details := "{}"
	if len(input.ActionDetails) > 0 {
		if data, err := json.Marshal(input.ActionDetails); err == nil {
			details = string(data)
		}
	}
	ret.Text = ret.ActionType + " " + strings.ToLower(details)
	if input.Context != nil {
		ret.Context = *input.Context
	}
	return ret
}

// Contains reports whether the serialized view mentions any of the terms.
func (v *View) Contains(terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(v.Text, term) {
			return true
		}
	}
	return false
}

// Factor scores one independent dimension of an action's danger. All
// implementations must be pure: same view, same score.
type Factor interface {
	// Name identifies the factor in the persisted per-factor breakdown.
	Name() string

	// Weight is the factor's fixed share of the aggregate; the scorer
	// re-normalizes by the sum of weights, so the set can change freely.
	Weight() float64

	// Evaluate returns a score in [0,1] for the supplied view.
	Evaluate(view *View) float64

	// Describe explains a score for the audit record.
	Describe(score float64) string
}

// DefaultFactors returns the built-in heuristic factor set in evaluation
// order.
func DefaultFactors() []Factor {
	return []Factor{
		&reversibilityFactor{},
		&scopeFactor{},
		&privilegeFactor{},
		&exposureFactor{},
		&sensitivityFactor{},
	}
}
