package autoapprove

import (
	"strings"

	"github.com/agentry/riskgate/internal/clock"
	"github.com/agentry/riskgate/model/risk"
)

// ShouldAutoApprove reports whether any enabled rule matches the
// assessment. Rules are checked in order and the first match wins; no match
// means manual approval. A blocklisted action never auto-approves,
// whatever the rules say.
func ShouldAutoApprove(assessment *risk.Assessment, actionType string, rules []Rule) bool {
	if assessment == nil || assessment.Blocked {
		return false
	}
	for i := range rules {
		rule := &rules[i]
		if !rule.Enabled {
			continue
		}
		if matches(rule, assessment, actionType) {
			return true
		}
	}
	return false
}

// matches requires every present condition field to hold; absent fields are
// wildcards.
func matches(rule *Rule, assessment *risk.Assessment, actionType string) bool {
	condition := &rule.Condition
	if condition.MaxRiskScore != nil && assessment.Score > *condition.MaxRiskScore {
		return false
	}
	if len(condition.AllowedActionTypes) > 0 && !containsFold(condition.AllowedActionTypes, actionType) {
		return false
	}
	if len(condition.AllowedCategories) > 0 && !anyCategory(assessment.Categories, condition.AllowedCategories) {
		return false
	}
	if condition.TimeWindow != nil && !condition.TimeWindow.Contains(clock.Now().Hour()) {
		return false
	}
	return true
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

func anyCategory(have, allowed []risk.Category) bool {
	for _, category := range have {
		if risk.HasCategory(allowed, category) {
			return true
		}
	}
	return false
}
