package scorer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/agentry/riskgate/internal/clock"
	"github.com/agentry/riskgate/internal/idgen"
	"github.com/agentry/riskgate/model/risk"
	"github.com/agentry/riskgate/service/dao"
	"github.com/agentry/riskgate/service/dao/store"
	"github.com/agentry/riskgate/service/profile"
	"github.com/agentry/riskgate/tracing"
)

// Service scores proposed actions against per-identity policy profiles and
// persists each assessment as an immutable audit record.
type Service struct {
	profiles    profile.Service
	assessments dao.Service[string, risk.Assessment]
	factors     []Factor
}

// Option customises the scorer.
type Option func(*Service)

// WithFactors replaces the built-in heuristic factor set.
func WithFactors(factors ...Factor) Option {
	return func(s *Service) { s.factors = factors }
}

// WithAssessmentDAO swaps the assessment store.
func WithAssessmentDAO(assessments dao.Service[string, risk.Assessment]) Option {
	return func(s *Service) { s.assessments = assessments }
}

func assessmentKey(a *risk.Assessment) string { return a.ID }

// New creates a scorer reading overrides from the supplied profile service.
func New(profiles profile.Service, options ...Option) *Service {
	ret := &Service{profiles: profiles}
	for _, option := range options {
		option(ret)
	}
	if ret.factors == nil {
		ret.factors = DefaultFactors()
	}
	if ret.assessments == nil {
		ret.assessments = store.NewMemory[string, risk.Assessment](assessmentKey)
	}
	return ret
}

// AssessmentDAO exposes the assessment store so collaborating services
// (outcome learning) can read past assessments.
func (s *Service) AssessmentDAO() dao.Service[string, risk.Assessment] {
	return s.assessments
}

// AssessRisk evaluates the input against the registered factors and the
// identity's profile and persists the resulting assessment. It blocks only
// on the profile read and the assessment write; storage errors propagate.
func (s *Service) AssessRisk(ctx context.Context, input *risk.Input) (assessment *risk.Assessment, err error) {
	ctx, span := tracing.StartSpan(ctx, "scorer.AssessRisk")
	defer func() { tracing.EndSpan(span, err) }()

	if input == nil {
		return nil, fmt.Errorf("assessment input was nil")
	}
	if input.IdentityID == "" {
		return nil, fmt.Errorf("assessment input identityId was empty")
	}
	if input.ActionType == "" {
		return nil, fmt.Errorf("assessment input actionType was empty")
	}

	identityProfile, err := s.profiles.Get(ctx, input.IdentityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %v: %w", input.IdentityID, err)
	}

	view := NewView(input)
	factors, score := s.aggregate(view)
	categories := deriveCategories(view)
	score, blocked := s.adjust(score, view.ActionType, categories, identityProfile)

	requireThreshold := profile.DefaultRequireApprovalThreshold
	if identityProfile != nil {
		requireThreshold = identityProfile.RequireApprovalThreshold
	}

	assessment = &risk.Assessment{
		ID:               idgen.New(),
		IdentityID:       input.IdentityID,
		ActionType:       input.ActionType,
		ActionDetails:    input.ActionDetails,
		Score:            score,
		Level:            risk.LevelOf(score),
		Categories:       categories,
		Factors:          factors,
		RequiresApproval: score >= requireThreshold,
		Blocked:          blocked,
		CreatedAt:        clock.Now(),
	}
	span.SetAttributes(
		attribute.String("risk.level", string(assessment.Level)),
		attribute.Float64("risk.score", assessment.Score),
	)
	if err = s.assessments.Save(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to save assessment %v: %w", assessment.ID, err)
	}
	return assessment, nil
}

// aggregate evaluates every factor and returns the per-factor breakdown
// together with the weighted score, re-normalized by the total weight so
// the factor set can change without breaking the [0,1] bound.
func (s *Service) aggregate(view *View) ([]risk.FactorScore, float64) {
	factors := make([]risk.FactorScore, 0, len(s.factors))
	var weighted, totalWeight float64
	for _, factor := range s.factors {
		score := clamp(factor.Evaluate(view))
		factors = append(factors, risk.FactorScore{
			Name:        factor.Name(),
			Weight:      factor.Weight(),
			Score:       score,
			Description: factor.Describe(score),
		})
		weighted += factor.Weight() * score
		totalWeight += factor.Weight()
	}
	if totalWeight > 0 {
		weighted /= totalWeight
	}
	return factors, weighted
}

// adjust applies profile adjustments in their fixed order: category
// override scaling, then the blocklist (always wins, forces 1.0), then the
// allowlist (can only lower risk). The clamp to [0,1] happens last, after
// override scaling.
func (s *Service) adjust(score float64, actionType string, categories []risk.Category, identityProfile *profile.Profile) (float64, bool) {
	if identityProfile == nil {
		return clamp(score), false
	}
	for _, category := range categories {
		if override, ok := identityProfile.CategoryOverrides[category]; ok {
			score *= 1 + (override - 0.5)
		}
	}
	blocked := identityProfile.IsBlocked(actionType)
	switch {
	case blocked:
		score = 1.0
	case identityProfile.IsAllowed(actionType):
		if score > identityProfile.AutoApproveThreshold {
			score = identityProfile.AutoApproveThreshold
		}
	}
	return clamp(score), blocked
}

func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	}
	return score
}
