package learning

import (
	"context"
	"fmt"

	"github.com/agentry/riskgate/internal/clock"
	"github.com/agentry/riskgate/internal/idgen"
	"github.com/agentry/riskgate/model/risk"
	"github.com/agentry/riskgate/service/dao"
	"github.com/agentry/riskgate/service/dao/store"
)

// Divergence margins: negative feedback on a score this low means the
// scorer underestimated, positive feedback on a score this high means it
// overestimated.
const (
	underestimateBelow = 0.5
	overestimateAbove  = 0.7
)

// Service appends outcome rows and derives learning events.
type Service struct {
	assessments dao.Service[string, risk.Assessment]
	outcomes    dao.Service[string, risk.Outcome]
	events      dao.Service[string, risk.LearningEvent]
}

// Option customises the learning service.
type Option func(*Service)

// WithOutcomeDAO swaps the outcome store.
func WithOutcomeDAO(outcomes dao.Service[string, risk.Outcome]) Option {
	return func(s *Service) { s.outcomes = outcomes }
}

// WithEventDAO swaps the learning event store.
func WithEventDAO(events dao.Service[string, risk.LearningEvent]) Option {
	return func(s *Service) { s.events = events }
}

func outcomeKey(o *risk.Outcome) string     { return o.ID }
func eventKey(e *risk.LearningEvent) string { return e.ID }

// New creates a learning service reading past assessments from the
// supplied DAO.
func New(assessments dao.Service[string, risk.Assessment], options ...Option) *Service {
	ret := &Service{assessments: assessments}
	for _, option := range options {
		option(ret)
	}
	if ret.outcomes == nil {
		ret.outcomes = store.NewMemory[string, risk.Outcome](outcomeKey)
	}
	if ret.events == nil {
		ret.events = store.NewMemory[string, risk.LearningEvent](eventKey)
	}
	return ret
}

// LearnFromOutcome appends the outcome and, when feedback diverges from the
// predicted score beyond the fixed margins, records a learning event. The
// returned event is nil when prediction and feedback agree.
func (s *Service) LearnFromOutcome(ctx context.Context, assessmentID string, outcome *risk.Outcome) (*risk.LearningEvent, error) {
	if assessmentID == "" {
		return nil, dao.ErrInvalidID
	}
	if outcome == nil {
		return nil, dao.ErrNilEntity
	}
	assessment, err := s.assessments.Load(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, fmt.Errorf("assessment %s: %w", assessmentID, dao.ErrNotFound)
	}

	recorded := *outcome
	if recorded.ID == "" {
		recorded.ID = idgen.New()
	}
	recorded.AssessmentID = assessmentID
	recorded.RecordedAt = clock.Now()
	if err = s.outcomes.Save(ctx, &recorded); err != nil {
		return nil, fmt.Errorf("failed to save outcome for %v: %w", assessmentID, err)
	}

	kind, diverged := classify(recorded.UserFeedback, assessment.Score)
	if !diverged {
		return nil, nil
	}
	event := &risk.LearningEvent{
		ID:             idgen.New(),
		AssessmentID:   assessmentID,
		Kind:           kind,
		PredictedScore: assessment.Score,
		Feedback:       recorded.UserFeedback,
		CreatedAt:      recorded.RecordedAt,
	}
	if err = s.events.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save learning event for %v: %w", assessmentID, err)
	}
	return event, nil
}

func classify(feedback risk.Feedback, score float64) (risk.LearningKind, bool) {
	switch {
	case feedback == risk.FeedbackNegative && score < underestimateBelow:
		return risk.LearningUnderestimate, true
	case feedback == risk.FeedbackPositive && score > overestimateAbove:
		return risk.LearningOverestimate, true
	}
	return "", false
}

// Report summarises recorded outcomes and divergences for offline
// recalibration.
type Report struct {
	Outcomes       int `json:"outcomes"`
	Failures       int `json:"failures"`
	Underestimates int `json:"underestimates"`
	Overestimates  int `json:"overestimates"`
}

// CalibrationReport aggregates everything recorded so far. Read-only.
func (s *Service) CalibrationReport(ctx context.Context) (*Report, error) {
	outcomes, err := s.outcomes.List(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	ret := &Report{Outcomes: len(outcomes)}
	for _, outcome := range outcomes {
		if !outcome.Success {
			ret.Failures++
		}
	}
	for _, event := range events {
		switch event.Kind {
		case risk.LearningUnderestimate:
			ret.Underestimates++
		case risk.LearningOverestimate:
			ret.Overestimates++
		}
	}
	return ret, nil
}

// Events lists the recorded learning events for external recalibration.
func (s *Service) Events(ctx context.Context) ([]*risk.LearningEvent, error) {
	return s.events.List(ctx)
}
