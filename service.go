package riskgate

import (
	"context"
	"fmt"

	"github.com/agentry/riskgate/model/risk"
	"github.com/agentry/riskgate/service/approval"
	memapproval "github.com/agentry/riskgate/service/approval/memory"
	"github.com/agentry/riskgate/service/autoapprove"
	"github.com/agentry/riskgate/service/event"
	"github.com/agentry/riskgate/service/learning"
	"github.com/agentry/riskgate/service/profile"
	"github.com/agentry/riskgate/service/scorer"
)

// Service is the high-level façade wiring the policy-enforcement gateway
// together: profile store, risk scorer, approval manager, auto-approval
// rules and outcome learning. Construct with New, then Start to launch the
// background expiry sweep.
type Service struct {
	config     *Config
	profiles   profile.Service
	riskScorer *scorer.Service
	approvals  approval.Service
	outcomes   *learning.Service
	rules      []autoapprove.Rule
	factors    []scorer.Factor
	journal    *event.Journal

	stopSweep func()
	cancelRun context.CancelFunc
}

// New assembles a gate service. Without options everything runs on
// in-memory stores - suitable for tests and embedding; production setups
// inject their own stores and queues via options.
func New(options ...Option) *Service {
	ret := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(ret)
	}
	ret.ensureBaseSetup()
	return ret
}

func (s *Service) ensureBaseSetup() {
	if s.profiles == nil {
		s.profiles = profile.New()
	}
	if s.riskScorer == nil {
		var scorerOptions []scorer.Option
		if len(s.factors) > 0 {
			scorerOptions = append(scorerOptions, scorer.WithFactors(s.factors...))
		}
		s.riskScorer = scorer.New(s.profiles, scorerOptions...)
	}
	if s.approvals == nil {
		s.approvals = memapproval.New(
			memapproval.WithTTL(s.config.ApprovalTTL),
			memapproval.WithPollInterval(s.config.WaitPollInterval))
	}
	if s.outcomes == nil {
		s.outcomes = learning.New(s.riskScorer.AssessmentDAO())
	}
}

// Start launches the background expiry sweep and, when a journal is
// configured, the event journaling loop. Call Shutdown to stop both.
func (s *Service) Start(ctx context.Context) {
	ctx, s.cancelRun = context.WithCancel(ctx)
	s.stopSweep = approval.RunSweeper(ctx, s.approvals, s.config.SweepInterval)
	if s.journal != nil {
		go s.journal.Run(ctx, s.approvals.Queue())
	}
}

// Shutdown stops the background activity started by Start.
func (s *Service) Shutdown() {
	if s.stopSweep != nil {
		s.stopSweep()
		s.stopSweep = nil
	}
	if s.cancelRun != nil {
		s.cancelRun()
		s.cancelRun = nil
	}
}

// Profiles exposes the policy profile store.
func (s *Service) Profiles() profile.Service { return s.profiles }

// Scorer exposes the risk scorer.
func (s *Service) Scorer() *scorer.Service { return s.riskScorer }

// Approvals exposes the approval manager.
func (s *Service) Approvals() approval.Service { return s.approvals }

// Learning exposes the outcome learning service.
func (s *Service) Learning() *learning.Service { return s.outcomes }

// Decision is the outcome of gating one proposed action.
type Decision struct {
	Assessment   *risk.Assessment  `json:"assessment"`
	AutoApproved bool              `json:"autoApproved,omitempty"`
	Approval     *approval.Request `json:"approval,omitempty"`
	Allowed      bool              `json:"allowed"`
}

// Gate runs the full control flow for one proposed action: score it, let
// auto-approval rules short-circuit, otherwise open an approval request and
// block until it resolves or the configured wait budget runs out. The
// returned decision says whether the caller may proceed.
func (s *Service) Gate(ctx context.Context, input *risk.Input) (*Decision, error) {
	assessment, err := s.riskScorer.AssessRisk(ctx, input)
	if err != nil {
		return nil, err
	}
	if !assessment.RequiresApproval {
		return &Decision{Assessment: assessment, Allowed: true}, nil
	}
	if autoapprove.ShouldAutoApprove(assessment, input.ActionType, s.rules) {
		return &Decision{Assessment: assessment, AutoApproved: true, Allowed: true}, nil
	}

	request, err := s.approvals.RequestApproval(ctx, &approval.Request{
		IdentityID:    input.IdentityID,
		ActionType:    input.ActionType,
		ActionDetails: input.ActionDetails,
		AssessmentID:  assessment.ID,
		RiskLevel:     assessment.Level,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request approval for assessment %v: %w", assessment.ID, err)
	}
	resolved, err := s.approvals.WaitForResolution(ctx, request.ID, s.config.WaitTimeout)
	if err != nil {
		return nil, err
	}
	return &Decision{
		Assessment: assessment,
		Approval:   resolved,
		Allowed:    resolved.Status == approval.StatusApproved,
	}, nil
}

// LearnFromOutcome records the realized outcome of a previously assessed
// action.
func (s *Service) LearnFromOutcome(ctx context.Context, assessmentID string, outcome *risk.Outcome) (*risk.LearningEvent, error) {
	return s.outcomes.LearnFromOutcome(ctx, assessmentID, outcome)
}
