package riskgate

import (
	"github.com/agentry/riskgate/service/approval"
	"github.com/agentry/riskgate/service/autoapprove"
	"github.com/agentry/riskgate/service/event"
	"github.com/agentry/riskgate/service/learning"
	"github.com/agentry/riskgate/service/profile"
	"github.com/agentry/riskgate/service/scorer"
)

// Option customises the gate service.
type Option func(s *Service)

// WithConfig replaces the default configuration. Invalid configs are the
// caller's responsibility - run Config.Validate first.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithProfileService sets the policy profile store.
func WithProfileService(svc profile.Service) Option {
	return func(s *Service) { s.profiles = svc }
}

// WithApprovalService sets the approval manager.
func WithApprovalService(svc approval.Service) Option {
	return func(s *Service) { s.approvals = svc }
}

// WithScorer sets a fully constructed risk scorer.
func WithScorer(svc *scorer.Service) Option {
	return func(s *Service) { s.riskScorer = svc }
}

// WithFactors replaces the built-in heuristic factor set of the default
// scorer. Ignored when WithScorer is also supplied.
func WithFactors(factors ...scorer.Factor) Option {
	return func(s *Service) { s.factors = factors }
}

// WithAutoApprovalRules installs the declarative rules Gate consults before
// opening an approval request.
func WithAutoApprovalRules(rules ...autoapprove.Rule) Option {
	return func(s *Service) { s.rules = rules }
}

// WithLearningService sets the outcome learning service.
func WithLearningService(svc *learning.Service) Option {
	return func(s *Service) { s.outcomes = svc }
}

// WithJournal attaches an event journal; Start then consumes the approval
// queue and persists every lifecycle event.
func WithJournal(journal *event.Journal) Option {
	return func(s *Service) { s.journal = journal }
}
