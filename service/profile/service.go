package profile

import (
	"context"
	"fmt"

	"github.com/agentry/riskgate/internal/clock"
	"github.com/agentry/riskgate/service/dao"
	"github.com/agentry/riskgate/service/dao/store"
)

// Service exposes CRUD over policy profiles with upsert-on-first-write
// semantics.
type Service interface {
	Upsert(ctx context.Context, p *Profile) (*Profile, error)

	// Get returns the identity's profile or (nil, nil) when none was ever
	// stored - the scorer then falls back to Default.
	Get(ctx context.Context, identityID string) (*Profile, error)

	Delete(ctx context.Context, identityID string) error

	List(ctx context.Context) ([]*Profile, error)
}

type service struct {
	profiles dao.Service[string, Profile]
}

// Option customises the profile service.
type Option func(*service)

// WithDAO swaps the backing store, e.g. for a relational implementation.
func WithDAO(profiles dao.Service[string, Profile]) Option {
	return func(s *service) { s.profiles = profiles }
}

func profileKey(p *Profile) string { return p.IdentityID }

// New creates a profile service backed by an in-memory store unless
// overridden with WithDAO.
func New(options ...Option) Service {
	ret := &service{}
	for _, option := range options {
		option(ret)
	}
	if ret.profiles == nil {
		ret.profiles = store.NewMemory[string, Profile](profileKey)
	}
	return ret
}

func (s *service) Upsert(ctx context.Context, p *Profile) (*Profile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	now := clock.Now()
	existing, err := s.profiles.Load(ctx, p.IdentityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %v: %w", p.IdentityID, err)
	}
	updated := *p
	if existing != nil {
		updated.CreatedAt = existing.CreatedAt
	} else {
		updated.CreatedAt = now
	}
	updated.UpdatedAt = now
	if err = s.profiles.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save profile %v: %w", p.IdentityID, err)
	}
	return &updated, nil
}

func (s *service) Get(ctx context.Context, identityID string) (*Profile, error) {
	if identityID == "" {
		return nil, dao.ErrInvalidID
	}
	return s.profiles.Load(ctx, identityID)
}

func (s *service) Delete(ctx context.Context, identityID string) error {
	if identityID == "" {
		return dao.ErrInvalidID
	}
	return s.profiles.Delete(ctx, identityID)
}

func (s *service) List(ctx context.Context) ([]*Profile, error) {
	return s.profiles.List(ctx)
}
