package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentry/riskgate/model/risk"
)

func TestUpsert(t *testing.T) {
	type testCase struct {
		name        string
		profile     *Profile
		expectError bool
	}

	tests := []testCase{
		{
			name:    "minimal valid profile",
			profile: &Profile{IdentityID: "agent-1", RiskTolerance: 0.5, AutoApproveThreshold: 0.2, RequireApprovalThreshold: 0.7},
		},
		{
			name:        "missing identity",
			profile:     &Profile{RiskTolerance: 0.5},
			expectError: true,
		},
		{
			name:        "tolerance above range",
			profile:     &Profile{IdentityID: "agent-1", RiskTolerance: 1.2},
			expectError: true,
		},
		{
			name:        "negative threshold",
			profile:     &Profile{IdentityID: "agent-1", AutoApproveThreshold: -0.1},
			expectError: true,
		},
		{
			name:        "auto above require",
			profile:     &Profile{IdentityID: "agent-1", AutoApproveThreshold: 0.8, RequireApprovalThreshold: 0.6},
			expectError: true,
		},
		{
			name: "override out of range",
			profile: &Profile{IdentityID: "agent-1", RequireApprovalThreshold: 0.7,
				CategoryOverrides: map[risk.Category]float64{risk.CategoryFinancial: 1.5}},
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := New()
			saved, err := svc.Upsert(context.Background(), tc.profile)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.False(t, saved.CreatedAt.IsZero())
			assert.False(t, saved.UpdatedAt.IsZero())
		})
	}
}

func TestUpsertPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	svc := New()

	first, err := svc.Upsert(ctx, &Profile{IdentityID: "agent-1", RequireApprovalThreshold: 0.7})
	assert.NoError(t, err)

	second, err := svc.Upsert(ctx, &Profile{IdentityID: "agent-1", RequireApprovalThreshold: 0.6})
	assert.NoError(t, err)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, 0.6, second.RequireApprovalThreshold)
}

func TestGetAbsentProfile(t *testing.T) {
	svc := New()
	got, err := svc.Get(context.Background(), "never-written")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestListMatching(t *testing.T) {
	p := &Profile{BlockedActions: []string{"Delete_Database"}, AllowedActions: []string{"read_profile"}}
	assert.True(t, p.IsBlocked("delete_database"))
	assert.False(t, p.IsBlocked("read_profile"))
	assert.True(t, p.IsAllowed("READ_PROFILE"))
}
