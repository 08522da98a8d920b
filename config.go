package riskgate

import (
	"fmt"
	"time"
)

// Config is a serialisable representation of the gate configuration. It can
// be populated from JSON, YAML, environment variables, etc. The zero-value
// is not useful on its own - start from DefaultConfig and adjust.
type Config struct {
	// ApprovalTTL bounds how long a request stays actionable when the
	// caller does not set an explicit deadline.
	ApprovalTTL time.Duration `json:"approvalTTL" yaml:"approvalTTL"`

	// SweepInterval is the cadence of the background expiry sweep.
	SweepInterval time.Duration `json:"sweepInterval" yaml:"sweepInterval"`

	// WaitTimeout is the default budget Gate spends blocking on a pending
	// approval before giving up with a timeout error.
	WaitTimeout time.Duration `json:"waitTimeout" yaml:"waitTimeout"`

	// WaitPollInterval tunes the wait primitive's safety-net poll.
	WaitPollInterval time.Duration `json:"waitPollInterval" yaml:"waitPollInterval"`
}

// DefaultConfig returns a Config populated with production defaults.
func DefaultConfig() *Config {
	return &Config{
		ApprovalTTL:      24 * time.Hour,
		SweepInterval:    30 * time.Second,
		WaitTimeout:      5 * time.Minute,
		WaitPollInterval: 250 * time.Millisecond,
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	for name, value := range map[string]time.Duration{
		"approvalTTL":      c.ApprovalTTL,
		"sweepInterval":    c.SweepInterval,
		"waitTimeout":      c.WaitTimeout,
		"waitPollInterval": c.WaitPollInterval,
	} {
		if value <= 0 {
			return fmt.Errorf("%s must be > 0, had %v", name, value)
		}
	}
	return nil
}
