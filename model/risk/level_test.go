package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOf(t *testing.T) {
	type testCase struct {
		name     string
		score    float64
		expected Level
	}

	tests := []testCase{
		{name: "zero is low", score: 0, expected: LevelLow},
		{name: "just below medium", score: 0.39, expected: LevelLow},
		{name: "medium boundary", score: 0.4, expected: LevelMedium},
		{name: "high boundary", score: 0.6, expected: LevelHigh},
		{name: "just below critical", score: 0.79, expected: LevelHigh},
		{name: "critical boundary", score: 0.8, expected: LevelCritical},
		{name: "max", score: 1.0, expected: LevelCritical},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, LevelOf(tc.score))
		})
	}
}
