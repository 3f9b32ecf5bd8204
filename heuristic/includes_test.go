package heuristic

import (
	"context"
	"testing"

	"github.com/procyon-ai/agenteval/api"
)

func TestIncludes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		opts      IncludesOptions
		output    string
		expected  string
		wantErr   error
		wantScore float64
	}{
		{
			name:      "expected contained in output",
			opts:      IncludesOptions{},
			output:    "the answer is 42",
			expected:  "42",
			wantScore: 1.0,
		},
		{
			name:      "expected equals output",
			opts:      IncludesOptions{},
			output:    "42",
			expected:  "42",
			wantScore: 1.0,
		},
		{
			name:      "expected missing from output",
			opts:      IncludesOptions{},
			output:    "I am not sure",
			expected:  "42",
			wantScore: 0.0,
		},
		{
			name:      "case sensitive by default",
			opts:      IncludesOptions{},
			output:    "The capital is PARIS",
			expected:  "Paris",
			wantScore: 0.0,
		},
		{
			name:      "case insensitive match",
			opts:      IncludesOptions{CaseInsensitive: true},
			output:    "The capital is PARIS",
			expected:  "Paris",
			wantScore: 1.0,
		},
		{
			name:      "no expected value",
			opts:      IncludesOptions{},
			output:    "anything",
			expected:  "",
			wantErr:   api.ErrNoExpectedValue,
			wantScore: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := Includes(tt.opts)
			result := scorer.Score(ctx, api.ScoreInputs{Output: tt.output, Expected: tt.expected})

			if result.Error != tt.wantErr {
				t.Errorf("Includes.Score() error = %v, wantErr %v", result.Error, tt.wantErr)
			}

			if result.Score != tt.wantScore {
				t.Errorf("Includes.Score() score = %v, wantScore %v", result.Score, tt.wantScore)
			}

			if result.Name != "Includes" {
				t.Errorf("Includes.Score() name = %v, want 'Includes'", result.Name)
			}
		})
	}
}
