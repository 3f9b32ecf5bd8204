package heuristic

import (
	"context"
	"strings"

	"github.com/procyon-ai/agenteval/api"
)

// IncludesOptions configures the Includes scorer
type IncludesOptions struct {
	// CaseInsensitive determines if the containment check should ignore case
	CaseInsensitive bool
}

// Includes returns a scorer that checks if the expected value occurs anywhere
// in the output. This is the usual grading rule for free-form answers where
// the model is allowed to explain itself around the answer.
func Includes(opts IncludesOptions) api.Scorer {
	return &includesScorer{opts: opts}
}

type includesScorer struct {
	opts IncludesOptions
}

func (s *includesScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "Includes",
		Answer:   in.Output,
		Metadata: make(map[string]any),
	}

	if in.Expected == "" {
		result.Error = api.ErrNoExpectedValue
		result.Score = 0
		return result
	}

	output := in.Output
	expected := in.Expected
	if s.opts.CaseInsensitive {
		output = strings.ToLower(output)
		expected = strings.ToLower(expected)
	}

	if strings.Contains(output, expected) {
		result.Score = 1.0
		result.Explanation = "Expected value found in output"
	} else {
		result.Score = 0.0
		result.Explanation = "Expected value not found in output"
	}

	result.Metadata["case_insensitive"] = s.opts.CaseInsensitive
	result.Metadata["output_length"] = len(in.Output)
	result.Metadata["expected_length"] = len(in.Expected)

	return result
}
