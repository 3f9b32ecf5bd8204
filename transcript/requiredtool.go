package transcript

import (
	"context"
	"strings"

	"github.com/procyon-ai/agenteval/api"
	"github.com/procyon-ai/agenteval/events"
)

// RequiredToolOptions configures the RequiredTool scorer
type RequiredToolOptions struct {
	// Tool is the name of the tool the model must use during the run
	Tool string
}

// RequiredTool returns a scorer that verifies the model used a specific tool
// on its way to the answer. Correctness and required-tool usage combine into
// a fixed table: 1.0 when both hold, 0.5 for a correct answer without the
// tool, 0.3 for the tool without a correct answer, 0.0 when neither holds.
func RequiredTool(opts RequiredToolOptions) api.Scorer {
	return &requiredToolScorer{opts: opts}
}

type requiredToolScorer struct {
	opts RequiredToolOptions
}

func (s *requiredToolScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "RequiredTool",
		Metadata: make(map[string]any),
	}

	if s.opts.Tool == "" {
		result.Error = api.ErrNoRequiredTool
		result.Score = 0
		return result
	}

	correct := strings.Contains(in.Output, in.Expected)

	requiredUsed := false
	for _, e := range in.Events {
		if e.Kind == events.KindTool && e.Tool != nil && e.Tool.Function == s.opts.Tool {
			requiredUsed = true
			break
		}
	}

	switch {
	case correct && requiredUsed:
		result.Score = 1.0
		result.Explanation = "Correct answer and used required tool"
	case correct && !requiredUsed:
		result.Score = 0.5
		result.Explanation = "Correct answer but did not use required tool"
	case !correct && requiredUsed:
		result.Score = 0.3
		result.Explanation = "Used required tool but incorrect answer"
	default:
		result.Score = 0.0
		result.Explanation = "Incorrect answer and did not use required tool"
	}

	result.Answer = in.Output
	result.Metadata["required_tool"] = s.opts.Tool
	result.Metadata["required_tool_used"] = requiredUsed

	return result
}
