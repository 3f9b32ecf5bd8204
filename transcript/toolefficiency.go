// Package transcript provides scorers that read the execution event log
// alongside the final output.
package transcript

import (
	"context"
	"fmt"
	"strings"

	"github.com/procyon-ai/agenteval/api"
	"github.com/procyon-ai/agenteval/events"
)

// ToolEfficiency returns a scorer that rewards correct answers reached with
// efficient tool usage. The answer is correct when Expected occurs as a
// substring of Output. Using at least one tool adds 0.1 to the base score;
// using more than three tools subtracts 0.2. Both adjustments stack and the
// final score is clamped to [0, 1].
func ToolEfficiency() api.Scorer {
	return &toolEfficiencyScorer{}
}

type toolEfficiencyScorer struct{}

func (s *toolEfficiencyScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "ToolEfficiency",
		Metadata: make(map[string]any),
	}

	// Partition events by kind; unrecognized kinds count only toward the total
	toolCalls := []string{}
	modelEvents := 0
	for _, e := range in.Events {
		switch e.Kind {
		case events.KindTool:
			if e.Tool == nil {
				// a tool event without its payload is malformed and stays unclassified
				continue
			}
			toolCalls = append(toolCalls, e.Tool.Function)
		case events.KindModel:
			modelEvents++
		}
	}

	// Base score from substring containment
	score := 0.0
	if strings.Contains(in.Output, in.Expected) {
		score = 1.0
	}

	// Adjustments stack: both can fire on the same log
	if len(toolCalls) > 0 {
		score += 0.1
	}
	if len(toolCalls) > 3 {
		score -= 0.2
	}

	toolsUsed := "none"
	if len(toolCalls) > 0 {
		toolsUsed = strings.Join(toolCalls, ", ")
	}

	result.Score = clamp01(score)
	result.Answer = in.Output
	result.Explanation = fmt.Sprintf("Found %d total events: %d model calls, %d tool calls. Tools used: %s.",
		len(in.Events), modelEvents, len(toolCalls), toolsUsed)
	result.Metadata["total_events"] = len(in.Events)
	result.Metadata["model_events"] = modelEvents
	result.Metadata["tool_events"] = len(toolCalls)
	result.Metadata["tools_used"] = toolCalls

	return result
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
