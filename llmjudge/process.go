package llmjudge

import (
	"context"
	"fmt"

	"github.com/procyon-ai/agenteval/api"
	"github.com/procyon-ai/agenteval/events"
)

// ProcessQualityOptions configures the ProcessQuality scorer
type ProcessQualityOptions struct {
	// Individual weights; if all are 0, defaults to equal weights
	ToolUseWeight    float64
	EfficiencyWeight float64
	ProgressWeight   float64

	// Threshold: if any used dimension (non-zero weight) is below this threshold, score becomes 0
	// Range: 0.0-1.0, where 0.0 means no threshold (default)
	Threshold float64
}

// ProcessQuality returns a scorer that judges how the model worked, not just
// what it answered. The execution transcript is rendered into the prompt and
// the judge rates tool use, efficiency, and progress with anchored A-E
// categories. The final score is a weighted blend of the dimensions,
// normalized to [0,1].
func ProcessQuality(llm api.LLMGenerator, opts ProcessQualityOptions) api.Scorer {
	return &processQualityScorer{
		opts: opts,
		llm:  llm,
	}
}

type processQualityScorer struct {
	opts ProcessQualityOptions
	llm  api.LLMGenerator
}

const processQualityPromptTemplate = `You are evaluating how an AI agent solved a task, based on its execution transcript. Be deterministic and concise.

[BEGIN DATA]
[Task]: %s
[Transcript]:
%s
[Final Answer]: %s
[END DATA]

Dimension anchors (use these precise anchors, not your own):
- Tool use:
  A: ideal tool selection; every call clearly justified by the task
  B: appropriate tools with correct arguments throughout
  C: mostly sensible tool choices; some unnecessary or misdirected calls
  D: frequent wrong tool choices or malformed arguments
  E: tools misused or ignored where clearly needed; arguments nonsensical
- Efficiency:
  A: minimal possible steps for this task
  B: direct path with at most one superfluous step
  C: minor detours; acceptable step count
  D: noticeably more steps than needed
  E: heavily redundant; loops or repeated identical calls
- Progress:
  A: textbook progression from task to answer
  B: clear forward progress at every step
  C: steady but unfocused progress
  D: progress stalls or regresses repeatedly
  E: no visible progress toward the answer

Instructions:
- Rate each dimension independently with one of A, B, C, D, E.
- Provide a short overall assessment (<=40 words).`

func (s *processQualityScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "ProcessQuality",
		Answer:   in.Output,
		Metadata: make(map[string]any),
	}

	if s.llm == nil {
		result.Error = fmt.Errorf("LLM generator is required")
		result.Score = 0
		return result
	}

	transcript := events.Render(in.Events)
	prompt := fmt.Sprintf(processQualityPromptTemplate, in.Input, transcript, in.Output)

	// Define schema for structured response
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"tool_use": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"A", "B", "C", "D", "E"},
				"description": "Tool use rating (A-E) with anchored definitions",
			},
			"efficiency": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"A", "B", "C", "D", "E"},
				"description": "Efficiency rating (A-E) with anchored definitions",
			},
			"progress": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"A", "B", "C", "D", "E"},
				"description": "Progress rating (A-E) with anchored definitions",
			},
			"assessment": map[string]interface{}{
				"type":        "string",
				"description": "Short overall assessment",
			},
		},
		"required": []string{"tool_use", "efficiency", "progress"},
	}

	structuredResponse, err := s.llm.StructuredGenerate(ctx, prompt, schema)
	if err != nil {
		return s.returnError(&result, fmt.Errorf("%w: %v", api.ErrLLMGenerationFailed, err), nil)
	}

	// Extract choices from structured response
	choices := [3]string{}

	toolUseChoice, ok := structuredResponse["tool_use"].(string)
	if !ok {
		return s.returnError(&result, fmt.Errorf("failed to extract tool_use choice from structured response"), structuredResponse)
	}
	choices[0] = toolUseChoice

	efficiencyChoice, ok := structuredResponse["efficiency"].(string)
	if !ok {
		return s.returnError(&result, fmt.Errorf("failed to extract efficiency choice from structured response"), structuredResponse)
	}
	choices[1] = efficiencyChoice

	progressChoice, ok := structuredResponse["progress"].(string)
	if !ok {
		return s.returnError(&result, fmt.Errorf("failed to extract progress choice from structured response"), structuredResponse)
	}
	choices[2] = progressChoice

	// Map A-E to [0,1], best to worst
	choiceToScore := map[string]float64{
		"A": 1.0,
		"B": 0.75,
		"C": 0.5,
		"D": 0.25,
		"E": 0.0,
	}

	baseScores := [3]float64{
		choiceToScore[choices[0]], // tool use
		choiceToScore[choices[1]], // efficiency
		choiceToScore[choices[2]], // progress
	}

	// Build weights array from individual fields; if weight is 0, that dimension is not relevant
	weights := [3]float64{
		s.opts.ToolUseWeight,
		s.opts.EfficiencyWeight,
		s.opts.ProgressWeight,
	}

	// Count non-zero weights
	nonZeroCount := 0
	for _, w := range weights {
		if w > 0 {
			nonZeroCount++
		}
	}

	// If all weights are 0 or negative, default to equal weights
	if nonZeroCount == 0 {
		for i := range weights {
			weights[i] = 1.0 / 3.0
		}
	} else {
		// Normalize weights to sum to 1
		sum := 0.0
		for _, w := range weights {
			if w > 0 {
				sum += w
			}
		}
		if sum > 0 {
			for i := range weights {
				if weights[i] > 0 {
					weights[i] /= sum
				}
			}
		}
	}

	// Calculate weighted score
	finalScore := 0.0
	for i := 0; i < 3; i++ {
		finalScore += weights[i] * baseScores[i]
	}

	// Apply threshold: if any used dimension (non-zero weight) is below threshold, score becomes 0
	if s.opts.Threshold > 0 {
		for i := 0; i < 3; i++ {
			if weights[i] > 0 && baseScores[i] < s.opts.Threshold {
				finalScore = 0.0
				break
			}
		}
	}

	if assessment, ok := structuredResponse["assessment"].(string); ok {
		result.Explanation = assessment
	} else {
		result.Explanation = fmt.Sprintf("tool use %s, efficiency %s, progress %s", choices[0], choices[1], choices[2])
	}

	result.Score = clamp01(finalScore)
	result.Metadata["tool_use.choice"] = choices[0]
	result.Metadata["tool_use.score"] = baseScores[0]
	result.Metadata["efficiency.choice"] = choices[1]
	result.Metadata["efficiency.score"] = baseScores[1]
	result.Metadata["progress.choice"] = choices[2]
	result.Metadata["progress.score"] = baseScores[2]
	result.Metadata["weights.tool_use"] = weights[0]
	result.Metadata["weights.efficiency"] = weights[1]
	result.Metadata["weights.progress"] = weights[2]
	result.Metadata["threshold"] = s.opts.Threshold
	result.Metadata["transcript_events"] = len(in.Events)
	result.Metadata["raw_response"] = structuredResponse

	return result
}

// returnError is a helper function to set error metadata consistently
func (s *processQualityScorer) returnError(result *api.Score, err error, rawResponse interface{}) api.Score {
	result.Error = err
	result.Score = 0
	result.Metadata["raw_response"] = rawResponse
	result.Metadata["tool_use.choice"] = ""
	result.Metadata["tool_use.score"] = 0.0
	result.Metadata["efficiency.choice"] = ""
	result.Metadata["efficiency.score"] = 0.0
	result.Metadata["progress.choice"] = ""
	result.Metadata["progress.score"] = 0.0
	result.Metadata["weights.tool_use"] = 0.0
	result.Metadata["weights.efficiency"] = 0.0
	result.Metadata["weights.progress"] = 0.0
	return *result
}

// --- Helpers ---

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
