package llmjudge

import (
	"context"
	"fmt"

	"github.com/procyon-ai/agenteval/api"
)

// FactualityOptions configures the Factuality scorer
type FactualityOptions struct{}

// Factuality returns a scorer that uses an LLM to evaluate if the output is
// factually consistent with the expected answer. The judge classifies the
// relationship between the two answers into one of five categories, each
// mapped to a fixed score.
func Factuality(llm api.LLMGenerator, opts FactualityOptions) api.Scorer {
	return &factualityScorer{
		opts: opts,
		llm:  llm,
	}
}

type factualityScorer struct {
	opts FactualityOptions
	llm  api.LLMGenerator
}

const factualityPromptTemplate = `You are comparing a submitted answer to an expert answer on a given question.

[BEGIN DATA]
[Question]: %s
[Expert]: %s
[Submission]: %s
[END DATA]

Compare the factual content of the submitted answer with the expert answer.
Ignore any differences in style, grammar, or punctuation.
Select the option that best describes the relationship:
(A) The submitted answer contains all the same details as the expert answer.
(B) The submitted answer is a superset of the expert answer and is fully consistent with it.
(C) The core facts of the submitted answer agree with the expert answer, with only trivial differences.
(D) The submitted answer is a subset of the expert answer and is fully consistent with it.
(E) There is a disagreement between the submitted answer and the expert answer.

Provide your choice and a short explanation of the comparison.`

// factualityChoiceScores maps the five relationship categories onto fixed scores
var factualityChoiceScores = map[string]float64{
	"A": 1.0,
	"B": 0.8,
	"C": 0.6,
	"D": 0.4,
	"E": 0.0,
}

func (s *factualityScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "Factuality",
		Answer:   in.Output,
		Metadata: make(map[string]any),
	}

	if in.Expected == "" {
		result.Error = api.ErrNoExpectedValue
		result.Score = 0
		return result
	}

	if s.llm == nil {
		result.Error = fmt.Errorf("LLM generator is required")
		result.Score = 0
		return result
	}

	prompt := fmt.Sprintf(factualityPromptTemplate, in.Input, in.Expected, in.Output)

	// Define schema for structured response
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"choice": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"A", "B", "C", "D", "E"},
				"description": "The option that best describes the relationship between the answers",
			},
			"explanation": map[string]interface{}{
				"type":        "string",
				"description": "Short explanation of the comparison",
			},
		},
		"required": []string{"choice", "explanation"},
	}

	structuredResponse, err := s.llm.StructuredGenerate(ctx, prompt, schema)
	if err != nil {
		result.Error = fmt.Errorf("%w: %v", api.ErrLLMGenerationFailed, err)
		result.Score = 0
		return result
	}

	choice, ok := structuredResponse["choice"].(string)
	if !ok {
		result.Error = fmt.Errorf("failed to extract choice from structured response")
		result.Score = 0
		result.Metadata["raw_response"] = structuredResponse
		return result
	}

	explanation, ok := structuredResponse["explanation"].(string)
	if !ok {
		result.Error = fmt.Errorf("failed to extract explanation from structured response")
		result.Score = 0
		result.Metadata["raw_response"] = structuredResponse
		return result
	}

	result.Score = factualityChoiceScores[choice]
	result.Explanation = explanation
	result.Metadata["choice"] = choice
	result.Metadata["explanation"] = explanation
	result.Metadata["raw_response"] = structuredResponse

	return result
}
