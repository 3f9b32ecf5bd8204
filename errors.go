package agenteval

import "github.com/procyon-ai/agenteval/api"

var (
	// ErrNoExpectedValue is returned when an expected value is required but not provided
	ErrNoExpectedValue = api.ErrNoExpectedValue
	// ErrNoRequiredTool is returned when a required tool name is not configured
	ErrNoRequiredTool = api.ErrNoRequiredTool
	// ErrLLMGenerationFailed is returned when LLM generation fails
	ErrLLMGenerationFailed = api.ErrLLMGenerationFailed
)
