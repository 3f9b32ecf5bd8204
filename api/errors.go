package api

import "errors"

var (
	// ErrNoExpectedValue is returned when an expected value is required but not provided
	ErrNoExpectedValue = errors.New("expected value is required for this scorer")
	// ErrNoRequiredTool is returned when a required-tool scorer is constructed without a tool name
	ErrNoRequiredTool = errors.New("required tool name must be configured for this scorer")
	// ErrLLMGenerationFailed is returned when LLM generation fails
	ErrLLMGenerationFailed = errors.New("LLM generation failed")
)
