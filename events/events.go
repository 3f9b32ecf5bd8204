// Package events defines the execution transcript model read by
// transcript-aware scorers. Events are produced externally by an evaluation
// engine while a model solves a task; this package only describes them.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates event variants in a transcript.
type Kind string

const (
	// KindModel marks a call to the model under evaluation.
	KindModel Kind = "model"
	// KindTool marks an invocation of a tool by the model.
	KindTool Kind = "tool"
	// KindSandbox marks a command executed in the evaluation sandbox.
	KindSandbox Kind = "sandbox"
	// KindLogger marks a diagnostic message recorded during the run.
	KindLogger Kind = "logger"
	// KindError marks a non-fatal error recorded during the run.
	KindError Kind = "error"
)

// String returns the string representation of the kind.
func (k Kind) String() string { return string(k) }

// Event is a single entry in an execution transcript. Events are immutable
// once produced: scorers read them and never modify them.
//
// The payload matching Kind is set; all others are nil. Events with a kind
// this package does not define carry their data in Attrs.
type Event struct {
	// ID uniquely identifies the event within a transcript
	ID string `json:"id,omitempty"`
	// Kind discriminates the event variant
	Kind Kind `json:"kind"`
	// Timestamp records when the event occurred
	Timestamp time.Time `json:"timestamp"`

	// Tool is set for KindTool events
	Tool *ToolCall `json:"tool,omitempty"`
	// Model is set for KindModel events
	Model *ModelCall `json:"model,omitempty"`
	// Sandbox is set for KindSandbox events
	Sandbox *SandboxExec `json:"sandbox,omitempty"`
	// Message carries the text of KindLogger and KindError events
	Message string `json:"message,omitempty"`

	// Attrs carries additional attributes for custom event kinds
	Attrs map[string]any `json:"attrs,omitempty"`
}

// ToolCall is the payload of a tool event.
type ToolCall struct {
	// Function is the name of the tool that was invoked
	Function string `json:"function"`
	// Arguments are the arguments the model supplied
	Arguments map[string]any `json:"arguments,omitempty"`
	// Result is the tool output returned to the model, rendered as text
	Result string `json:"result,omitempty"`
	// Error is set when the tool invocation failed
	Error string `json:"error,omitempty"`
	// Duration is how long the invocation took
	Duration time.Duration `json:"duration,omitempty"`
}

// ModelCall is the payload of a model event.
type ModelCall struct {
	// Model is the model identifier that served the call
	Model string `json:"model,omitempty"`
	// Provider is the API provider that served the call
	Provider string `json:"provider,omitempty"`
	// InputTokens is the prompt token count
	InputTokens int `json:"input_tokens,omitempty"`
	// OutputTokens is the completion token count
	OutputTokens int `json:"output_tokens,omitempty"`
	// StopReason reports why generation ended
	StopReason string `json:"stop_reason,omitempty"`
}

// SandboxExec is the payload of a sandbox event.
type SandboxExec struct {
	// Command is the executable that was run
	Command string `json:"command"`
	// Args are the command arguments
	Args []string `json:"args,omitempty"`
	// ExitCode is the command's exit status
	ExitCode int `json:"exit_code"`
	// Output is the combined command output, possibly truncated
	Output string `json:"output,omitempty"`
}

// New creates an event of the given kind with a fresh ID and UTC timestamp.
// Callers that already have identity and timing (for example when decoding
// an externally recorded transcript) construct Event values directly.
func New(kind Kind) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Timestamp: time.Now().UTC(),
	}
}

// NewToolEvent creates a tool event carrying the given call payload.
func NewToolEvent(call ToolCall) Event {
	e := New(KindTool)
	e.Tool = &call
	return e
}

// NewModelEvent creates a model event carrying the given call payload.
func NewModelEvent(call ModelCall) Event {
	e := New(KindModel)
	e.Model = &call
	return e
}

// NewSandboxEvent creates a sandbox event carrying the given exec payload.
func NewSandboxEvent(exec SandboxExec) Event {
	e := New(KindSandbox)
	e.Sandbox = &exec
	return e
}

// NewLoggerEvent creates a logger event with the given message.
func NewLoggerEvent(message string) Event {
	e := New(KindLogger)
	e.Message = message
	return e
}

// NewErrorEvent creates an error event with the given message.
func NewErrorEvent(message string) Event {
	e := New(KindError)
	e.Message = message
	return e
}
