package events

import (
	"fmt"
	"sort"
	"strings"
)

// Render formats a transcript as numbered plain-text lines suitable for
// embedding in an LLM prompt. Tool arguments are rendered in sorted key
// order so the same transcript always renders to the same text.
func Render(log Log) string {
	if len(log) == 0 {
		return "(no events recorded)"
	}
	var b strings.Builder
	for i, e := range log {
		fmt.Fprintf(&b, "%d. %s", i+1, renderEvent(e))
		if i < len(log)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderEvent(e Event) string {
	switch e.Kind {
	case KindTool:
		if e.Tool == nil {
			return "[tool] (missing payload)"
		}
		s := fmt.Sprintf("[tool] %s(%s)", e.Tool.Function, renderArgs(e.Tool.Arguments))
		if e.Tool.Error != "" {
			return s + " -> error: " + e.Tool.Error
		}
		if e.Tool.Result != "" {
			return s + " -> " + e.Tool.Result
		}
		return s
	case KindModel:
		if e.Model == nil || e.Model.Model == "" {
			return "[model] call"
		}
		s := "[model] " + e.Model.Model
		if e.Model.InputTokens > 0 || e.Model.OutputTokens > 0 {
			s += fmt.Sprintf(" (%d in / %d out tokens)", e.Model.InputTokens, e.Model.OutputTokens)
		}
		return s
	case KindSandbox:
		if e.Sandbox == nil {
			return "[sandbox] (missing payload)"
		}
		cmd := e.Sandbox.Command
		if len(e.Sandbox.Args) > 0 {
			cmd += " " + strings.Join(e.Sandbox.Args, " ")
		}
		return fmt.Sprintf("[sandbox] %s (exit %d)", cmd, e.Sandbox.ExitCode)
	case KindLogger:
		return "[logger] " + e.Message
	case KindError:
		return "[error] " + e.Message
	default:
		return fmt.Sprintf("[%s] event", e.Kind)
	}
}

func renderArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, args[k]))
	}
	return strings.Join(parts, ", ")
}
