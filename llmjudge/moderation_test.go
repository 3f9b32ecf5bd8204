package llmjudge

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/procyon-ai/agenteval/api"
	"github.com/procyon-ai/agenteval/events"
)

// mockModerationProvider is a simple mock for unit tests. It records every
// moderated content in call order and can answer per content.
type mockModerationProvider struct {
	result   *api.ModerationResult
	results  map[string]*api.ModerationResult
	err      error
	contents []string
}

func (m *mockModerationProvider) Moderate(ctx context.Context, content string) (*api.ModerationResult, error) {
	m.contents = append(m.contents, content)
	if m.err != nil {
		return nil, m.err
	}
	if result, ok := m.results[content]; ok {
		return result, nil
	}
	return m.result, nil
}

func TestModeration_Unit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name             string
		mockResult       *api.ModerationResult
		mockErr          error
		output           string
		threshold        float64
		categories       []string
		wantErr          bool
		wantScore        float64
		wantUnsafe       bool
		wantProviderSafe bool
		wantFlagged      map[string]float64
	}{
		{
			name: "safe content",
			mockResult: &api.ModerationResult{
				Categories: []api.ModerationCategory{
					{Name: "Toxic", Confidence: 0.1},
					{Name: "Violent", Confidence: 0.05},
					{Name: "Sexual", Confidence: 0.0},
				},
				IsSafe:        true,
				MaxConfidence: 0.1,
			},
			output:           "This is a helpful response",
			threshold:        0.5,
			wantScore:        1.0,
			wantUnsafe:       false,
			wantProviderSafe: true,
			wantFlagged:      map[string]float64{},
		},
		{
			name: "unsafe content",
			mockResult: &api.ModerationResult{
				Categories: []api.ModerationCategory{
					{Name: "Toxic", Confidence: 0.8},
					{Name: "Violent", Confidence: 0.3},
					{Name: "Sexual", Confidence: 0.0},
				},
				IsSafe:        false,
				MaxConfidence: 0.8,
			},
			output:           "This is toxic content",
			threshold:        0.5,
			wantScore:        0.0,
			wantUnsafe:       true,
			wantProviderSafe: false,
			wantFlagged:      map[string]float64{"Toxic": 0.8},
		},
		{
			name: "multiple flagged categories",
			mockResult: &api.ModerationResult{
				Categories: []api.ModerationCategory{
					{Name: "Toxic", Confidence: 0.7},
					{Name: "Violent", Confidence: 0.6},
					{Name: "Sexual", Confidence: 0.0},
				},
				IsSafe:        false,
				MaxConfidence: 0.7,
			},
			output:           "This is toxic and violent content",
			threshold:        0.5,
			wantScore:        0.0,
			wantUnsafe:       true,
			wantProviderSafe: false,
			wantFlagged:      map[string]float64{"Toxic": 0.7, "Violent": 0.6},
		},
		{
			// Scorer flags at its own threshold even when the provider
			// considered the content safe at its default
			name: "custom threshold",
			mockResult: &api.ModerationResult{
				Categories: []api.ModerationCategory{
					{Name: "Toxic", Confidence: 0.3},
					{Name: "Violent", Confidence: 0.2},
				},
				IsSafe:        true,
				MaxConfidence: 0.3,
			},
			output:           "Somewhat concerning content",
			threshold:        0.25,
			wantScore:        0.0,
			wantUnsafe:       true,
			wantProviderSafe: true,
			wantFlagged:      map[string]float64{"Toxic": 0.3},
		},
		{
			name: "specific categories only",
			mockResult: &api.ModerationResult{
				Categories: []api.ModerationCategory{
					{Name: "Toxic", Confidence: 0.8},
					{Name: "Violent", Confidence: 0.6},
					{Name: "Sexual", Confidence: 0.0},
				},
				IsSafe:        false,
				MaxConfidence: 0.8,
			},
			output:           "Content with various issues",
			threshold:        0.5,
			categories:       []string{"Toxic"}, // Only check Toxic
			wantScore:        0.0,
			wantUnsafe:       true,
			wantProviderSafe: false,
			wantFlagged:      map[string]float64{"Toxic": 0.8},
		},
		{
			// The provider verdict survives in metadata even when the
			// category filter keeps the scorer from flagging
			name: "ignored category not flagged",
			mockResult: &api.ModerationResult{
				Categories: []api.ModerationCategory{
					{Name: "Toxic", Confidence: 0.1},
					{Name: "Violent", Confidence: 0.9},
				},
				IsSafe:        false,
				MaxConfidence: 0.9,
			},
			output:           "Content discussed in a history lesson",
			threshold:        0.5,
			categories:       []string{"Toxic"}, // Violent is not checked
			wantScore:        1.0,
			wantUnsafe:       false,
			wantProviderSafe: false,
			wantFlagged:      map[string]float64{},
		},
		{
			name:      "provider error",
			mockErr:   fmt.Errorf("API error"),
			output:    "content",
			wantErr:   true,
			wantScore: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProvider := &mockModerationProvider{
				result: tt.mockResult,
				err:    tt.mockErr,
			}

			scorer := Moderation(mockProvider, ModerationOptions{
				Threshold:  tt.threshold,
				Categories: tt.categories,
			})

			result := scorer.Score(ctx, api.ScoreInputs{Output: tt.output})

			if tt.wantErr {
				if result.Error == nil {
					t.Error("Moderation.Score() expected error but got none")
				}
			} else {
				if result.Error != nil {
					t.Errorf("Moderation.Score() unexpected error = %v", result.Error)
				}
			}

			if result.Score != tt.wantScore {
				t.Errorf("Moderation.Score() score = %v, wantScore %v", result.Score, tt.wantScore)
			}

			if !tt.wantErr {
				if isSafe, ok := result.Metadata["is_safe"].(bool); !ok || isSafe != !tt.wantUnsafe {
					t.Errorf("Moderation.Score() is_safe = %v, want %v", isSafe, !tt.wantUnsafe)
				}

				if providerSafe, ok := result.Metadata["provider_is_safe"].(bool); !ok || providerSafe != tt.wantProviderSafe {
					t.Errorf("Moderation.Score() provider_is_safe = %v, want %v", result.Metadata["provider_is_safe"], tt.wantProviderSafe)
				}

				if tt.wantFlagged != nil {
					if flagged, ok := result.Metadata["flagged_categories"].(map[string]float64); !ok {
						t.Error("Moderation.Score() missing flagged_categories in metadata")
					} else {
						if len(flagged) != len(tt.wantFlagged) {
							t.Errorf("Moderation.Score() flagged categories count = %v, want %v", len(flagged), len(tt.wantFlagged))
						}
						for category, confidence := range tt.wantFlagged {
							if flaggedConfidence, exists := flagged[category]; !exists || flaggedConfidence != confidence {
								t.Errorf("Moderation.Score() flagged[%s] = %v, want %v", category, flaggedConfidence, confidence)
							}
						}
					}
				}
			}

			if result.Name != "Moderation" {
				t.Errorf("Moderation.Score() name = %v, want 'Moderation'", result.Name)
			}
		})
	}
}

func TestModeration_IncludeToolOutput(t *testing.T) {
	ctx := context.Background()

	safeResult := &api.ModerationResult{
		Categories:    []api.ModerationCategory{{Name: "Toxic", Confidence: 0.1}},
		IsSafe:        true,
		MaxConfidence: 0.1,
	}
	toxicResult := &api.ModerationResult{
		Categories:    []api.ModerationCategory{{Name: "Toxic", Confidence: 0.9}},
		IsSafe:        false,
		MaxConfidence: 0.9,
	}

	log := []events.Event{
		{Kind: events.KindTool, Tool: &events.ToolCall{Function: "search", Result: "first result"}},
		{Kind: events.KindTool, Tool: &events.ToolCall{Function: "fetch"}}, // no result
		{Kind: events.KindModel, Model: &events.ModelCall{Model: "gemini-2.5-flash"}},
		{Kind: events.KindTool, Tool: &events.ToolCall{Function: "summarize", Result: "second result"}},
	}

	t.Run("each segment moderated separately", func(t *testing.T) {
		provider := &mockModerationProvider{result: safeResult}
		scorer := Moderation(provider, ModerationOptions{IncludeToolOutput: true})

		result := scorer.Score(ctx, api.ScoreInputs{Output: "final answer", Events: log})

		if result.Error != nil {
			t.Fatalf("Moderation.Score() unexpected error = %v", result.Error)
		}
		wantContents := []string{"final answer", "first result", "second result"}
		if !reflect.DeepEqual(provider.contents, wantContents) {
			t.Errorf("Moderation.Score() moderated contents = %q, want %q", provider.contents, wantContents)
		}
		if result.Score != 1.0 {
			t.Errorf("Moderation.Score() score = %v, want 1.0", result.Score)
		}

		segments, ok := result.Metadata["segments"].([]ModeratedSegment)
		if !ok {
			t.Fatalf("Moderation.Score() segments metadata = %T, want []ModeratedSegment", result.Metadata["segments"])
		}
		wantSources := []string{"output", "search", "summarize"}
		if len(segments) != len(wantSources) {
			t.Fatalf("Moderation.Score() segment count = %d, want %d", len(segments), len(wantSources))
		}
		for i, source := range wantSources {
			if segments[i].Source != source {
				t.Errorf("Moderation.Score() segment %d source = %q, want %q", i, segments[i].Source, source)
			}
			if len(segments[i].FlaggedCategories) != 0 {
				t.Errorf("Moderation.Score() segment %d flagged = %v, want none", i, segments[i].FlaggedCategories)
			}
		}
		if count, ok := result.Metadata["moderated_tool_outputs"].(int); !ok || count != 2 {
			t.Errorf("Moderation.Score() moderated_tool_outputs = %v, want 2", result.Metadata["moderated_tool_outputs"])
		}
	})

	t.Run("toxic tool result flags the run", func(t *testing.T) {
		provider := &mockModerationProvider{
			result:  safeResult,
			results: map[string]*api.ModerationResult{"second result": toxicResult},
		}
		scorer := Moderation(provider, ModerationOptions{IncludeToolOutput: true})

		result := scorer.Score(ctx, api.ScoreInputs{Output: "final answer", Events: log})

		if result.Error != nil {
			t.Fatalf("Moderation.Score() unexpected error = %v", result.Error)
		}
		if result.Score != 0.0 {
			t.Errorf("Moderation.Score() score = %v, want 0.0", result.Score)
		}
		if result.Explanation != "Tool result from summarize flagged: Toxic" {
			t.Errorf("Moderation.Score() explanation = %q", result.Explanation)
		}
		if isSafe, ok := result.Metadata["is_safe"].(bool); !ok || isSafe {
			t.Errorf("Moderation.Score() is_safe = %v, want false", result.Metadata["is_safe"])
		}
		if flagged, ok := result.Metadata["flagged_categories"].(map[string]float64); !ok || flagged["Toxic"] != 0.9 {
			t.Errorf("Moderation.Score() flagged_categories = %v, want Toxic=0.9", result.Metadata["flagged_categories"])
		}

		segments, ok := result.Metadata["segments"].([]ModeratedSegment)
		if !ok || len(segments) != 3 {
			t.Fatalf("Moderation.Score() segments = %v, want 3 entries", result.Metadata["segments"])
		}
		if len(segments[0].FlaggedCategories) != 0 {
			t.Errorf("Moderation.Score() output segment flagged = %v, want none", segments[0].FlaggedCategories)
		}
		if segments[2].FlaggedCategories["Toxic"] != 0.9 {
			t.Errorf("Moderation.Score() summarize segment flagged = %v, want Toxic=0.9", segments[2].FlaggedCategories)
		}
	})

	t.Run("worst segment carries the verdict", func(t *testing.T) {
		mildResult := &api.ModerationResult{
			Categories:    []api.ModerationCategory{{Name: "Toxic", Confidence: 0.6}},
			IsSafe:        false,
			MaxConfidence: 0.6,
		}
		provider := &mockModerationProvider{
			result: safeResult,
			results: map[string]*api.ModerationResult{
				"final answer":  mildResult,
				"second result": toxicResult,
			},
		}
		scorer := Moderation(provider, ModerationOptions{IncludeToolOutput: true})

		result := scorer.Score(ctx, api.ScoreInputs{Output: "final answer", Events: log})

		if result.Explanation != "Tool result from summarize flagged: Toxic" {
			t.Errorf("Moderation.Score() explanation = %q, want the worst segment named", result.Explanation)
		}
		if flagged, ok := result.Metadata["flagged_categories"].(map[string]float64); !ok || flagged["Toxic"] != 0.9 {
			t.Errorf("Moderation.Score() flagged_categories = %v, want Toxic=0.9", result.Metadata["flagged_categories"])
		}
		if maxConfidence, ok := result.Metadata["max_confidence"].(float64); !ok || maxConfidence != 0.9 {
			t.Errorf("Moderation.Score() max_confidence = %v, want 0.9", result.Metadata["max_confidence"])
		}
	})

	t.Run("tool results ignored by default", func(t *testing.T) {
		provider := &mockModerationProvider{result: safeResult}
		scorer := Moderation(provider, ModerationOptions{})

		result := scorer.Score(ctx, api.ScoreInputs{Output: "final answer", Events: log})

		if !reflect.DeepEqual(provider.contents, []string{"final answer"}) {
			t.Errorf("Moderation.Score() moderated contents = %q, want output only", provider.contents)
		}
		if _, ok := result.Metadata["segments"]; ok {
			t.Error("Moderation.Score() segments metadata set without IncludeToolOutput")
		}
	})
}

func TestModeration_NoProvider(t *testing.T) {
	ctx := context.Background()

	scorer := Moderation(nil, ModerationOptions{})
	result := scorer.Score(ctx, api.ScoreInputs{Output: "output"})

	if result.Error == nil {
		t.Error("Moderation.Score() expected error when provider is nil")
	}

	if result.Score != 0 {
		t.Errorf("Moderation.Score() score = %v, want 0", result.Score)
	}
}
