package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/procyon-ai/agenteval/api"
)

// Generator wraps a genai.Client to implement the LLMGenerator interface
type Generator struct {
	client    *genai.Client
	modelName string
}

// NewGenerator creates a new Gemini generator
// client: genai.Client from google.golang.org/genai
// modelName: the model to use (e.g., "gemini-2.5-flash")
func NewGenerator(client *genai.Client, modelName string) *Generator {
	return &Generator{
		client:    client,
		modelName: modelName,
	}
}

// Generate implements LLMGenerator.Generate
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	content := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.modelName,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no parts in response")
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// StructuredGenerate implements LLMGenerator.StructuredGenerate
// The schema map is converted to a genai response schema and the model is
// constrained to JSON output
func (g *Generator) StructuredGenerate(ctx context.Context, prompt string, schema map[string]interface{}) (map[string]interface{}, error) {
	responseSchema, err := toGenaiSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("invalid response schema: %w", err)
	}

	content := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.modelName,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no parts in response")
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(resp.Candidates[0].Content.Parts[0].Text), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse structured response: %w", err)
	}

	return parsed, nil
}

// toGenaiSchema converts a JSON schema map to the genai schema type
// Supports the subset of JSON schema used by the scorers: type, description,
// enum, properties, required and items
func toGenaiSchema(schema map[string]interface{}) (*genai.Schema, error) {
	result := &genai.Schema{}

	if t, ok := schema["type"].(string); ok {
		switch t {
		case "object":
			result.Type = genai.TypeObject
		case "array":
			result.Type = genai.TypeArray
		case "string":
			result.Type = genai.TypeString
		case "number":
			result.Type = genai.TypeNumber
		case "integer":
			result.Type = genai.TypeInteger
		case "boolean":
			result.Type = genai.TypeBoolean
		default:
			return nil, fmt.Errorf("unsupported schema type: %q", t)
		}
	}

	if desc, ok := schema["description"].(string); ok {
		result.Description = desc
	}

	if enum, ok := schema["enum"]; ok {
		values, err := toStringSlice(enum)
		if err != nil {
			return nil, fmt.Errorf("enum: %w", err)
		}
		result.Enum = values
	}

	if props, ok := schema["properties"]; ok {
		propsMap, ok := props.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("properties must be a map, got %T", props)
		}
		result.Properties = make(map[string]*genai.Schema, len(propsMap))
		for name, prop := range propsMap {
			propMap, ok := prop.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("property %q must be a map, got %T", name, prop)
			}
			converted, err := toGenaiSchema(propMap)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			result.Properties[name] = converted
		}
	}

	if required, ok := schema["required"]; ok {
		values, err := toStringSlice(required)
		if err != nil {
			return nil, fmt.Errorf("required: %w", err)
		}
		result.Required = values
	}

	if items, ok := schema["items"]; ok {
		itemsMap, ok := items.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("items must be a map, got %T", items)
		}
		converted, err := toGenaiSchema(itemsMap)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		result.Items = converted
	}

	return result, nil
}

func toStringSlice(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", item)
			}
			result = append(result, s)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("expected string slice, got %T", value)
	}
}

// Verify that Generator implements LLMGenerator
var _ api.LLMGenerator = (*Generator)(nil)
