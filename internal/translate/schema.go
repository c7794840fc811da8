package translate

import "github.com/ranilearn/rani/internal/llm"

// TranslationSchema is the reply shape for one batch of keys.
var TranslationSchema = &llm.Schema{
	Name:        "ui-translations",
	Description: "Translations of user interface strings, one entry per key",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"translations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"key": map[string]any{
							"type":        "string",
							"description": "The key exactly as given",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "The translated string",
							"minLength":   1,
						},
					},
					"required":             []any{"key", "text"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"translations"},
		"additionalProperties": false,
	},
}
