package hint

import "github.com/abhisek/grandmaster/internal/llm"

// Schema defines the JSON schema a coach response must satisfy.
var Schema = &llm.Schema{
	Name:        "chess-hint",
	Description: "A suggested next move with reasoning and a rough evaluation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggestedMove": map[string]any{
				"type":        "string",
				"description": "The move in SAN notation (e.g., Nf3)",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "A concise explanation of why this move is good.",
			},
			"evaluation": map[string]any{
				"type":        "string",
				"description": "Rough evaluation (e.g., +0.5 white is slightly better)",
			},
		},
		"required":             []any{"suggestedMove", "reasoning", "evaluation"},
		"additionalProperties": false,
	},
}
