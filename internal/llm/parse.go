package llm

import (
	"encoding/json"
	"strings"
)

// StripFences removes markdown code-block markers from a model response.
// Handles responses wrapped in ```json ... ``` or ``` ... ```.
func StripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}

	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")

	return strings.TrimSpace(cleaned)
}

// ParseJSON decodes a model response into v, tolerating markdown fences.
// Models frequently wrap structured output in code blocks despite being told
// not to; callers treat a decode failure as a recoverable condition.
func ParseJSON(raw string, v any) error {
	return json.Unmarshal([]byte(StripFences(raw)), v)
}
