package pipeline

import (
	"context"
	"strings"

	"github.com/veristat/veristat/internal/llm"
)

// Location keywords forcibly carried from the claim into the query when the
// generative step drops them; regional scoping is too important to lose.
var locationKeywords = []string{
	"台北", "臺北", "台中", "臺中", "台南", "臺南", "高雄", "台灣", "臺灣",
	"Taipei", "Taichung", "Tainan", "Kaohsiung", "Taiwan",
}

const querySystemPrompt = "Extract the most important keywords for fact-checking this claim.\n" +
	"CRITICAL: Keep the query in the SAME LANGUAGE as the claim.\n" +
	"- If claim is in Chinese → return Chinese keywords\n" +
	"- If claim is in English → return English keywords\n\n" +
	"Return ONLY 2-4 key terms that would help find relevant evidence.\n" +
	"Focus on:\n" +
	"- Names of people, organizations, places\n" +
	"- Specific events or policies\n" +
	"- Dates or time periods\n" +
	"- Core factual assertions\n\n" +
	"MUST include location keywords if present (e.g., 台北, 台灣, Beijing, Taiwan)\n" +
	"Remove: opinions, adjectives, unnecessary words.\n" +
	"Return as a simple search query string (not JSON)."

// QueryGenerator turns a claim into an optimized search query. Generation
// failure falls back to using the raw claim as the query.
type QueryGenerator struct {
	provider llm.Provider
}

// NewQueryGenerator creates a new query generator
func NewQueryGenerator(provider llm.Provider) *QueryGenerator {
	return &QueryGenerator{provider: provider}
}

// Generate returns the search query for a claim
func (g *QueryGenerator) Generate(ctx context.Context, claim string) string {
	out, err := g.provider.Complete(ctx, querySystemPrompt, "Claim: "+claim)
	if err != nil {
		return claim
	}

	query := strings.TrimSpace(out)
	query = strings.Trim(query, `"'`)
	query = strings.TrimSpace(query)

	if query == "" {
		return claim
	}

	// Re-attach a claim location the model dropped
	for _, loc := range locationKeywords {
		if strings.Contains(claim, loc) && !strings.Contains(query, loc) {
			query = loc + " " + query
			break
		}
	}

	return query
}
