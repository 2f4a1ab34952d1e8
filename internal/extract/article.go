// Package extract decomposes input text into verifiable units: a title plus
// supporting details for news articles, or standalone claims for free text.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/veristat/veristat/internal/llm"
	"github.com/veristat/veristat/internal/model"
)

// maxUnits caps how many details or claims one input yields
const maxUnits = 5

// Extractor pulls verifiable units out of input text via the generative
// service. Extraction failures degrade: article mode falls back to the
// literal Title: line with no details, claim mode to the raw text as a
// single claim.
type Extractor struct {
	provider llm.Provider
}

// NewExtractor creates a new extractor
func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// IsArticle reports whether the text carries the news-article structure
func IsArticle(text string) bool {
	return strings.Contains(text, "Title:") && strings.Contains(text, "Content:")
}

type articleResponse struct {
	Title   string   `json:"title"`
	Details []string `json:"details"`
}

// Article extracts the title and the verifiable details that directly
// support it from a Title:/Content: structured article.
func (e *Extractor) Article(ctx context.Context, text string, lang model.Language) (string, []string) {
	system := extractionLanguage(lang, "title and details") + "\n\n" +
		`You are analyzing a news article to extract:
1. The TITLE (main claim of the article)
2. VERIFIABLE DETAILS that DIRECTLY SUPPORT the title's core claim

CRITICAL RULES:
1. Extract ONLY from the provided text - DO NOT add information from your knowledge
2. Details must be EXACT quotes or paraphrases from the CONTENT section
3. If title claims '3000 police deployed' → find WHERE in content it mentions specific numbers
4. DO NOT infer, guess, or add details not explicitly stated in the text
5. DO NOT extract peripheral details that don't directly prove the title's main claim

Details should be:
- Specific numbers FOUND IN THE TEXT (e.g., '1300 police', '2900 MRT staff')
- Key events MENTIONED IN THE TEXT that directly relate to the title
- Evidence FROM THE TEXT that confirms or refutes the title's core assertion

Extract 2-4 key details (quality over quantity).
Ignore: peripheral details, opinions, vague statements, minor supporting facts.

IMPORTANT: If the content doesn't contain enough specific details to support the title, return fewer details or empty array.
DO NOT fabricate or guess details not present in the text.

Return JSON with fields: title (string), details (array of strings).
The extracted title and details MUST be in the language specified above.`

	out, err := e.provider.Complete(ctx, system, text)
	if err != nil {
		return fallbackTitle(text), nil
	}

	var resp articleResponse
	if err := llm.ParseJSON(out, &resp); err != nil {
		return fallbackTitle(text), nil
	}

	details := resp.Details
	if len(details) > maxUnits {
		details = details[:maxUnits]
	}

	title := resp.Title
	if title == "" {
		title = fallbackTitle(text)
	}

	return title, details
}

// Claims extracts independent verifiable claims from free text
func (e *Extractor) Claims(ctx context.Context, text string, lang model.Language) []string {
	system := extractionLanguage(lang, "claims") + "\n\n" +
		`Extract 3-5 verifiable factual claims from the PROVIDED TEXT ONLY.

CRITICAL: Extract ONLY from the text - DO NOT add information from your knowledge.

Focus on:
- Specific events MENTIONED IN THE TEXT
- Concrete numbers or statistics STATED IN THE TEXT
- Statements FROM THE TEXT that can be fact-checked

Ignore:
- Opinions or subjective statements
- Vague or unclear claims
- Repeated information
- Information not explicitly present in the text

DO NOT infer, extrapolate, or add claims based on your general knowledge.
If the text contains fewer than 3 verifiable claims, return fewer items.

Return a JSON array of strings (the claims).
The extracted claims MUST be in the language specified above.`

	out, err := e.provider.Complete(ctx, system, text)
	if err != nil {
		return []string{fallbackClaim(text)}
	}

	var claims []string
	if err := llm.ParseJSON(out, &claims); err != nil {
		return []string{fallbackClaim(text)}
	}

	if len(claims) > maxUnits {
		claims = claims[:maxUnits]
	}
	if len(claims) == 0 {
		return []string{fallbackClaim(text)}
	}

	return claims
}

// fallbackTitle scans the raw text for a Title: line
func fallbackTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Title:") {
			if title := strings.TrimSpace(strings.TrimPrefix(line, "Title:")); title != "" {
				return title
			}
		}
	}
	return "Unknown"
}

// fallbackClaim treats the whole text as one claim, bounded in length
func fallbackClaim(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > 500 {
		runes = runes[:500]
	}
	return string(runes)
}

func extractionLanguage(lang model.Language, what string) string {
	switch lang.Normalize() {
	case model.LanguageEn:
		return fmt.Sprintf("CRITICAL: Extract %s in English.", what)
	default:
		return fmt.Sprintf("CRITICAL: Extract %s in Traditional Chinese (繁體中文).", what)
	}
}
