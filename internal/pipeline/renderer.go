package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veristat/veristat/internal/model"
)

// Renderer writes verification reports to files and to stdout
type Renderer struct{}

// NewRenderer creates a report renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	switch report.Mode {
	case model.ModeNewsArticle:
		fmt.Fprintf(&b, "# Verification Report: %s\n\n", report.Title)
		fmt.Fprintf(&b, "**Overall Credibility:** %s\n\n", report.TitleVerdict)
		fmt.Fprintf(&b, "%s\n\n", report.TitleExplanation)
		if report.DetailSummary != nil {
			fmt.Fprintf(&b, "| Supported | Contradicted | Insufficient |\n")
			fmt.Fprintf(&b, "|---|---|---|\n")
			fmt.Fprintf(&b, "| %d | %d | %d |\n\n",
				report.DetailSummary.Supported,
				report.DetailSummary.Contradicted,
				report.DetailSummary.Insufficient)
		}
		for i, d := range report.Details {
			fmt.Fprintf(&b, "## Detail %d\n\n", i+1)
			fmt.Fprintf(&b, "> %s\n\n", d.Detail)
			writeResultMarkdown(&b, d.VerificationResult)
		}
	default:
		fmt.Fprintf(&b, "# Verification Report\n\n")
		fmt.Fprintf(&b, "**Overall Credibility:** %s\n\n", report.OverallCredibility)
		fmt.Fprintf(&b, "%s\n\n", report.Summary)
		for i, c := range report.Claims {
			fmt.Fprintf(&b, "## Claim %d\n\n", i+1)
			fmt.Fprintf(&b, "> %s\n\n", c.Claim)
			writeResultMarkdown(&b, c.VerificationResult)
		}
	}

	fmt.Fprintf(&b, "---\n*Generated %s*\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeResultMarkdown(b *strings.Builder, vr model.VerificationResult) {
	fmt.Fprintf(b, "**Verdict:** %s\n\n", vr.Verdict)
	fmt.Fprintf(b, "%s\n\n", vr.Explanation)
	fmt.Fprintf(b, "- Evidence considered: %d (support %d, refute %d, irrelevant %d)\n",
		vr.EvidenceCount, vr.Breakdown.Support, vr.Breakdown.Refute, vr.Breakdown.Irrelevant)
	if vr.PreFiltered > 0 {
		fmt.Fprintf(b, "- Pre-filtered as off-topic: %d\n", vr.PreFiltered)
	}
	if vr.SearchQuery != "" {
		fmt.Fprintf(b, "- Search query: `%s`\n", vr.SearchQuery)
	}
	if vr.TemporalWarning != "" {
		fmt.Fprintf(b, "- %s\n", vr.TemporalWarning)
	}
	b.WriteString("\n")
	if len(vr.Supporting) > 0 {
		fmt.Fprintf(b, "**Supporting evidence:**\n\n")
		for _, e := range vr.Supporting {
			fmt.Fprintf(b, "- [%s](%s): %s\n", e.Title, e.Href, e.Snippet)
		}
		b.WriteString("\n")
	}
	if len(vr.Refuting) > 0 {
		fmt.Fprintf(b, "**Refuting evidence:**\n\n")
		for _, e := range vr.Refuting {
			fmt.Fprintf(b, "- [%s](%s): %s\n", e.Title, e.Href, e.Snippet)
		}
		b.WriteString("\n")
	}
}

// RenderSummary prints a short result summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Println("==================================================")
	switch report.Mode {
	case model.ModeNewsArticle:
		fmt.Printf("Title: %s\n", report.Title)
		fmt.Printf("Overall credibility: %s\n", report.TitleVerdict)
		if report.DetailSummary != nil {
			fmt.Printf("Details: %d supported, %d contradicted, %d insufficient\n",
				report.DetailSummary.Supported,
				report.DetailSummary.Contradicted,
				report.DetailSummary.Insufficient)
		}
		fmt.Printf("\n%s\n", report.TitleExplanation)
	default:
		fmt.Printf("Overall credibility: %s\n", report.OverallCredibility)
		fmt.Printf("%s\n", report.Summary)
		for i, c := range report.Claims {
			fmt.Printf("\n[%d] %s\n    → %s\n", i+1, c.Claim, c.Verdict)
		}
	}
	fmt.Println("==================================================")
}

// RenderReport renders the report to the requested outputs and prints the
// stdout summary
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string) error {
	renderer := NewRenderer()

	if jsonPath != "" {
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if p.config.Output.Verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if p.config.Output.Verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	renderer.RenderSummary(report)
	return nil
}
