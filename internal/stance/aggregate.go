package stance

import (
	"fmt"
	"strings"

	"github.com/veristat/veristat/internal/model"
)

// snippetLimit bounds how much evidence text survives into summaries
const snippetLimit = 200

// Buckets partitions classified evidence by stance. Items dropped at the
// topical pre-filter stage are counted separately from items classified
// irrelevant: the former is a topic mismatch, the latter evidentiary
// weakness, and the two must be reported distinctly.
type Buckets struct {
	Support    []model.EvidenceSummary
	Refute     []model.EvidenceSummary
	Irrelevant []model.EvidenceSummary

	PreFiltered int
}

// Add places one classified item in its bucket, truncating the body
func (b *Buckets) Add(stance model.Stance, item model.EvidenceItem) {
	summary := model.EvidenceSummary{
		Title:   item.Title,
		Snippet: truncate(item.Body, snippetLimit),
		Href:    item.Link,
	}

	switch stance {
	case model.StanceSupport:
		b.Support = append(b.Support, summary)
	case model.StanceRefute:
		b.Refute = append(b.Refute, summary)
	default:
		b.Irrelevant = append(b.Irrelevant, summary)
	}
}

// Classified returns the number of items that went through classification
func (b *Buckets) Classified() int {
	return len(b.Support) + len(b.Refute) + len(b.Irrelevant)
}

// Breakdown compiles the stance counts. Pre-filtered items fold into the
// irrelevant count so the three fields sum to all evidence considered.
func (b *Buckets) Breakdown() model.EvidenceBreakdown {
	return model.EvidenceBreakdown{
		Support:    len(b.Support),
		Refute:     len(b.Refute),
		Irrelevant: len(b.Irrelevant) + b.PreFiltered,
	}
}

// Context renders the buckets as the structured evidence summary handed to
// verdict synthesis. Irrelevant items appear only as a count.
func (b *Buckets) Context() string {
	var sb strings.Builder

	if len(b.Support) > 0 {
		sb.WriteString("=== Supporting Evidence ===\n")
		for i, ev := range b.Support {
			fmt.Fprintf(&sb, "%d. [%s]\n   %s\n\n", i+1, ev.Title, ev.Snippet)
		}
	}

	if len(b.Refute) > 0 {
		sb.WriteString("=== Refuting Evidence ===\n")
		for i, ev := range b.Refute {
			fmt.Fprintf(&sb, "%d. [%s]\n   %s\n\n", i+1, ev.Title, ev.Snippet)
		}
	}

	if len(b.Irrelevant) > 0 || b.PreFiltered > 0 {
		fmt.Fprintf(&sb, "=== Irrelevant Evidence (%d sources total, %d pre-filtered) ===\n(Not shown for brevity)\n\n",
			len(b.Irrelevant)+b.PreFiltered, b.PreFiltered)
	}

	return sb.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
