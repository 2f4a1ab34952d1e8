package model

// Stance classifies an evidence item's relation to a claim
type Stance string

const (
	StanceSupport    Stance = "support"
	StanceRefute     Stance = "refute"
	StanceIrrelevant Stance = "irrelevant"
)

// SearchResult is one raw document returned by the search provider
type SearchResult struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Href  string `json:"href"`
}

// Valid reports whether the result carries enough text to analyze
func (r SearchResult) Valid() bool {
	return r.Title != "" && r.Body != ""
}

// EvidenceItem is one retrieved document as it moves through the pipeline.
// Annotation stages produce a new value instead of mutating shared state;
// items are discarded after verdict synthesis and only summaries persist.
type EvidenceItem struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Link  string `json:"link"`

	// Annotations added by pipeline stages
	Stance   Stance             `json:"stance,omitempty"`
	Time     *NormalizedTime    `json:"time,omitempty"`
	Temporal *TemporalRelevance `json:"temporal,omitempty"`
}

// EvidenceSummary is the truncated form of an item retained in results
type EvidenceSummary struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Href    string `json:"href"`
}

// EvidenceBreakdown counts evidence by stance. The three fields always sum
// to the number of evidence items considered (retrieved minus invalid
// entries); items dropped by the topical pre-filter count as irrelevant.
type EvidenceBreakdown struct {
	Support    int `json:"support"`
	Refute     int `json:"refute"`
	Irrelevant int `json:"irrelevant"`
}

// Total returns the number of evidence items the breakdown accounts for
func (b EvidenceBreakdown) Total() int {
	return b.Support + b.Refute + b.Irrelevant
}
