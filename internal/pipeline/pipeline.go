package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/veristat/veristat/internal/cache"
	"github.com/veristat/veristat/internal/extract"
	"github.com/veristat/veristat/internal/llm"
	"github.com/veristat/veristat/internal/model"
	"github.com/veristat/veristat/internal/search"
	"github.com/veristat/veristat/internal/stance"
	"github.com/veristat/veristat/internal/temporal"
	"github.com/veristat/veristat/internal/topical"
	"github.com/veristat/veristat/internal/verdict"
)

// minEvidenceSources is the count below which a low-evidence warning is
// attached to the verdict
const minEvidenceSources = 3

// Pipeline orchestrates the complete verification process: query generation,
// evidence retrieval, topical pre-filtering, temporal annotation, stance
// classification, verdict synthesis and title-level judgment. Pipelines are
// safe for concurrent use; independent claims share no mutable state.
type Pipeline struct {
	provider    llm.Provider
	searcher    search.Searcher
	queryGen    *QueryGenerator
	extractor   *extract.Extractor
	prefilter   *topical.PreFilter
	normalizer  *temporal.Normalizer
	classifier  *stance.Classifier
	synthesizer *verdict.Synthesizer
	judge       *verdict.Judge
	config      *model.Config
}

// NewPipeline creates a pipeline from configuration, wiring the LLM provider
// and the (optionally cached) search client.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	var searcher search.Searcher = search.NewDuckDuckGo(search.DuckDuckGoOptions{
		BaseURL:           cfg.Search.BaseURL,
		Timeout:           cfg.Search.Timeout,
		UserAgent:         cfg.Search.UserAgent,
		MaxBodyBytes:      cfg.Search.MaxBodyBytes,
		RequestsPerSecond: cfg.Search.RequestsPerSecond,
		BurstSize:         cfg.Search.BurstSize,
		RespectRobots:     cfg.Search.RespectRobots,
	})

	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(home, ".veristat", "cache")
			}
		}
		if dir != "" {
			layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
			searcher = search.NewCachedSearcher(searcher, layered, cfg.Cache.DiskTTL)
		}
	}

	return newPipeline(provider, searcher, cfg), nil
}

// newPipeline wires the stages around injected collaborators; tests use it
// with deterministic stubs.
func newPipeline(provider llm.Provider, searcher search.Searcher, cfg *model.Config) *Pipeline {
	return &Pipeline{
		provider:    provider,
		searcher:    searcher,
		queryGen:    NewQueryGenerator(provider),
		extractor:   extract.NewExtractor(provider),
		prefilter:   topical.NewPreFilter(),
		normalizer:  temporal.NewNormalizer(provider),
		classifier:  stance.NewClassifier(provider),
		synthesizer: verdict.NewSynthesizer(provider),
		judge:       verdict.NewJudge(provider),
		config:      cfg,
	}
}

// Options control one verification run. ReferenceDate anchors all relative
// time expressions and is always explicit; callers resolve "now" once at the
// boundary so date arithmetic stays reproducible.
type Options struct {
	Language      model.Language
	TemporalCheck bool
	ReferenceDate time.Time
}

func (o Options) referenceDate() time.Time {
	if o.ReferenceDate.IsZero() {
		return time.Now().UTC()
	}
	return o.ReferenceDate
}

// Verify runs the full evidence pipeline for a single claim. Every code
// path returns a well-formed result; external failures degrade the verdict.
func (p *Pipeline) Verify(ctx context.Context, claim string, opts Options) model.VerificationResult {
	refDate := opts.referenceDate()

	// 1. Generate the search query (falls back to the raw claim)
	query := p.queryGen.Generate(ctx, claim)
	p.logf("  → search query: %s\n", query)

	// 2. Retrieve evidence
	results, err := p.searcher.Search(ctx, query, p.config.Search.MaxResults)
	if err != nil {
		p.logf("  Error: search failed (%v)\n", err)
		return model.VerificationResult{
			Verdict:     model.VerdictInsufficient,
			Explanation: fmt.Sprintf("Search error: %v", err),
			SearchQuery: query,
		}
	}

	valid := make([]model.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Valid() {
			valid = append(valid, r)
		}
	}

	// Zero usable evidence short-circuits before any classification call
	if len(valid) == 0 {
		return model.VerificationResult{
			Verdict:     model.VerdictInsufficient,
			Explanation: "No relevant evidence found. Cannot verify this claim.",
			SearchQuery: query,
		}
	}

	lowEvidence := ""
	if len(valid) < minEvidenceSources {
		lowEvidence = fmt.Sprintf("[Warning] Only found %d evidence source(s). Recommended: at least %d sources.",
			len(valid), minEvidenceSources)
	}

	// 3. Resolve the claim's time constraint, when requested
	claimTime := model.NoTimeReference("")
	if opts.TemporalCheck {
		if expr, ok := p.normalizer.ExtractClaimTime(ctx, claim); ok {
			claimTime = p.normalizer.Normalize(ctx, expr, refDate)
			p.logf("  → claim time: %q (%s)\n", expr, claimTime.TimeType)
		}
	}
	temporalActive := claimTime.TimeType != model.TimeNoReference

	// 4. Topical pre-filter
	buckets := &stance.Buckets{}
	kept := make([]model.SearchResult, 0, len(valid))
	for _, r := range valid {
		if p.prefilter.Keep(claim, r.Title, r.Body) {
			kept = append(kept, r)
		} else {
			buckets.PreFiltered++
		}
	}
	if buckets.PreFiltered > 0 {
		p.logf("     pre-filtered %d obviously irrelevant sources\n", buckets.PreFiltered)
	}

	if len(kept) == 0 {
		return model.VerificationResult{
			Verdict:       model.VerdictInsufficient,
			Explanation:   fmt.Sprintf("All %d search results were irrelevant to the claim (wrong location/topic).", len(valid)),
			EvidenceCount: len(valid),
			SearchQuery:   query,
			Breakdown:     model.EvidenceBreakdown{Irrelevant: len(valid)},
			PreFiltered:   buckets.PreFiltered,
		}
	}

	// 5. Annotate and classify each surviving item. Temporal findings are
	// advisory: the item is retained either way and only the first
	// out-of-window warning is surfaced.
	p.logf("  → analyzing stance of %d evidence sources...\n", len(kept))
	temporalWarning := ""
	for _, r := range kept {
		item := model.EvidenceItem{Title: r.Title, Body: r.Body, Link: r.Href}

		if temporalActive {
			et := p.normalizer.ExtractEvidenceTime(ctx, r.Title+" "+r.Body)
			evTime := p.normalizer.NormalizeEvidence(ctx, et, refDate)
			rel := temporal.Check(claimTime, evTime)
			item.Time = &evTime
			item.Temporal = &rel

			if temporalWarning == "" &&
				(rel.Status == model.TemporalTooOld || rel.Status == model.TemporalTooRecent) {
				temporalWarning = fmt.Sprintf("[Temporal warning] %s (expected %s, evidence dated %s).",
					rel.Explanation, rel.ExpectedRange, rel.EvidenceDate)
			}
		}

		item.Stance = p.classifier.Classify(ctx, claim, item.Title, item.Body)
		buckets.Add(item.Stance, item)
	}

	// 6. Synthesize the verdict
	return p.synthesizer.Synthesize(ctx, verdict.Input{
		Claim:         claim,
		SearchQuery:   query,
		Buckets:       buckets,
		EvidenceCount: len(valid),
		LowEvidence:   lowEvidence,
		Temporal:      temporalWarning,
		Language:      opts.Language,
	})
}

// JudgeDocument verifies each detail and judges the title from the results.
// Details are verified in parallel up to the configured worker count; the
// output order always matches the input order.
func (p *Pipeline) JudgeDocument(ctx context.Context, title string, details []string, opts Options) (model.TitleVerdict, []model.DetailResult) {
	detailResults := make([]model.DetailResult, len(details))

	g, gctx := errgroup.WithContext(ctx)
	workers := p.config.Concurrency.DetailWorkers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, detail := range details {
		i, detail := i, detail
		g.Go(func() error {
			p.logf("  verifying detail %d/%d: %s\n", i+1, len(details), truncateForLog(detail))
			detailResults[i] = model.DetailResult{
				Detail:             detail,
				VerificationResult: p.Verify(gctx, detail, opts),
			}
			return nil
		})
	}
	_ = g.Wait() // verification never returns an error, only degraded results

	titleVerdict := p.judge.Judge(ctx, title, detailResults, opts.Language)

	return titleVerdict, detailResults
}

// Run auto-detects the input structure and executes the matching mode:
// Title:/Content: articles go through detail extraction and the hierarchical
// judge, everything else through claim extraction and flat aggregation.
func (p *Pipeline) Run(ctx context.Context, text string, opts Options) *model.Report {
	if extract.IsArticle(text) {
		return p.runArticle(ctx, text, opts)
	}
	return p.runPlainText(ctx, text, opts)
}

func (p *Pipeline) runArticle(ctx context.Context, text string, opts Options) *model.Report {
	p.logf("[MODE] News Article Verification (Title→Details→Evidence)\n")

	title, details := p.extractor.Article(ctx, text, opts.Language)
	p.logf("Title: %s\nFound %d verifiable details\n", title, len(details))

	titleVerdict, detailResults := p.JudgeDocument(ctx, title, details, opts)

	counts := titleVerdict.DetailSummary
	return &model.Report{
		Mode:             model.ModeNewsArticle,
		GeneratedAt:      time.Now().UTC(),
		Title:            title,
		TitleVerdict:     titleVerdict.OverallCredibility,
		TitleExplanation: titleVerdict.Explanation,
		DetailSummary:    &counts,
		Details:          detailResults,
	}
}

func (p *Pipeline) runPlainText(ctx context.Context, text string, opts Options) *model.Report {
	p.logf("[MODE] Plain Text Verification (Claim-based)\n")

	claims := p.extractor.Claims(ctx, text, opts.Language)
	p.logf("Found %d claims\n", len(claims))

	results := make([]model.ClaimResult, 0, len(claims))
	var counts model.VerdictCounts
	for i, claim := range claims {
		p.logf("verifying claim %d/%d: %s\n", i+1, len(claims), truncateForLog(claim))
		vr := p.Verify(ctx, claim, opts)
		counts.Add(vr.Verdict)
		results = append(results, model.ClaimResult{Claim: claim, VerificationResult: vr})
	}

	return &model.Report{
		Mode:               model.ModePlainText,
		GeneratedAt:        time.Now().UTC(),
		OverallCredibility: aggregateCredibility(counts),
		Summary: fmt.Sprintf("Supported: %d, Contradicted: %d, Insufficient evidence: %d",
			counts.Supported, counts.Contradicted, counts.Insufficient),
		Claims: results,
	}
}

// aggregateCredibility maps claim verdict counts to an overall level: any
// contradiction is disqualifying, full support without gaps is high, and
// everything in between stays uncertain.
func aggregateCredibility(counts model.VerdictCounts) string {
	switch {
	case counts.Contradicted > 0:
		return model.CredibilityLow
	case counts.Supported > 0 && counts.Insufficient == 0:
		return model.CredibilityHigh
	default:
		return model.CredibilityUnknown
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func truncateForLog(s string) string {
	runes := []rune(s)
	if len(runes) > 80 {
		return string(runes[:80]) + "..."
	}
	return s
}
