package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veristat/veristat/internal/model"
	"github.com/veristat/veristat/internal/pipeline"
	"github.com/veristat/veristat/internal/worker"
)

var (
	concurrency  int
	batchOut     string
	batchTimeout time.Duration
	batchLang    string
	batchDate    string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch verifies claims concurrently:
- Read claims from input file (one per line, # comments skipped)
- Verify claims in parallel with configurable worker count
- Results keep the input order

Example:
  veristat batch claims.txt
  veristat batch claims.txt --concurrency 8 --json results.json
  veristat batch claims.txt --lang en --date 2025-06-01`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&batchOut, "json", "", "output JSON path (optional)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchLang, "lang", "", "output language (zh-TW, en, auto)")
	batchCmd.Flags().StringVar(&batchDate, "date", "", "reference date for relative time expressions (YYYY-MM-DD)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchLang != "" {
		cfg.Output.Language = model.Language(batchLang).Normalize()
	}
	if concurrency > 0 {
		cfg.Concurrency.BatchWorkers = concurrency
	}
	if err := resolveAPIKey(cfg); err != nil {
		return err
	}

	opts := pipeline.Options{
		Language:      cfg.Output.Language,
		TemporalCheck: cfg.Temporal.Enabled,
	}
	if batchDate != "" {
		refDate, err := time.ParseInLocation("2006-01-02", batchDate, time.UTC)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", batchDate)
		}
		opts.ReferenceDate = refDate
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Reading claims from %s...\n", file)

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)
	results, err := processor.ProcessFile(ctx, file, opts)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Verified %d claims with %d workers\n\n", len(results), cfg.Concurrency.BatchWorkers)

	var counts model.VerdictCounts
	claims := make([]model.ClaimResult, 0, len(results))
	for i, r := range results {
		counts.Add(r.Result.Verdict)
		claims = append(claims, model.ClaimResult{Claim: r.Claim, VerificationResult: r.Result})
		fmt.Printf("[%d] %s\n    → %s\n", i+1, r.Claim, r.Result.Verdict)
	}

	fmt.Printf("\nSupported: %d, Contradicted: %d, Insufficient evidence: %d\n",
		counts.Supported, counts.Contradicted, counts.Insufficient)

	if batchOut != "" {
		data, err := json.MarshalIndent(claims, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		if err := os.WriteFile(batchOut, data, 0o644); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", batchOut)
	}

	return nil
}
