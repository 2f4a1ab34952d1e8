package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/veristat/veristat/internal/model"
	"github.com/veristat/veristat/internal/pipeline"
)

// Verifier defines the interface for verifying a single claim
type Verifier interface {
	Verify(ctx context.Context, claim string, opts pipeline.Options) model.VerificationResult
}

// VerifyJob verifies one claim at a known position in the batch
type VerifyJob struct {
	Index    int
	Claim    string
	Options  pipeline.Options
	Verifier Verifier
}

// Execute runs the verification
func (j *VerifyJob) Execute(ctx context.Context) Result {
	result := j.Verifier.Verify(ctx, j.Claim, j.Options)
	return &VerifyResult{
		Index:  j.Index,
		Claim:  j.Claim,
		Result: result,
	}
}

// VerifyResult is the outcome of one batch claim
type VerifyResult struct {
	Index  int
	Claim  string
	Result model.VerificationResult
	Error  error
}

// GetError returns the error from the verification result
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple claims concurrently
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// ProcessClaims verifies claims concurrently. The returned slice is ordered
// to match the input regardless of completion order.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string, opts pipeline.Options) []*VerifyResult {
	if len(claims) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()
	collector := pool.Collect()

	for i, claim := range claims {
		pool.Submit(&VerifyJob{
			Index:    i,
			Claim:    claim,
			Options:  opts,
			Verifier: b.verifier,
		})
	}

	results := collector.Wait()

	ordered := make([]*VerifyResult, len(claims))
	for _, result := range results {
		vr := result.(*VerifyResult)
		ordered[vr.Index] = vr
	}

	return ordered
}

// ProcessFile reads claims from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, opts pipeline.Options) ([]*VerifyResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims, opts), nil
}

// ReadClaimsFromFile reads claims from a file (one per line), skipping blank
// lines and # comments and dropping duplicates
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
