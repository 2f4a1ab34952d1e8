package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/veristat/veristat/internal/model"
	"github.com/veristat/veristat/internal/pipeline"
)

var (
	checkFile     string
	checkLang     string
	checkDate     string
	checkTimeout  time.Duration
	noTemporal    bool
	noCache       bool
	outJSON       string
	outMD         string
	llmProvider   string
	llmModel      string
	searchResults int
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Verify a claim or news article against web evidence",
	Long: `Check verifies the given text:
- Plain text: extracts claims, verifies each, aggregates credibility
- News article ("Title: ... Content: ..."): verifies each detail and
  judges the title's credibility from the detail verdicts

The text comes from the argument, --file, or stdin.

The reference date anchors relative time expressions ("last week",
"去年") so runs are reproducible; it defaults to today.

Example:
  veristat check "台北市今天宣布新的交通政策"
  veristat check --file article.txt --lang zh-TW --date 2025-06-01
  echo "NASA announced a new mission last month" | veristat check --lang en`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFile, "file", "", "read input text from file")
	checkCmd.Flags().StringVar(&checkLang, "lang", "", "output language (zh-TW, en, auto)")
	checkCmd.Flags().StringVar(&checkDate, "date", "", "reference date for relative time expressions (YYYY-MM-DD, default today)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "overall verification timeout")
	checkCmd.Flags().BoolVar(&noTemporal, "no-temporal", false, "disable the temporal relevance check")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the search cache (force fresh searches)")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path (optional)")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	checkCmd.Flags().IntVar(&searchResults, "max-results", 0, "max search results per claim")
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no input text: pass an argument, --file, or pipe to stdin")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyCheckFlags(cfg)
	if err := resolveAPIKey(cfg); err != nil {
		return err
	}

	opts := pipeline.Options{
		Language:      cfg.Output.Language,
		TemporalCheck: cfg.Temporal.Enabled && !noTemporal,
	}
	if checkDate != "" {
		refDate, err := time.ParseInLocation("2006-01-02", checkDate, time.UTC)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", checkDate)
		}
		opts.ReferenceDate = refDate
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report := p.Run(ctx, text, opts)

	if err := p.RenderReport(report, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

func applyCheckFlags(cfg *model.Config) {
	if checkLang != "" {
		cfg.Output.Language = model.Language(checkLang).Normalize()
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if searchResults > 0 {
		cfg.Search.MaxResults = searchResults
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
}

// readInput resolves the input text from the argument, --file, or stdin
func readInput(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if checkFile != "" {
		data, err := os.ReadFile(checkFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	return "", nil
}
