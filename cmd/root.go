package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/ccdash/internal/cache"
	"github.com/theirongolddev/ccdash/internal/cli"
	"github.com/theirongolddev/ccdash/internal/config"
	"github.com/theirongolddev/ccdash/internal/model"
	"github.com/theirongolddev/ccdash/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "ccdash",
	Short: "Claude Code usage dashboard",
	Long:  "Aggregate token usage and estimated costs from local Claude Code session logs.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Claude data directory (default ~/.claude)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// newScanner builds the shared scan pipeline from config and flags.
func newScanner() (*pipeline.Scanner, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}

	progress := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%50 == 0 || current == total {
			fmt.Fprint(os.Stderr, cli.RenderProgress(current, total))
		}
	}

	return &pipeline.Scanner{
		Root:     config.ProjectsRoot(cfg, flagDataDir),
		Rates:    cfg.Rates(),
		Cache:    cache.New(),
		Progress: progress,
	}, cfg, nil
}

// scanAll is the shared scan path used by the reporting commands. It
// surfaces per-file warnings on stderr and leaves stdout to the report.
func scanAll() (model.ScanResult, error) {
	s, _, err := newScanner()
	if err != nil {
		return model.ScanResult{}, err
	}

	res := s.ScanAll(false)
	if !flagQuiet && res.Success {
		fmt.Fprintf(os.Stderr, "\r  Scanned %d projects in %dms    \n",
			res.Metadata.ProjectCount, res.Metadata.DurationMs)
	}
	if len(res.Metadata.Warnings) > 0 {
		fmt.Fprint(os.Stderr, cli.RenderWarnings(res.Metadata.Warnings))
	}
	return res, nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
