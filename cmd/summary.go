package cmd

import (
	"fmt"

	"github.com/theirongolddev/ccdash/internal/cli"
	"github.com/theirongolddev/ccdash/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Overall usage summary with costs",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	res, err := scanAll()
	if err != nil {
		return err
	}
	if !res.Success || len(res.Projects) == 0 {
		fmt.Println("\n  No Claude Code sessions found.")
		fmt.Println("  Use Claude Code first, then come back!")
		return nil
	}

	sum := pipeline.Summarize(res)

	fmt.Println()
	fmt.Println(cli.RenderTitle("CLAUDE CODE USAGE"))
	fmt.Println()

	rows := [][]string{
		{"Projects", cli.FormatNumber(int64(sum.TotalProjects))},
		{"Sessions", cli.FormatNumber(int64(sum.TotalSessions))},
		{"Messages", cli.FormatNumber(int64(sum.TotalMessages))},
		{"---"},
		{"Total Tokens", cli.FormatTokens(sum.TotalTokens)},
		{"Cost (est)", cli.FormatCost(sum.TotalCost)},
		{"---"},
		{"First Activity", cli.FormatTimestamp(sum.FirstActivity)},
		{"Last Activity", cli.FormatTimestamp(sum.LastActivity)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	return nil
}
