package cmd

import (
	"fmt"

	"github.com/theirongolddev/ccdash/internal/cli"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions <project>",
	Short: "Session list for one project",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessions,
}

var sessionsLimit int

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "l", 20, "Number of sessions to show (0 = all)")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, args []string) error {
	s, _, err := newScanner()
	if err != nil {
		return err
	}

	project, err := s.FindProject(args[0])
	if err != nil {
		return err
	}
	if len(project.Sessions) == 0 {
		fmt.Println("\n  No sessions in this project.")
		return nil
	}

	sessions := project.Sessions
	if sessionsLimit > 0 && len(sessions) > sessionsLimit {
		sessions = sessions[:sessionsLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSIONS  %s (showing %d)", truncate(project.Path, 30), len(sessions))))
	fmt.Println()

	rows := make([][]string, 0, len(sessions))
	for _, sess := range sessions {
		rows = append(rows, []string{
			truncate(sess.SessionID, 14),
			cli.FormatNumber(int64(sess.MessageCount)),
			cli.FormatTokens(sess.TotalTokens),
			cli.FormatPercent(sess.SidechainPercentage),
			cli.FormatSpan(sess.FirstMessage, sess.LastMessage),
			cli.FormatCost(sess.TotalCost),
			cli.FormatTimestamp(sess.LastMessage),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Session", "Msgs", "Tokens", "Side %", "Span", "Cost", "Last Activity"},
		Rows:    rows,
	}))

	return nil
}
