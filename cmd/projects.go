package cmd

import (
	"fmt"

	"github.com/theirongolddev/ccdash/internal/cli"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Project usage ranking",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(_ *cobra.Command, _ []string) error {
	res, err := scanAll()
	if err != nil {
		return err
	}
	if !res.Success || len(res.Projects) == 0 {
		fmt.Println("\n  No projects found.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PROJECTS"))
	fmt.Println()

	rows := make([][]string, 0, len(res.Projects))
	for _, p := range res.Projects {
		var tokens int64
		for _, s := range p.Sessions {
			tokens += s.TotalTokens
		}
		rows = append(rows, []string{
			truncate(p.Path, 36),
			cli.FormatNumber(int64(p.TotalSessions)),
			cli.FormatTokens(tokens),
			cli.FormatCost(p.TotalCost),
			cli.FormatTimestamp(p.LastActivity),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Project", "Sessions", "Tokens", "Cost", "Last Activity"},
		Rows:    rows,
	}))

	return nil
}
