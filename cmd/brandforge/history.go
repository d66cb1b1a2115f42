package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/brandforge/brandforge/internal/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent resolution runs",
		Long:  `Display the most recent resolution runs from the local audit log.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.RecentResolutions(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to load resolution history: %w", err)
			}

			if len(records) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No resolution runs recorded yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("When"),
				headerStyle.Render("Input"),
				headerStyle.Render("Code"),
				headerStyle.Render("Status"),
				headerStyle.Render("Source"),
				headerStyle.Render("Took"))

			for _, rec := range records {
				input := rec.Input
				if len(input) > 40 {
					input = input[:37] + "..."
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					rec.StartedAt.Format("2006-01-02 15:04"),
					input,
					rec.Code,
					formatStatus(string(rec.Status)),
					rec.Source,
					formatDuration(rec.Duration))
			}

			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum number of runs to show")

	return cmd
}

func formatStatus(status string) string {
	switch status {
	case "CONFIRMED":
		return cli.SuccessStyle.Render(status)
	case "CORRECTED":
		return cli.WarningStyle.Render(status)
	default:
		return cli.ErrorStyle.Render(status)
	}
}
