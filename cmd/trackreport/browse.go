package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/track-report/internal/prompt"
)

var browseSeason string

func init() {
	browseCmd.Flags().StringVar(&browseSeason, "season", "", "Season year (defaults to report.season)")
}

var browseCmd = &cobra.Command{
	Use:   "browse <athlete name>",
	Short: "Walk an athlete's events with yes/no questions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := selectedEvents(nil)
		if err != nil {
			return err
		}
		athlete, summaries, err := svc.Summaries(cmd.Context(), athleteName(args), seasonOrDefault(browseSeason), events)
		if err != nil {
			return err
		}

		sections := make([]prompt.Section, 0, len(summaries))
		for _, sum := range summaries {
			sections = append(sections, prompt.Section{Label: sum.Event.Label, Text: sum.ResultsText()})
		}

		console := prompt.NewConsole(os.Stdin, cmd.OutOrStdout())
		_, err = prompt.NewWalker(console).Walk(prompt.EventTree(athlete.Name, sections))
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	},
}
