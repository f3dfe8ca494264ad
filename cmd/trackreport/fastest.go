package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	fastestSeason string
	fastestEvents []string
)

func init() {
	fastestCmd.Flags().StringVar(&fastestSeason, "season", "", "Season year (defaults to report.season)")
	fastestCmd.Flags().StringSliceVar(&fastestEvents, "events", nil, "Events to include (defaults to report.events)")
}

var fastestCmd = &cobra.Command{
	Use:   "fastest <athlete name>",
	Short: "Print an athlete's season results and fastest times",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := selectedEvents(fastestEvents)
		if err != nil {
			return err
		}

		athlete, summaries, err := svc.Summaries(cmd.Context(), athleteName(args), seasonOrDefault(fastestSeason), events)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, athlete.Name)
		for _, sum := range summaries {
			fmt.Fprintln(out, sum.ResultsText())
			fmt.Fprintln(out, sum.FastestText())
			if imp := sum.ImprovementText(); imp != "" {
				fmt.Fprintf(out, "Improvement %s = %ss\n", sum.Event.Label, imp)
			}
		}
		return nil
	},
}
