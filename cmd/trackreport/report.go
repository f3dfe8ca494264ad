package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	reportSeason string
	reportEvents []string
	reportForce  bool
	reportAll    bool
)

func init() {
	reportCmd.Flags().StringVar(&reportSeason, "season", "", "Season year (defaults to report.season)")
	reportCmd.Flags().StringSliceVar(&reportEvents, "events", nil, "Events to include (defaults to report.events)")
	reportCmd.Flags().BoolVar(&reportForce, "force", false, "Overwrite an existing report")
	reportCmd.Flags().BoolVar(&reportAll, "all", false, "Generate a report for every roster athlete")
}

var reportCmd = &cobra.Command{
	Use:   "report [athlete name]",
	Short: "Write an HTML season report",
	Long:  `Analyzes an athlete's season, renders one progression chart per event and writes the HTML report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !reportAll && len(args) == 0 {
			return fmt.Errorf("an athlete name is required unless --all is set")
		}

		events, err := selectedEvents(reportEvents)
		if err != nil {
			return err
		}
		season := seasonOrDefault(reportSeason)
		overwrite := reportForce || cfg.Report.Overwrite

		names := []string{athleteName(args)}
		if reportAll {
			names = names[:0]
			for _, a := range svc.Roster().Athletes() {
				names = append(names, a.Name)
			}
		}

		failed := 0
		for _, name := range names {
			res, err := svc.Generate(cmd.Context(), name, season, events, overwrite)
			if err != nil {
				if !reportAll {
					return err
				}
				failed++
				log.WithError(err).WithField("athlete", name).Warn("Report failed")
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", res.Athlete.Name, res.Path)
		}

		if failed > 0 {
			log.WithFields(logrus.Fields{
				"failed": failed,
				"total":  len(names),
			}).Warn("Some reports were not written")
			return fmt.Errorf("%d of %d reports failed", failed, len(names))
		}
		return nil
	},
}
