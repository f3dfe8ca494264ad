package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	fetchRefresh bool
	fetchAll     bool
)

func init() {
	fetchCmd.Flags().BoolVar(&fetchRefresh, "refresh", false, "Re-download even when a cached copy exists")
	fetchCmd.Flags().BoolVar(&fetchAll, "all", false, "Refresh every roster athlete")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [athlete name]",
	Short: "Download and cache athlete documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if fetchAll {
			stats, err := svc.RefreshAll(cmd.Context(), uuid.NewString())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, stats.String())
			for name, reason := range stats.Failed {
				fmt.Fprintf(out, "  %s: %s\n", name, reason)
			}
			if stats.Failures() > 0 {
				return fmt.Errorf("%d athletes failed to refresh", stats.Failures())
			}
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("an athlete name is required unless --all is set")
		}
		name := athleteName(args)

		if fetchRefresh {
			athlete, err := svc.Refresh(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%s): refreshed\n", athlete.Name, athlete.ID)
			return nil
		}

		athlete, err := svc.Roster().Lookup(name)
		if err != nil {
			return err
		}
		data, layer, err := source.Fetch(cmd.Context(), athlete)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s): %d bytes from %s\n", athlete.Name, athlete.ID, len(data), layer)
		return nil
	},
}
