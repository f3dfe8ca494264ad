package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List the tracked athletes",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tID\tCACHE KEY")
		for _, a := range svc.Roster().Athletes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.Name, a.ID, a.CompactName())
		}
		return w.Flush()
	},
}
