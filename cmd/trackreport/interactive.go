package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/track-report/internal/chart"
	"github.com/yourusername/track-report/internal/models"
	"github.com/yourusername/track-report/internal/prompt"
	"github.com/yourusername/track-report/internal/report"
	"github.com/yourusername/track-report/internal/roster"
	"github.com/yourusername/track-report/internal/service"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Pick an athlete and browse events from a menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		console := prompt.NewConsole(os.Stdin, cmd.OutOrStdout())
		err := runInteractive(cmd.Context(), console)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	},
}

func runInteractive(ctx context.Context, console *prompt.Console) error {
	events, err := selectedEvents(nil)
	if err != nil {
		return err
	}
	season := cfg.Report.Season

	var (
		athlete   roster.Athlete
		summaries []service.EventSummary
	)
	for {
		name, err := console.Ask("Which athlete would you like to see results for?")
		if err != nil {
			return err
		}
		athlete, summaries, err = svc.Summaries(ctx, name, season, events)
		if errors.Is(err, roster.ErrUnknownAthlete) {
			console.Println("Sorry, check your spelling or try another athlete")
			continue
		}
		if err != nil {
			return err
		}
		break
	}

	byID := make(map[int]service.EventSummary, len(summaries))
	for _, sum := range summaries {
		byID[sum.Event.ID] = sum
	}

	menu := prompt.NewMenu(console, events)
	for {
		event, ok, err := menu.Select()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		showEvent(console, athlete, event, byID[event.ID])
	}

	if err := offerReport(ctx, console, athlete, season, events); err != nil {
		return err
	}
	console.Println("Bye")
	return nil
}

func showEvent(console *prompt.Console, athlete roster.Athlete, event models.EventCategory, sum service.EventSummary) {
	sum.Event = event
	console.Println(sum.ResultsText())
	console.Println(sum.DatedText())
	console.Println(sum.FastestText())

	path, err := svc.Chart(athlete, sum)
	switch {
	case errors.Is(err, chart.ErrNotEnoughPoints):
		console.Println(fmt.Sprintf("No graph available for %s. Didn't run this event or only ran it once.", event.Label))
	case err != nil:
		log.WithError(err).WithField("event", event.Label).Warn("Chart rendering failed")
	default:
		console.Println("Graph saved to " + path)
	}
}

func offerReport(ctx context.Context, console *prompt.Console, athlete roster.Athlete, season string, events []models.EventCategory) error {
	yes, err := console.Confirm(fmt.Sprintf("Would you like an HTML report for %s?", athlete.Name))
	if err != nil || !yes {
		return err
	}

	res, err := svc.Generate(ctx, athlete.Name, season, events, cfg.Report.Overwrite)
	if errors.Is(err, report.ErrReportExists) {
		overwrite, askErr := console.Confirm("A report already exists. Overwrite it?")
		if askErr != nil || !overwrite {
			return askErr
		}
		res, err = svc.Generate(ctx, athlete.Name, season, events, true)
	}
	if err != nil {
		return err
	}
	console.Println("Report written to " + res.Path)
	return nil
}
