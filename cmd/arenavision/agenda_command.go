package main

import (
	"github.com/spf13/cobra"

	"arenavision/internal/console"
	"arenavision/internal/logging"
	"arenavision/internal/schedule"
	"arenavision/internal/scrape"
)

func newAgendaCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Print the upcoming events without starting a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fetcher := scrape.NewFetcher(nil, cfg.Schedule.UserAgent, cfg.RequestTimeout())
			source := schedule.NewHTTPSource(fetcher, cfg.Schedule.AgendaURL, logging.NewNop())
			events, err := source.Fetch(commandContextOf(cmd))
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.Schedule.MaxEvents
			}
			ui := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
			ui.ShowEvents(schedule.Limit(events, limit))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of events to list (0 lists all)")
	return cmd
}
