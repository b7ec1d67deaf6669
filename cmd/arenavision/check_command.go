package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"arenavision/internal/config"
	"arenavision/internal/deps"
	"arenavision/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var server bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the stream helper and video player are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			statuses := deps.CheckBinaries(deps.Requirements(cfg.Helper.Binary, cfg.Settings.VideoPlayer, server))
			writeCheckReport(out, ctx.configPath, cfg, statuses, server, shouldColorize(out))

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return services.Wrap(services.ErrExternalTool, "check", "dependencies",
					fmt.Sprintf("%d required program(s) missing", len(missing)), nil)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&server, "server", false, "Check for server mode, where the player is optional")
	return cmd
}

func writeCheckReport(out io.Writer, path string, cfg *config.Config, statuses []deps.Status, server, colorize bool) {
	report := checkReport{out: out, colorize: colorize}
	report.heading("Configuration")
	report.setting("Config", path)
	report.setting("Ports", fmt.Sprintf("stream %s, p2p %s", cfg.Settings.StreamPort, cfg.Settings.P2PPort))
	report.setting("Server mode", yesNo(server))
	fmt.Fprintln(out)

	report.heading("Programs")
	for _, status := range statuses {
		report.program(status)
	}
}
