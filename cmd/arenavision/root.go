package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arenavision/internal/config"
)

type rootFlags struct {
	gui    bool
	debug  bool
	server bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags rootFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "arenavision",
		Short:         "Pick a live sports event and stream it through sp-sc-auth",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			if ctx.configCreated {
				if legacy, ok := config.LegacyConfigPath(); ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "Settings in %s are not read; copy them into %s.\n", legacy, ctx.configPath)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, ctx, flags)
		},
	}

	rootCmd.Flags().BoolVar(&flags.gui, "gui", false, "Run with the graphical interface (not implemented yet)")
	rootCmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&flags.server, "server", false, "Server mode: publish the stream on the network instead of starting a player")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newAgendaCommand(ctx))

	return rootCmd
}
