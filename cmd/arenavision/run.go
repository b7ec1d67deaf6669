package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"arenavision/internal/config"
	"arenavision/internal/console"
	"arenavision/internal/deps"
	"arenavision/internal/instance"
	"arenavision/internal/logging"
	"arenavision/internal/resolver"
	"arenavision/internal/schedule"
	"arenavision/internal/scrape"
	"arenavision/internal/services"
	"arenavision/internal/session"
)

func runSession(cmd *cobra.Command, ctx *commandContext, flags rootFlags) error {
	signalCtx, cancel := signal.NotifyContext(commandContextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := newRunLogger(cfg, flags.debug)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		logging.String("path", ctx.configPath),
		logging.Bool("created", ctx.configCreated),
		logging.Bool("server_mode", flags.server),
	)

	ui := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
	fetcher := scrape.NewFetcher(nil, cfg.Schedule.UserAgent, cfg.RequestTimeout())
	source := schedule.NewHTTPSource(fetcher, cfg.Schedule.AgendaURL, logger)

	if flags.gui {
		logger.Error(console.GUIUnavailable)
		ui.Problem(console.GUIUnavailable)
		_, err := source.Fetch(signalCtx)
		return err
	}

	events, err := source.Fetch(signalCtx)
	if err != nil {
		return err
	}
	events = schedule.Limit(events, cfg.Schedule.MaxEvents)

	if err := checkRunDependencies(cfg, flags.server, ui, logger); err != nil {
		return err
	}

	lock, err := instance.Acquire(instance.Dir(), cfg.Settings.StreamPort)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release instance lock", logging.Error(err))
		}
	}()

	settings := session.Settings{
		Player:        cfg.Settings.VideoPlayer,
		HelperBinary:  cfg.Helper.Binary,
		ColdStart:     cfg.ColdStart(),
		StreamPort:    cfg.Settings.StreamPort,
		P2PPort:       cfg.Settings.P2PPort,
		ServerMode:    flags.server,
		MaxWaitCycles: cfg.Helper.MaxWaitCycles,
		StopGrace:     cfg.StopGrace(),
		ProbeAddress:  cfg.Helper.ProbeAddress,
	}
	res := resolver.NewHTTPResolver(fetcher, cfg.Schedule.ChannelURLPrefix, logger)
	return session.New(settings, events, res, ui, logger).Run(signalCtx)
}

func newRunLogger(cfg *config.Config, debug bool) (*slog.Logger, error) {
	level := cfg.Logging.Level
	if debug {
		level = "debug"
	}
	logger, err := logging.NewWithFile(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr"},
		Development: debug,
	}, cfg.Logging.File)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger.With(logging.String(logging.FieldSessionID, uuid.NewString())), nil
}

// checkRunDependencies refuses to start without the helper. A missing player
// is only reported.
func checkRunDependencies(cfg *config.Config, server bool, ui *console.Console, logger *slog.Logger) error {
	statuses := deps.CheckBinaries(deps.Requirements(cfg.Helper.Binary, cfg.Settings.VideoPlayer, server))
	helper, player := statuses[0], statuses[1]
	if !helper.Available {
		return services.Wrap(services.ErrExternalTool, "deps", "check helper", helper.Detail, nil)
	}
	if !player.Available && !server {
		logging.WarnWithContext(logger, "video player not found", "player_missing",
			logging.String("command", player.Command),
			logging.String(logging.FieldErrorHint, "install the player or set video-player in the config"),
			logging.String(logging.FieldImpact, "streams cannot be played locally"),
		)
		ui.Problem(fmt.Sprintf("Warning: %s; streams will fail to open.", player.Detail))
	}
	return nil
}

func commandContextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
