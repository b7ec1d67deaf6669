package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"arenavision/internal/logging"
	"arenavision/internal/netaddr"
	"arenavision/internal/process"
	"arenavision/internal/resolver"
	"arenavision/internal/schedule"
	"arenavision/internal/services"
)

// Presenter is the interactive surface the controller drives.
type Presenter interface {
	ShowEvents(events []schedule.Event)
	ShowChannels(event schedule.Event, options []schedule.Channel)
	Prompt(ctx context.Context, label string) (string, error)
	Acknowledge(ctx context.Context, label string) error
	Progress()
	EndProgress()
	Info(msg string)
	Notice(msg string)
	Problem(msg string)
}

// AddressDiscoverer reports the address remote players should connect to.
type AddressDiscoverer interface {
	LocalAddress() string
}

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Settings is the immutable configuration of one run.
type Settings struct {
	Player        string
	HelperBinary  string
	ColdStart     time.Duration
	StreamPort    string
	P2PPort       string
	ServerMode    bool
	MaxWaitCycles int
	StopGrace     time.Duration
	ProbeAddress  string
}

const (
	quitToken = "q"
	backToken = "b"

	// Helper exit status for a stream that failed to play.
	helperStreamFailure = 152
)

var (
	errQuit = errors.New("quit requested")
	errBack = errors.New("back to event list")
)

// Controller runs the select-event, select-channel, stream loop.
type Controller struct {
	settings Settings
	events   []schedule.Event
	resolver resolver.Resolver
	ui       Presenter
	launcher process.Launcher
	sleep    Sleeper
	addrs    AddressDiscoverer
	logger   *slog.Logger
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLauncher replaces the subprocess launcher.
func WithLauncher(l process.Launcher) Option {
	return func(c *Controller) {
		if l != nil {
			c.launcher = l
		}
	}
}

// WithSleeper replaces the cold-start tick source.
func WithSleeper(s Sleeper) Option {
	return func(c *Controller) {
		if s != nil {
			c.sleep = s
		}
	}
}

// WithAddressDiscoverer replaces server-mode address discovery.
func WithAddressDiscoverer(d AddressDiscoverer) Option {
	return func(c *Controller) {
		if d != nil {
			c.addrs = d
		}
	}
}

// New constructs a Controller over an already fetched event list.
func New(settings Settings, events []schedule.Event, res resolver.Resolver, ui Presenter, logger *slog.Logger, opts ...Option) *Controller {
	if settings.MaxWaitCycles <= 0 {
		settings.MaxWaitCycles = 4
	}
	logger = logging.NewComponentLogger(logger, "session")
	c := &Controller{
		settings: settings,
		events:   events,
		resolver: res,
		ui:       ui,
		launcher: process.NewRunner(settings.HelperBinary, settings.StopGrace, logger),
		sleep:    sleepContext,
		addrs:    netaddr.Default(settings.ProbeAddress),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run drives the interactive loop. It returns nil when the user quits or
// input ends, and an error only for failures that must end the run.
func (c *Controller) Run(ctx context.Context) error {
	if len(c.events) == 0 {
		return services.Wrap(services.ErrFetch, "session", "run", "no events available", nil)
	}
	for {
		idx, err := c.selectEvent(ctx)
		if err == nil {
			err = c.channelMenu(ctx, c.events[idx])
		}
		switch {
		case errors.Is(err, errBack):
			continue
		case errors.Is(err, errQuit):
			c.ui.Info("Bye bye.")
			return nil
		case err != nil:
			return err
		}
	}
}

func (c *Controller) selectEvent(ctx context.Context) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		c.ui.ShowEvents(c.events)
		label := fmt.Sprintf("Choose number [0-%d] or [q] to quit: ", len(c.events)-1)
		idx, err := c.choose(ctx, label, len(c.events), false)
		if errors.Is(err, services.ErrInput) {
			continue
		}
		if err != nil {
			return -1, err
		}
		c.logger.Debug("event selected", logging.Int("index", idx), logging.String("event", c.events[idx].String()))
		return idx, nil
	}
}

func (c *Controller) channelMenu(ctx context.Context, event schedule.Event) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Recomputed per render so labels always follow the current event.
		options := event.ChannelOptions()
		if len(options) == 0 {
			c.ui.Problem("No channels listed for this event.")
			return errBack
		}
		c.ui.ShowChannels(event, options)
		label := fmt.Sprintf("Choose channel [0-%d], [b] back or [q] to quit: ", len(options)-1)
		idx, err := c.choose(ctx, label, len(options), true)
		if errors.Is(err, services.ErrInput) {
			continue
		}
		if err != nil {
			return err
		}
		c.logger.Debug("channel selected",
			logging.String("channel", options[idx].Token),
			logging.String("language", options[idx].Language),
		)
		if err := c.stream(ctx, options[idx]); err != nil {
			return err
		}
	}
}

// choose prompts once. Invalid input is reported to the user and returned
// as an ErrInput so the caller re-prompts.
func (c *Controller) choose(ctx context.Context, label string, count int, allowBack bool) (int, error) {
	line, err := c.ui.Prompt(ctx, label)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return -1, errQuit
		}
		return -1, err
	}
	idx, err := parseChoice(line, count, allowBack)
	if errors.Is(err, services.ErrInput) {
		c.logger.Debug("invalid choice", logging.Error(err))
		c.ui.Problem("Wrong input, try again.")
	}
	return idx, err
}

func parseChoice(line string, count int, allowBack bool) (int, error) {
	choice := strings.ToLower(strings.TrimSpace(line))
	switch {
	case choice == quitToken:
		return -1, errQuit
	case allowBack && choice == backToken:
		return -1, errBack
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 0 || idx >= count {
		return -1, services.Wrap(services.ErrInput, "session", "choice", fmt.Sprintf("%q is not between 0 and %d", line, count-1), nil)
	}
	return idx, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
