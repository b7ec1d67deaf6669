package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"arenavision/internal/logging"
	"arenavision/internal/netaddr"
	"arenavision/internal/process"
	"arenavision/internal/schedule"
	"arenavision/internal/services"
)

// supervisedHelper remembers whether the controller asked the helper to stop,
// so a signal exit status is not reported as a helper failure.
type supervisedHelper struct {
	process.Handle
	stopRequested bool
}

// stream plays one channel. A nil return sends the user back to the channel
// menu; any error ends the session.
func (c *Controller) stream(ctx context.Context, ch schedule.Channel) error {
	locator, err := c.resolver.Resolve(ctx, ch.Token)
	if err != nil {
		return err
	}
	c.logger.Debug("stream locator resolved", logging.String("channel", ch.Token), logging.String("locator", locator))

	c.ui.Info("Opening stream.")
	handle, err := c.launcher.StartHelper(ctx, locator, c.settings.P2PPort, c.settings.StreamPort)
	if err != nil {
		return err
	}
	helper := &supervisedHelper{Handle: handle}
	defer c.terminate(helper)

	if err := c.supervise(ctx, helper); err != nil {
		return err
	}
	c.reportExit(helper)
	return nil
}

func (c *Controller) supervise(ctx context.Context, helper *supervisedHelper) error {
	cycles := 0
	for helper.Alive() {
		cycles++
		c.logger.Info("waiting for stream cache",
			logging.Int("cycle", cycles),
			logging.String("cold_start", c.settings.ColdStart.String()),
		)
		if err := c.coldStart(ctx, helper); err != nil {
			return err
		}

		if helper.Alive() {
			if c.settings.ServerMode {
				if err := c.serve(ctx); err != nil {
					return err
				}
				c.terminate(helper)
			} else if err := c.play(ctx, helper); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				c.ui.Problem(fmt.Sprintf("Could not start player: %v", err))
				c.terminate(helper)
				return nil
			}
		}

		if !c.settings.ServerMode && cycles >= c.settings.MaxWaitCycles && helper.Alive() {
			logging.WarnWithContext(c.logger, "helper still running after wait cycles; stopping it", "helper_wait_exhausted",
				logging.Int("cycles", cycles),
				logging.String(logging.FieldErrorHint, "try another channel"),
				logging.String(logging.FieldImpact, "stream stopped"),
			)
			c.terminate(helper)
		}
	}
	return nil
}

// coldStart waits in one second ticks, marking progress on each, until the
// configured cold-start time passes or the helper exits.
func (c *Controller) coldStart(ctx context.Context, helper *supervisedHelper) error {
	defer c.ui.EndProgress()
	ticks := int(c.settings.ColdStart / time.Second)
	for i := 0; i < ticks && helper.Alive(); i++ {
		c.ui.Progress()
		if err := c.sleep(ctx, time.Second); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) play(ctx context.Context, helper *supervisedHelper) error {
	c.ui.Info("Opening player.")
	code, err := c.launcher.RunPlayer(ctx, c.settings.Player, process.StreamURL(c.settings.StreamPort))
	if err != nil {
		return err
	}
	if code == 0 {
		c.logger.Info("player closed, stopping helper")
		c.terminate(helper)
		return nil
	}
	c.logger.Info("player exited with error; helper left running", logging.Int("exit_code", code))
	return nil
}

// serve publishes the stream endpoint and blocks until the user presses
// enter, input ends, or ctx is done.
func (c *Controller) serve(ctx context.Context) error {
	endpoint := netaddr.Endpoint(c.addrs.LocalAddress(), c.settings.StreamPort)
	c.ui.Notice("Stream available at: " + endpoint)
	err := c.ui.Acknowledge(ctx, "Press enter to stop stream.")
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		c.logger.Warn("acknowledge failed", logging.Error(err))
		return nil
	}
}

func (c *Controller) terminate(helper *supervisedHelper) {
	if !helper.Alive() {
		return
	}
	helper.stopRequested = true
	if err := helper.Terminate(); err != nil {
		logging.ErrorWithContext(c.logger, "failed to stop helper", "helper_stop_failed",
			logging.Int("pid", helper.PID()),
			logging.Error(err),
		)
	}
}

func (c *Controller) reportExit(helper *supervisedHelper) {
	code, _ := helper.ExitCode()
	if code <= 0 || helper.stopRequested {
		c.logger.Info("helper closed",
			logging.Int("exit_code", code),
			logging.Bool("stop_requested", helper.stopRequested),
		)
		c.ui.Info("Stream closed cleanly.")
		return
	}
	err := services.Wrap(services.ErrProcess, "session", "helper", fmt.Sprintf("exited with code %d", code), nil)
	c.logger.Warn("helper failed", logging.Error(err), logging.Int("exit_code", code))
	msg := fmt.Sprintf("Helper closed with code %d. Back to channel menu.", code)
	if code == helperStreamFailure {
		msg += " The stream failed, try another channel."
	}
	c.ui.Problem(msg)
}
