package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSettings(); err != nil {
		return err
	}
	if err := c.validateHelper(); err != nil {
		return err
	}
	return c.validateSchedule()
}

func (c *Config) validateSettings() error {
	if c.Settings.VideoPlayer == "" {
		return errors.New("settings.video-player must be set")
	}
	if c.Settings.ColdStartTime < 0 {
		return fmt.Errorf("settings.cold-start-time must be zero or positive (got %d)", c.Settings.ColdStartTime)
	}
	if err := validatePort("settings.sopcast-stream-port", c.Settings.StreamPort); err != nil {
		return err
	}
	if err := validatePort("settings.sopcast-p2p-port", c.Settings.P2PPort); err != nil {
		return err
	}
	if c.Settings.StreamPort == c.Settings.P2PPort {
		return fmt.Errorf("settings.sopcast-stream-port and settings.sopcast-p2p-port must differ (both %s)", c.Settings.StreamPort)
	}
	return nil
}

func (c *Config) validateHelper() error {
	if c.Helper.Binary == "" {
		return errors.New("helper.binary must be set")
	}
	if c.Helper.MaxWaitCycles <= 0 {
		return fmt.Errorf("helper.max-wait-cycles must be positive (got %d)", c.Helper.MaxWaitCycles)
	}
	if _, _, err := net.SplitHostPort(c.Helper.ProbeAddress); err != nil {
		return fmt.Errorf("helper.probe-address %q must be host:port: %w", c.Helper.ProbeAddress, err)
	}
	return nil
}

func (c *Config) validateSchedule() error {
	for key, value := range map[string]string{
		"schedule.agenda-url":         c.Schedule.AgendaURL,
		"schedule.channel-url-prefix": c.Schedule.ChannelURLPrefix,
	} {
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%s must be an http(s) URL (got %q)", key, value)
		}
	}
	if c.Schedule.MaxEvents < 0 {
		return fmt.Errorf("schedule.max-events must be zero (no cap) or positive (got %d)", c.Schedule.MaxEvents)
	}
	return nil
}

func validatePort(key, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be numeric (got %q)", key, value)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535 (got %d)", key, port)
	}
	return nil
}
