package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeSettings()
	c.normalizeHelper()
	c.normalizeSchedule()
	return c.normalizeLogging()
}

func (c *Config) normalizeSettings() {
	if value, ok := os.LookupEnv("ARENAVISION_PLAYER"); ok && strings.TrimSpace(value) != "" {
		c.Settings.VideoPlayer = value
	}
	c.Settings.VideoPlayer = strings.TrimSpace(c.Settings.VideoPlayer)
	c.Settings.StreamPort = strings.TrimSpace(c.Settings.StreamPort)
	c.Settings.P2PPort = strings.TrimSpace(c.Settings.P2PPort)
}

func (c *Config) normalizeHelper() {
	if value, ok := os.LookupEnv("ARENAVISION_HELPER"); ok && strings.TrimSpace(value) != "" {
		c.Helper.Binary = value
	}
	c.Helper.Binary = strings.TrimSpace(c.Helper.Binary)
	c.Helper.ProbeAddress = strings.TrimSpace(c.Helper.ProbeAddress)
	if c.Helper.ProbeAddress == "" {
		c.Helper.ProbeAddress = defaultProbeAddress
	}
	if c.Helper.StopGraceSeconds <= 0 {
		c.Helper.StopGraceSeconds = defaultStopGraceSeconds
	}
}

func (c *Config) normalizeSchedule() {
	c.Schedule.AgendaURL = strings.TrimSpace(c.Schedule.AgendaURL)
	if c.Schedule.AgendaURL == "" {
		c.Schedule.AgendaURL = defaultAgendaURL
	}
	c.Schedule.ChannelURLPrefix = strings.TrimSpace(c.Schedule.ChannelURLPrefix)
	if c.Schedule.ChannelURLPrefix == "" {
		c.Schedule.ChannelURLPrefix = defaultChannelURLPrefix
	}
	c.Schedule.UserAgent = strings.TrimSpace(c.Schedule.UserAgent)
	if c.Schedule.UserAgent == "" {
		c.Schedule.UserAgent = defaultUserAgent
	}
	if c.Schedule.RequestTimeout <= 0 {
		c.Schedule.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		expanded, err := expandPath(c.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
