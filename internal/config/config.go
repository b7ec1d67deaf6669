package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Settings holds the player and port values of the [settings] section.
type Settings struct {
	VideoPlayer   string `toml:"video-player"`
	ColdStartTime int    `toml:"cold-start-time"`
	StreamPort    string `toml:"sopcast-stream-port"`
	P2PPort       string `toml:"sopcast-p2p-port"`
}

// Helper contains the streaming helper invocation and supervision knobs.
type Helper struct {
	Binary           string `toml:"binary"`
	MaxWaitCycles    int    `toml:"max-wait-cycles"`
	ProbeAddress     string `toml:"probe-address"`
	StopGraceSeconds int    `toml:"stop-grace-seconds"`
}

// Schedule contains the remote agenda and channel page locations.
type Schedule struct {
	AgendaURL        string `toml:"agenda-url"`
	ChannelURLPrefix string `toml:"channel-url-prefix"`
	UserAgent        string `toml:"user-agent"`
	MaxEvents        int    `toml:"max-events"`
	RequestTimeout   int    `toml:"request-timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for the launcher.
//
// Configuration sections:
//   - Settings: player command, cold-start time and helper ports
//   - Helper: helper binary, wait-cycle bound, route probe, stop grace
//   - Schedule: agenda/channel URLs, user agent, event cap, HTTP timeout
//   - Logging: log level, format and optional file
type Config struct {
	Settings Settings `toml:"settings"`
	Helper   Helper   `toml:"helper"`
	Schedule Schedule `toml:"schedule"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// LegacyConfigPath returns the INI file left by the previous launcher and
// whether it exists. Its contents are never read.
func LegacyConfigPath() (string, bool) {
	path, err := expandPath(legacyConfigPath)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return path, false
	}
	return path, true
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults are returned and exists is false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// LoadOrCreate behaves like Load but writes the sample configuration first
// when no file exists at the resolved location. created reports whether a
// file was written.
func LoadOrCreate(path string) (cfg *Config, resolved string, created bool, err error) {
	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if !exists {
		if err := CreateSample(resolved); err != nil {
			return nil, "", false, err
		}
		created = true
	}
	cfg, resolved, _, err = Load(resolved)
	if err != nil {
		return nil, "", false, err
	}
	return cfg, resolved, created, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// ColdStart returns the configured cold-start wait.
func (c *Config) ColdStart() time.Duration {
	return time.Duration(c.Settings.ColdStartTime) * time.Second
}

// StopGrace returns how long a terminated helper may take to exit before it is killed.
func (c *Config) StopGrace() time.Duration {
	return time.Duration(c.Helper.StopGraceSeconds) * time.Second
}

// RequestTimeout returns the HTTP timeout used for schedule and channel pages.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Schedule.RequestTimeout) * time.Second
}

// PlayerBinary returns the executable portion of the player command.
func (c *Config) PlayerBinary() string {
	fields := strings.Fields(c.Settings.VideoPlayer)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
