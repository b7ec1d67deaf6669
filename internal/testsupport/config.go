package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"arenavision/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a unique temp directory per test,
// with a zero cold-start time and file logging pointed inside it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Settings.ColdStartTime = 0
	cfgVal.Helper.StopGraceSeconds = 1
	cfgVal.Logging.File = filepath.Join(base, "logs", "arenavision.log")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithScheduleURL points agenda and channel lookups at a test server.
func WithScheduleURL(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Schedule.AgendaURL = baseURL + "/agenda"
		b.cfg.Schedule.ChannelURLPrefix = baseURL + "/av"
	}
}

// WithServerPorts overrides the helper ports.
func WithServerPorts(stream, p2p string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Settings.StreamPort = stream
		b.cfg.Settings.P2PPort = p2p
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the helper and player are
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{b.cfg.Helper.Binary, b.cfg.PlayerBinary()}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			WriteExecutable(b.t, filepath.Join(binDir, name), "exit 0")
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Logging.File))
}
