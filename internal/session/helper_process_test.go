package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"arenavision/internal/logging"
	"arenavision/internal/process"
	"arenavision/internal/testsupport"
)

func TestHelperTrappingTermClosesCleanly(t *testing.T) {
	dir := t.TempDir()
	helper := testsupport.WriteExecutable(t, filepath.Join(dir, "sp-sc-auth"),
		`trap 'exit 143' TERM; while :; do sleep 0.05; done`)
	player := testsupport.WriteExecutable(t, filepath.Join(dir, "player"), `sleep 0.2; exit 0`)

	h := newHarness("0", "0", "q")
	h.settings.Player = player
	h.settings.HelperBinary = helper
	h.settings.ColdStart = 0
	h.settings.StopGrace = 2 * time.Second

	runner := process.NewRunner(helper, h.settings.StopGrace, logging.NewNop())
	c := New(h.settings, h.events, h.resolver, h.ui, logging.NewNop(),
		WithLauncher(runner),
		WithSleeper(h.sleeper.sleep),
		WithAddressDiscoverer(staticAddress("192.168.1.20")),
	)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.ui.problems) != 0 {
		t.Fatalf("expected no problems, got %s", describe(h.ui.problems))
	}
	if !contains(h.ui.infos, "Stream closed cleanly.") {
		t.Fatalf("expected clean closure, got %s", describe(h.ui.infos))
	}
}
