package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arenavision/internal/services"
)

func TestRunStreamsChosenChannel(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, nil, env.configPath, "0\n0\nq\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "REAL MADRID - BARCELONA")
	requireContains(t, out, "Opening stream.")
	requireContains(t, out, "Opening player.")
	requireContains(t, out, "Stream closed cleanly.")
	requireContains(t, out, "Bye bye.")

	if got := readTrimmed(t, env.helperArgs); got != "sop://broker.sopcast.com:3912/265123 18908 13908" {
		t.Fatalf("unexpected helper arguments %q", got)
	}
	if got := readTrimmed(t, env.playerArgs); got != "--quiet http://localhost:13908/tv.asf" {
		t.Fatalf("unexpected player arguments %q", got)
	}
}

func TestRunServerModePublishesEndpoint(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--server"}, env.configPath, "0\n0\n\nq\n")
	if err != nil {
		t.Fatalf("run --server: %v", err)
	}
	requireContains(t, out, "Stream available at: http://")
	requireContains(t, out, ":13908/tv.asf")
	requireContains(t, out, "Press enter to stop stream.")
	if _, err := os.Stat(env.playerArgs); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected player not to run in server mode, stat err=%v", err)
	}
}

func TestRunEndsCleanlyOnEndOfInput(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, nil, env.configPath, "")
	if err != nil {
		t.Fatalf("expected clean exit on EOF, got %v", err)
	}
	requireContains(t, out, "Bye bye.")
}

func TestRunRejectsInvalidChoice(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, nil, env.configPath, "9\nq\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Wrong input, try again.")
}

func TestRunGUIFlagReportsUnavailable(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"--gui"}, env.configPath, "")
	if err != nil {
		t.Fatalf("run --gui: %v", err)
	}
	requireContains(t, out, "GUI not implemented yet.")
}

func TestRunFetchFailureIsFatal(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Schedule.AgendaURL = env.agenda.URL + "/missing"
	env.writeConfig(t)

	_, _, err := runCLI(t, nil, env.configPath, "0\n")
	if !errors.Is(err, services.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if !services.NeedsIssueReport(err) {
		t.Fatal("expected fetch failure to point at the issue tracker")
	}
}

func TestRunRequiresHelper(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Helper.Binary = filepath.Join(env.baseDir, "bin", "no-such-helper")
	env.writeConfig(t)

	_, _, err := runCLI(t, nil, env.configPath, "0\n")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestRunCreatesConfigOnFirstRun(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "fresh", "config.toml")

	_, _, _ = runCLI(t, []string{"check", "--server"}, target, "")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config created at %s: %v", target, err)
	}
}

func TestFirstRunPointsAtLegacyConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	home := filepath.Join(env.baseDir, "home")
	t.Setenv("HOME", home)
	legacy := filepath.Join(home, ".config", "arenavision_linux", "arenavision_linux.ini")
	if err := os.MkdirAll(filepath.Dir(legacy), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(legacy, []byte("[settings]\n"), 0o644); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}
	target := filepath.Join(env.baseDir, "fresh", "config.toml")

	_, stderr, _ := runCLI(t, []string{"check", "--server"}, target, "")
	requireContains(t, stderr, legacy)
	requireContains(t, stderr, target)

	_, stderr, _ = runCLI(t, []string{"check", "--server"}, target, "")
	if strings.Contains(stderr, legacy) {
		t.Fatalf("expected legacy notice only on first run:\n%s", stderr)
	}
}

func TestAgendaCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"agenda", "--limit", "1"}, env.configPath, "")
	if err != nil {
		t.Fatalf("agenda: %v", err)
	}
	requireContains(t, out, "REAL MADRID - BARCELONA")
	if strings.Contains(out, "LAKERS - CELTICS") {
		t.Fatalf("expected limit to drop the second event:\n%s", out)
	}
}
