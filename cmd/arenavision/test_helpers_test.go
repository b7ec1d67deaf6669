package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"arenavision/internal/config"
	"arenavision/internal/testsupport"
)

const agendaPage = `<html><body><table>
<tr><th>DAY</th><th>TIME</th><th>SPORT</th><th>COMPETITION</th><th>EVENT</th><th>LIVE</th></tr>
<tr><td>19/10/2026</td><td>20:45 CEST</td><td>SOCCER</td><td>LA LIGA</td><td>REAL MADRID - BARCELONA</td><td>S1 [ENG]</td></tr>
<tr><td>20/10/2026</td><td>02:00 CEST</td><td>BASKETBALL</td><td>NBA</td><td>LAKERS - CELTICS</td><td>S2 [SPA]</td></tr>
</table></body></html>`

const channelPage = `<html><body><div class="auto-style2">
<a href="/">home</a><a href="acestream://x">ace</a><a href="sop://broker.sopcast.com:3912/265123">sop</a>
</div></body></html>`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	helperArgs string
	playerArgs string
	agenda     *httptest.Server
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/agenda", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(agendaPage))
	})
	mux.HandleFunc("/avS1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(channelPage))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("ARENAVISION_PLAYER", "")
	t.Setenv("ARENAVISION_HELPER", "")

	cfg := testsupport.NewConfig(t,
		testsupport.WithScheduleURL(srv.URL),
		testsupport.WithServerPorts("13908", "18908"),
	)
	base := testsupport.BaseDir(cfg)
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(base, "run"))

	env := &cliTestEnv{
		cfg:        cfg,
		configPath: filepath.Join(base, "config.toml"),
		baseDir:    base,
		helperArgs: filepath.Join(base, "helper.args"),
		playerArgs: filepath.Join(base, "player.args"),
		agenda:     srv,
	}
	cfg.Helper.Binary = testsupport.WriteExecutable(t, filepath.Join(base, "bin", "sp-sc-auth"),
		`echo "$@" > "`+env.helperArgs+`"`+"\nexec sleep 30")
	// The player waits for the helper to record its arguments before exiting.
	cfg.Settings.VideoPlayer = testsupport.WriteExecutable(t, filepath.Join(base, "bin", "mpv"),
		`echo "$@" > "`+env.playerArgs+`"`+"\n"+
			`i=0; while [ ! -s "`+env.helperArgs+`" ] && [ $i -lt 100 ]; do sleep 0.05; i=$((i+1)); done`+"\nexit 0")
	env.writeConfig(t)
	return env
}

func (e *cliTestEnv) writeConfig(t *testing.T) {
	t.Helper()
	writeTestConfig(t, e.configPath, e.cfg)
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath, input string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func readTrimmed(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.TrimSpace(string(data))
}
