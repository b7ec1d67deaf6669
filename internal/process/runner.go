package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"arenavision/internal/logging"
	"arenavision/internal/services"
)

const playerQuietFlag = "--quiet"

// Runner launches real subprocesses.
type Runner struct {
	helperBinary string
	stopGrace    time.Duration
	logger       *slog.Logger
}

// NewRunner constructs a Runner for the given helper binary. stopGrace bounds
// how long a terminated helper may take before it is killed.
func NewRunner(helperBinary string, stopGrace time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		helperBinary: strings.TrimSpace(helperBinary),
		stopGrace:    stopGrace,
		logger:       logging.NewComponentLogger(logger, "process"),
	}
}

// StartHelper spawns the helper as `<binary> <locator> <p2pPort> <streamPort>`
// in its own process group. Stdout is discarded; stderr lines are logged at
// debug level.
func (r *Runner) StartHelper(_ context.Context, locator, p2pPort, streamPort string) (Handle, error) {
	if r.helperBinary == "" {
		return nil, services.Wrap(services.ErrExternalTool, "process", "start helper", "helper binary not configured", nil)
	}
	cmd := exec.Command(r.helperBinary, locator, p2pPort, streamPort) //nolint:gosec
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stderr = &lineLogger{logger: r.logger.With(logging.String("stream", "helper_stderr"))}
	cmd.WaitDelay = r.stopGrace

	r.logger.Debug("starting helper",
		logging.String("binary", r.helperBinary),
		logging.String("locator", locator),
		logging.String("p2p_port", p2pPort),
		logging.String("stream_port", streamPort),
	)
	if err := cmd.Start(); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "process", "start helper", r.helperBinary, err)
	}
	proc := watch(cmd, r.stopGrace)
	r.logger.Info("helper started", logging.Int("pid", proc.PID()))
	return proc, nil
}

// RunPlayer runs `<command...> --quiet <streamURL>` with output discarded and
// waits for it to exit.
func (r *Runner) RunPlayer(ctx context.Context, command, streamURL string) (int, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return -1, services.Wrap(services.ErrExternalTool, "process", "start player", "player command not configured", nil)
	}
	args := append(append([]string{}, fields[1:]...), playerQuietFlag, streamURL)
	cmd := exec.CommandContext(ctx, fields[0], args...) //nolint:gosec

	r.logger.Info("running player", logging.String("player", fields[0]), logging.String("url", streamURL))
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return exitErr.ExitCode(), ctxErr
		}
		return exitErr.ExitCode(), nil
	}
	return -1, services.Wrap(services.ErrExternalTool, "process", "start player", fields[0], err)
}

type helperProcess struct {
	cmd     *exec.Cmd
	started time.Time
	grace   time.Duration
	done    chan struct{}

	mu       sync.Mutex
	exitCode int
}

func watch(cmd *exec.Cmd, grace time.Duration) *helperProcess {
	p := &helperProcess{
		cmd:     cmd,
		started: time.Now(),
		grace:   grace,
		done:    make(chan struct{}),
	}
	go func() {
		_ = cmd.Wait()
		code := -1
		if cmd.ProcessState != nil {
			code = cmd.ProcessState.ExitCode()
		}
		p.mu.Lock()
		p.exitCode = code
		p.mu.Unlock()
		close(p.done)
	}()
	return p
}

func (p *helperProcess) PID() int {
	return p.cmd.Process.Pid
}

func (p *helperProcess) StartedAt() time.Time {
	return p.started
}

func (p *helperProcess) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *helperProcess) ExitCode() (int, bool) {
	select {
	case <-p.done:
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.exitCode, true
	default:
		return 0, false
	}
}

func (p *helperProcess) Terminate() error {
	if !p.Alive() {
		return nil
	}
	if err := p.signalGroup(unix.SIGTERM); err != nil {
		return err
	}
	grace := p.grace
	if grace <= 0 {
		grace = time.Second
	}
	select {
	case <-p.done:
		return nil
	case <-time.After(grace):
	}
	if err := p.signalGroup(unix.SIGKILL); err != nil {
		return err
	}
	<-p.done
	return nil
}

func (p *helperProcess) signalGroup(sig unix.Signal) error {
	pid := p.PID()
	err := unix.Kill(-pid, sig)
	if err == nil || errors.Is(err, unix.ESRCH) {
		return nil
	}
	if err := p.cmd.Process.Signal(sig); err != nil && !errors.Is(err, syscall.ESRCH) && p.Alive() {
		return fmt.Errorf("signal helper %d: %w", pid, err)
	}
	return nil
}

// lineLogger forwards complete lines written to it as debug records.
type lineLogger struct {
	logger *slog.Logger
	mu     sync.Mutex
	buf    bytes.Buffer
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.Write(p)
	for {
		line, err := l.buf.ReadString('\n')
		if err != nil {
			// Keep the partial line for the next write.
			l.buf.Reset()
			l.buf.WriteString(line)
			break
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			l.logger.Debug(trimmed)
		}
	}
	return len(p), nil
}
