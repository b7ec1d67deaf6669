package session

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"arenavision/internal/process"
	"arenavision/internal/schedule"
)

type fakeHandle struct {
	pid          int
	alive        bool
	code         int
	terminations int
	// termCode is the exit status reported after Terminate; zero means
	// killed by SIGTERM.
	termCode     int
}

func (h *fakeHandle) PID() int             { return h.pid }
func (h *fakeHandle) StartedAt() time.Time { return time.Time{} }
func (h *fakeHandle) Alive() bool          { return h.alive }

func (h *fakeHandle) ExitCode() (int, bool) {
	if h.alive {
		return 0, false
	}
	return h.code, true
}

func (h *fakeHandle) Terminate() error {
	h.terminations++
	if h.alive {
		h.alive = false
		h.code = -15
		if h.termCode != 0 {
			h.code = h.termCode
		}
	}
	return nil
}

func (h *fakeHandle) exit(code int) {
	h.alive = false
	h.code = code
}

type startCall struct {
	locator    string
	p2pPort    string
	streamPort string
}

type playerCall struct {
	command string
	url     string
}

type fakeLauncher struct {
	// newHandle builds the handle for the nth helper start (zero based).
	newHandle   func(n int) *fakeHandle
	startErr    error
	playerCodes []int
	playerErr   error
	onPlay      func(n int)

	handles    []*fakeHandle
	starts     []startCall
	players    []playerCall
	overlapped bool
}

func (l *fakeLauncher) StartHelper(_ context.Context, locator, p2pPort, streamPort string) (process.Handle, error) {
	if l.startErr != nil {
		return nil, l.startErr
	}
	for _, h := range l.handles {
		if h.alive {
			l.overlapped = true
		}
	}
	l.starts = append(l.starts, startCall{locator: locator, p2pPort: p2pPort, streamPort: streamPort})
	h := &fakeHandle{pid: 1000 + len(l.handles), alive: true}
	if l.newHandle != nil {
		h = l.newHandle(len(l.handles))
	}
	l.handles = append(l.handles, h)
	return h, nil
}

func (l *fakeLauncher) RunPlayer(_ context.Context, command, url string) (int, error) {
	n := len(l.players)
	l.players = append(l.players, playerCall{command: command, url: url})
	if l.onPlay != nil {
		l.onPlay(n)
	}
	if l.playerErr != nil {
		return -1, l.playerErr
	}
	if n < len(l.playerCodes) {
		return l.playerCodes[n], nil
	}
	return 1, nil
}

type fakeResolver struct {
	err    error
	tokens []string
}

func (r *fakeResolver) Resolve(_ context.Context, token string) (string, error) {
	r.tokens = append(r.tokens, token)
	if r.err != nil {
		return "", r.err
	}
	return "sop://broker.sopcast.com:3912/" + strings.ToLower(token), nil
}

type fakeUI struct {
	inputs []string

	prompts      []string
	eventShows   int
	channelShows [][]schedule.Channel
	progress     int
	endProgress  int
	acks         int
	onPrompt     func()
	// onAck runs before Acknowledge returns; with waitAck set, Acknowledge
	// blocks until ctx is done.
	onAck        func()
	waitAck      bool
	infos        []string
	notices      []string
	problems     []string
}

func (u *fakeUI) ShowEvents([]schedule.Event) { u.eventShows++ }

func (u *fakeUI) ShowChannels(_ schedule.Event, options []schedule.Channel) {
	u.channelShows = append(u.channelShows, options)
}

func (u *fakeUI) Prompt(ctx context.Context, label string) (string, error) {
	u.prompts = append(u.prompts, label)
	if u.onPrompt != nil {
		u.onPrompt()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(u.inputs) == 0 {
		return "", io.EOF
	}
	line := u.inputs[0]
	u.inputs = u.inputs[1:]
	return line, nil
}

func (u *fakeUI) Acknowledge(ctx context.Context, _ string) error {
	u.acks++
	if u.onAck != nil {
		u.onAck()
	}
	if u.waitAck {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (u *fakeUI) Progress()          { u.progress++ }
func (u *fakeUI) EndProgress()       { u.endProgress++ }
func (u *fakeUI) Info(msg string)    { u.infos = append(u.infos, msg) }
func (u *fakeUI) Notice(msg string)  { u.notices = append(u.notices, msg) }
func (u *fakeUI) Problem(msg string) { u.problems = append(u.problems, msg) }

type fakeSleeper struct {
	ticks  int
	err    error
	onTick func(n int)
}

func (s *fakeSleeper) sleep(ctx context.Context, _ time.Duration) error {
	s.ticks++
	if s.onTick != nil {
		s.onTick(s.ticks)
	}
	if s.err != nil {
		return s.err
	}
	return ctx.Err()
}

type staticAddress string

func (a staticAddress) LocalAddress() string { return string(a) }

func contains(lines []string, want string) bool {
	for _, line := range lines {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}

func describe(lines []string) string {
	return fmt.Sprintf("%q", lines)
}
