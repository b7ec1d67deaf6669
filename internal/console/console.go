package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"arenavision/internal/schedule"
)

// GUIUnavailable is shown when the graphical front end is requested.
const GUIUnavailable = "GUI not implemented yet."

// Console renders menus and reads choices from a line-oriented terminal.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	colorize bool
	styles   styles

	readOnce sync.Once
	lines    chan readResult

	mu         sync.Mutex
	inProgress bool
}

type readResult struct {
	line string
	err  error
}

// New builds a Console. Colour is enabled only when out is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	return newConsole(in, out, shouldColorize(out))
}

func newConsole(in io.Reader, out io.Writer, colorize bool) *Console {
	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		colorize: colorize,
		styles:   newStyles(),
		lines:    make(chan readResult),
	}
}

func shouldColorize(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ShowEvents lists events with their selection index.
func (c *Console) ShowEvents(events []schedule.Event) {
	rows := make([][]string, 0, len(events))
	for i, ev := range events {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			ev.Day,
			strings.TrimSpace(ev.Time + " " + ev.Zone),
			titleCase(ev.Type),
			ev.Name,
			ev.League,
			strings.Join(ev.Channels, " "),
		})
	}
	c.heading("Agenda")
	c.println(renderTable(
		[]string{"#", "Day", "Time", "Type", "Event", "League", "Channels"},
		rows,
		[]columnAlignment{alignRight},
	))
}

// ShowChannels lists the selectable feeds of an event.
func (c *Console) ShowChannels(event schedule.Event, options []schedule.Channel) {
	rows := make([][]string, 0, len(options))
	for i, opt := range options {
		rows = append(rows, []string{fmt.Sprintf("%d", i), opt.Token, opt.Language})
	}
	c.heading(event.String())
	c.println(renderTable([]string{"#", "Channel", "Language"}, rows, []columnAlignment{alignRight}))
}

// Prompt writes label and returns the next input line without surrounding
// whitespace. End of input is reported as io.EOF; a done ctx abandons the
// read and returns ctx.Err().
func (c *Console) Prompt(ctx context.Context, label string) (string, error) {
	c.write(label)
	c.readOnce.Do(func() { go c.readLines() })
	select {
	case <-ctx.Done():
		c.write("\n")
		return "", ctx.Err()
	case res, ok := <-c.lines:
		if !ok {
			c.write("\n")
			return "", io.EOF
		}
		if res.err != nil {
			return "", fmt.Errorf("read input: %w", res.err)
		}
		return strings.TrimSpace(res.line), nil
	}
}

// Acknowledge blocks until the user presses Enter or ctx is done.
func (c *Console) Acknowledge(ctx context.Context, label string) error {
	_, err := c.Prompt(ctx, label)
	return err
}

// readLines feeds input lines to Prompt so a blocked terminal read never
// holds up cancellation. The channel is closed at end of input.
func (c *Console) readLines() {
	defer close(c.lines)
	for {
		line, err := c.in.ReadString('\n')
		if err == nil || strings.TrimSpace(line) != "" {
			c.lines <- readResult{line: line}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			c.lines <- readResult{err: err}
			return
		}
	}
}

// Progress prints a single progress mark.
func (c *Console) Progress() {
	c.mu.Lock()
	c.inProgress = true
	c.mu.Unlock()
	c.write(".")
}

// EndProgress terminates a line of progress marks.
func (c *Console) EndProgress() {
	c.mu.Lock()
	active := c.inProgress
	c.inProgress = false
	c.mu.Unlock()
	if active {
		c.write("\n")
	}
}

// Info prints a plain status line.
func (c *Console) Info(msg string) {
	c.println(msg)
}

// Notice prints a highlighted status line.
func (c *Console) Notice(msg string) {
	c.println(c.render(c.styles.notice, msg))
}

// Problem prints an error line.
func (c *Console) Problem(msg string) {
	c.println(c.render(c.styles.problem, msg))
}

func (c *Console) heading(title string) {
	c.println(c.render(c.styles.heading, title))
}

func (c *Console) println(line string) {
	c.EndProgress()
	c.write(line + "\n")
}

func (c *Console) write(s string) {
	_, _ = io.WriteString(c.out, s)
}
