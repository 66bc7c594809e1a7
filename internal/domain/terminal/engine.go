package terminal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Kind classifies a scrollback entry
type Kind string

const (
	KindEcho   Kind = "echo"
	KindOutput Kind = "output"
	KindError  Kind = "error"
)

// Entry is one scrollback line
type Entry struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Status is the outcome of a submission
type Status string

const (
	StatusEmpty    Status = "empty"
	StatusOK       Status = "ok"
	StatusNotFound Status = "not_found"
)

// Result describes what Submit did
type Result struct {
	Input   string `json:"input"`
	Command string `json:"command,omitempty"`
	Status  Status `json:"status"`
}

const (
	DefaultPrompt         = "guest@portfolio:~$ "
	DefaultMaxInputLength = 1024

	welcomeLine = "Welcome to the Portfolio Terminal"
	hintLine    = "Type 'help' to see available commands"
)

// Config holds engine settings
type Config struct {
	Prompt         string
	Welcome        bool
	MaxInputLength int
}

// DefaultConfig returns the stock prompt with the welcome banner.
func DefaultConfig() Config {
	return Config{
		Prompt:         DefaultPrompt,
		Welcome:        true,
		MaxInputLength: DefaultMaxInputLength,
	}
}

// Engine is the shell state machine
type Engine struct {
	cfg    Config
	table  *Table
	logger *zap.Logger

	input      string
	scrollback []Entry
	history    []string
	cursor     int
	// scroll is the distance from the bottom in entries; 0 means pinned.
	scroll int
}

// NewEngine creates an engine. The table gains a history command bound to
// this engine.
func NewEngine(cfg Config, table *Table, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.MaxInputLength <= 0 {
		cfg.MaxInputLength = DefaultMaxInputLength
	}

	e := &Engine{cfg: cfg, table: table, logger: logger}
	table.Register(Command{
		Name:        "history",
		Description: "Show previously entered commands",
		Run:         e.historyLines,
	})

	if cfg.Welcome {
		e.append(Entry{Kind: KindOutput, Text: welcomeLine}, Entry{Kind: KindOutput, Text: hintLine})
	}
	return e
}

// Prompt returns the prefix shown before input.
func (e *Engine) Prompt() string { return e.cfg.Prompt }

// Input returns the current input line.
func (e *Engine) Input() string { return e.input }

// SetInput replaces the input line, truncated to the maximum length.
func (e *Engine) SetInput(s string) {
	e.input = e.truncate(s)
}

// Scrollback returns a copy of the buffer.
func (e *Engine) Scrollback() []Entry {
	return append([]Entry(nil), e.scrollback...)
}

// History returns a copy of the submitted commands.
func (e *Engine) History() []string {
	return append([]string(nil), e.history...)
}

// Cursor returns the history cursor. len(History()) means not browsing.
func (e *Engine) Cursor() int { return e.cursor }

// ScrollOffset returns the view's distance from the bottom.
func (e *Engine) ScrollOffset() int { return e.scroll }

// Submit runs one line. Empty input only resets the prompt.
func (e *Engine) Submit(raw string) Result {
	text := strings.TrimSpace(e.truncate(raw))
	if text == "" {
		e.input = ""
		return Result{Status: StatusEmpty}
	}

	e.append(Entry{Kind: KindEcho, Text: e.cfg.Prompt + text})

	name := strings.ToLower(text)
	res := Result{Input: text, Command: name, Status: StatusOK}

	cmd, ok := e.table.Lookup(name)
	switch {
	case !ok:
		res.Command = ""
		res.Status = StatusNotFound
		e.append(Entry{Kind: KindError, Text: fmt.Sprintf("%s: command not found", text)})
	case cmd.Clears:
		e.scrollback = e.scrollback[:0]
		e.scroll = 0
	default:
		lines := cmd.Run(nil)
		entries := make([]Entry, len(lines))
		for i, l := range lines {
			entries[i] = Entry{Kind: KindOutput, Text: l}
		}
		e.append(entries...)
	}

	e.history = append(e.history, text)
	e.cursor = len(e.history)
	e.input = ""

	e.logger.Debug("terminal command",
		zap.String("command", name),
		zap.String("status", string(res.Status)),
	)
	return res
}

// ArrowUp steps back through history.
func (e *Engine) ArrowUp() {
	if len(e.history) == 0 || e.cursor == 0 {
		return
	}
	e.cursor--
	e.input = e.history[e.cursor]
}

// ArrowDown steps forward; stepping past the newest entry empties the input.
func (e *Engine) ArrowDown() {
	if e.cursor < len(e.history) {
		e.cursor++
	}
	if e.cursor == len(e.history) {
		e.input = ""
		return
	}
	e.input = e.history[e.cursor]
}

// ScrollBy moves the view; positive lines scroll up into older output.
func (e *Engine) ScrollBy(lines int) {
	e.scroll = max(0, min(e.scroll+lines, max(0, len(e.scrollback)-1)))
}

func (e *Engine) append(entries ...Entry) {
	e.scrollback = append(e.scrollback, entries...)
	e.scroll = 0
}

func (e *Engine) truncate(s string) string {
	if len(s) <= e.cfg.MaxInputLength {
		return s
	}
	r := []rune(s)
	if len(r) <= e.cfg.MaxInputLength {
		return s
	}
	return string(r[:e.cfg.MaxInputLength])
}

func (e *Engine) historyLines([]string) []string {
	if len(e.history) == 0 {
		return []string{"No commands in history."}
	}
	lines := make([]string, len(e.history))
	for i, h := range e.history {
		lines[i] = fmt.Sprintf("%4d  %s", i+1, h)
	}
	return lines
}
