package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlocks struct{}

func (fakeBlocks) AboutBlock() []string    { return []string{"About Me", "hello"} }
func (fakeBlocks) SkillsBlock() []string   { return []string{"Skills", "Go"} }
func (fakeBlocks) ProjectsBlock() []string { return []string{"Projects", "* webdesk"} }
func (fakeBlocks) ContactBlock() []string  { return []string{"Contact", "Email: a@b.c"} }

func newEngine() *Engine {
	return NewEngine(DefaultConfig(), NewTable(fakeBlocks{}), nil)
}

func quietEngine() *Engine {
	cfg := DefaultConfig()
	cfg.Welcome = false
	return NewEngine(cfg, NewTable(fakeBlocks{}), nil)
}

func last(e *Engine) Entry {
	sb := e.Scrollback()
	return sb[len(sb)-1]
}

func TestWelcomeBanner(t *testing.T) {
	e := newEngine()
	sb := e.Scrollback()
	require.Len(t, sb, 2)
	assert.Equal(t, "Welcome to the Portfolio Terminal", sb[0].Text)
	assert.Contains(t, sb[1].Text, "Type 'help' to see available commands")
	assert.Empty(t, e.History())

	assert.Empty(t, quietEngine().Scrollback())
}

func TestHelpCommand(t *testing.T) {
	e := newEngine()
	res := e.Submit("help")
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "help", res.Command)

	sb := e.Scrollback()
	require.GreaterOrEqual(t, len(sb), 2)
	assert.Contains(t, last(e).Text, "Available commands:")
	assert.Equal(t, KindOutput, last(e).Kind)
	assert.Equal(t, Entry{Kind: KindEcho, Text: DefaultPrompt + "help"}, sb[len(sb)-2])

	for _, name := range []string{"help", "about", "skills", "projects", "contact", "clear", "history"} {
		assert.Contains(t, last(e).Text, name)
	}
}

func TestClearKeepsHistory(t *testing.T) {
	e := newEngine()
	e.Submit("help")
	before := len(e.Scrollback())

	res := e.Submit("clear")
	assert.Equal(t, StatusOK, res.Status)
	assert.Less(t, len(e.Scrollback()), before)
	assert.Empty(t, e.Scrollback())
	assert.Equal(t, []string{"help", "clear"}, e.History())
}

func TestUnknownCommand(t *testing.T) {
	e := newEngine()
	res := e.Submit("xyz123")
	assert.Equal(t, StatusNotFound, res.Status)

	l := last(e)
	assert.Equal(t, KindError, l.Kind)
	assert.Equal(t, "xyz123: command not found", l.Text)
	assert.Equal(t, "xyz123", e.History()[len(e.History())-1])
}

func TestOriginalCaseEchoedAndStored(t *testing.T) {
	e := quietEngine()
	e.Submit("  ABOUT  ")

	sb := e.Scrollback()
	assert.Equal(t, Entry{Kind: KindEcho, Text: DefaultPrompt + "ABOUT"}, sb[0])
	assert.Equal(t, []Entry{{KindOutput, "About Me"}, {KindOutput, "hello"}}, sb[1:])
	assert.Equal(t, []string{"ABOUT"}, e.History())

	e.Submit("FooBar")
	assert.Equal(t, "FooBar: command not found", last(e).Text)
}

func TestWholeLineIsTheCommand(t *testing.T) {
	e := quietEngine()
	res := e.Submit("skills --all")
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, Entry{Kind: KindError, Text: "skills --all: command not found"}, last(e))
	assert.Equal(t, []string{"skills --all"}, e.History())

	e.Submit("help")
	e.Submit("clear everything")
	assert.NotEmpty(t, e.Scrollback(), "clear with arguments is not clear")
	assert.Equal(t, "clear everything: command not found", last(e).Text)

	e.Submit("about me")
	assert.Equal(t, Entry{Kind: KindError, Text: "about me: command not found"}, last(e))
}

func TestEmptySubmissionIgnored(t *testing.T) {
	e := newEngine()
	before := e.Scrollback()

	for _, in := range []string{"", "   ", "\t\n"} {
		e.SetInput(in)
		res, handled := e.Handle(KeyEnter{})
		assert.True(t, handled)
		assert.Equal(t, StatusEmpty, res.Status)
	}
	assert.Equal(t, before, e.Scrollback())
	assert.Empty(t, e.History())
	assert.Equal(t, "", e.Input())
}

func TestHistoryReplay(t *testing.T) {
	e := newEngine()
	for _, cmd := range []string{"help", "about", "skills"} {
		e.Submit(cmd)
	}
	assert.Equal(t, 3, e.Cursor())

	var got []string
	for range 3 {
		e.ArrowUp()
		got = append(got, e.Input())
	}
	assert.Equal(t, []string{"skills", "about", "help"}, got)

	// Floor at zero
	e.ArrowUp()
	assert.Equal(t, "help", e.Input())
	assert.Equal(t, 0, e.Cursor())

	e.ArrowDown()
	assert.Equal(t, "about", e.Input())

	e.ArrowDown()
	e.ArrowDown()
	assert.Equal(t, "", e.Input())
	assert.Equal(t, 3, e.Cursor())

	// Ceiling at len(history)
	e.ArrowDown()
	assert.Equal(t, 3, e.Cursor())
}

func TestArrowUpWithEmptyHistory(t *testing.T) {
	e := newEngine()
	e.SetInput("draft")
	e.ArrowUp()
	assert.Equal(t, "draft", e.Input())
	assert.Equal(t, 0, e.Cursor())
}

func TestSubmitResetsCursor(t *testing.T) {
	e := newEngine()
	e.Submit("help")
	e.Submit("about")
	e.ArrowUp()
	e.ArrowUp()
	e.Submit("contact")
	assert.Equal(t, 3, e.Cursor())
	assert.Equal(t, "", e.Input())

	e.ArrowUp()
	assert.Equal(t, "contact", e.Input())
}

func TestDuplicatesKept(t *testing.T) {
	e := newEngine()
	e.Submit("help")
	e.Submit("help")
	assert.Equal(t, []string{"help", "help"}, e.History())
}

func TestHistoryCommand(t *testing.T) {
	e := quietEngine()
	e.Submit("history")
	assert.Equal(t, "No commands in history.", last(e).Text)

	e.Submit("about")
	e.Submit("history")
	sb := e.Scrollback()
	assert.Equal(t, "   1  history", sb[len(sb)-2].Text)
	assert.Equal(t, "   2  about", sb[len(sb)-1].Text)
}

func TestAutoScroll(t *testing.T) {
	e := newEngine()
	for range 5 {
		e.Submit("about")
	}
	e.Handle(ScrollBy{Lines: 4})
	assert.Equal(t, 4, e.ScrollOffset())

	e.Handle(ScrollBy{Lines: 1000})
	assert.Equal(t, len(e.Scrollback())-1, e.ScrollOffset())
	e.Handle(ScrollBy{Lines: -1000})
	assert.Equal(t, 0, e.ScrollOffset())

	e.ScrollBy(3)
	e.Submit("nope")
	assert.Equal(t, 0, e.ScrollOffset())
}

func TestInputTruncated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxInputLength = 5
	e := NewEngine(cfg, NewTable(fakeBlocks{}), nil)

	e.Handle(InputChanged{Value: "héllo world"})
	assert.Equal(t, "héllo", e.Input())

	e.Submit("aboutxyz")
	assert.Equal(t, "about", e.History()[0])
}

func TestHandleEvents(t *testing.T) {
	e := quietEngine()
	e.Handle(InputChanged{Value: "projects"})
	res, ok := e.Handle(KeyEnter{})
	require.True(t, ok)
	assert.Equal(t, "projects", res.Command)
	assert.Equal(t, "* webdesk", last(e).Text)

	e.Handle(KeyArrowUp{})
	assert.Equal(t, "projects", e.Input())
	e.Handle(KeyArrowDown{})
	assert.Equal(t, "", e.Input())
}

func TestTableRegister(t *testing.T) {
	tbl := NewTable(fakeBlocks{})
	tbl.Register(Command{Name: "Echo", Description: "Print a greeting", Run: func([]string) []string {
		return []string{"Hello There"}
	}})
	e := NewEngine(Config{}, tbl, nil)

	e.Submit("ECHO")
	assert.Equal(t, Entry{Kind: KindOutput, Text: "Hello There"}, last(e))
	assert.Equal(t, []string{"help", "about", "skills", "projects", "contact", "clear", "echo", "history"}, tbl.Names())
	assert.Equal(t, DefaultPrompt, e.Prompt())
}
