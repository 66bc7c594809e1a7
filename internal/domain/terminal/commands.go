package terminal

import (
	"fmt"
	"strings"
)

// Handler produces the output lines of one command
type Handler func(args []string) []string

// Command is one entry in the command table
type Command struct {
	Name        string
	Description string
	Run         Handler
	// Clears truncates the scrollback instead of printing.
	Clears bool
}

// Blocks supplies the informational text printed by the content commands
type Blocks interface {
	AboutBlock() []string
	SkillsBlock() []string
	ProjectsBlock() []string
	ContactBlock() []string
}

// Table maps lower-case command names to commands
type Table struct {
	commands map[string]Command
	order    []string
}

// NewTable builds the standard command set over the given content blocks.
func NewTable(blocks Blocks) *Table {
	t := &Table{commands: make(map[string]Command)}

	t.Register(Command{
		Name:        "help",
		Description: "List available commands",
		Run:         func([]string) []string { return []string{t.Help()} },
	})
	t.Register(Command{
		Name:        "about",
		Description: "Who is behind this desktop",
		Run:         static(blocks.AboutBlock),
	})
	t.Register(Command{
		Name:        "skills",
		Description: "Languages, frameworks and tools",
		Run:         static(blocks.SkillsBlock),
	})
	t.Register(Command{
		Name:        "projects",
		Description: "Things I have built",
		Run:         static(blocks.ProjectsBlock),
	})
	t.Register(Command{
		Name:        "contact",
		Description: "How to reach me",
		Run:         static(blocks.ContactBlock),
	})
	t.Register(Command{
		Name:        "clear",
		Description: "Clear the terminal",
		Clears:      true,
	})

	return t
}

func static(block func() []string) Handler {
	return func([]string) []string { return block() }
}

// Register adds or replaces a command. Names are stored lower-case.
func (t *Table) Register(cmd Command) {
	cmd.Name = strings.ToLower(cmd.Name)
	if _, exists := t.commands[cmd.Name]; !exists {
		t.order = append(t.order, cmd.Name)
	}
	t.commands[cmd.Name] = cmd
}

// Lookup finds a command by lower-case name.
func (t *Table) Lookup(name string) (Command, bool) {
	cmd, ok := t.commands[name]
	return cmd, ok
}

// Names returns command names in registration order.
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

// Help renders the command listing as a single multi-line block.
func (t *Table) Help() string {
	width := 0
	for _, name := range t.order {
		width = max(width, len(name))
	}

	var b strings.Builder
	b.WriteString("Available commands:")
	for _, name := range t.order {
		fmt.Fprintf(&b, "\n  %-*s  %s", width, name, t.commands[name].Description)
	}
	return b.String()
}
