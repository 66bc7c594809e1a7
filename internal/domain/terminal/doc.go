// Package terminal implements the portfolio shell.
//
// An Engine owns the input line, the scrollback buffer and the command
// history. Submitted lines are trimmed, echoed behind the prompt and
// dispatched through a Table of named commands; unknown commands produce an
// error entry rather than a Go error. History is browsed with ArrowUp and
// ArrowDown exactly like a readline prompt without editing.
//
// Features:
//   - Finite command table of func(args) []string handlers
//   - Case-insensitive dispatch on the whole trimmed line
//   - Scrollback of echo, output and error entries
//   - History cursor with floor and past-the-end ceiling
//   - Auto-scroll to the bottom on every scrollback change
//
// Engines are not safe for concurrent use.
//
// Example Usage:
//
//	eng := terminal.NewEngine(terminal.DefaultConfig(), terminal.NewTable(catalog), logger)
//	eng.Submit("help")
//	eng.ArrowUp()
//	fmt.Println(eng.Input()) // "help"
package terminal
