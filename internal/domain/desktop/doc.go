// Package desktop composes the window registry, pointer controllers and the
// terminal into one desktop, and keeps a hub of desktops per client.
//
// A Desktop is the single owner of its state machines and serializes every
// entry point with a mutex, so HTTP handlers and WebSocket loops can drive it
// concurrently while each mutation still runs to completion before the next
// one starts. Rendering is a pure function of a Snapshot.
//
// Components:
//   - Desktop: dock clicks, Finder and Gallery opens, window controls,
//     pointer and keyboard events
//   - Render: Snapshot to View, with payload text sanitized
//   - Hub: desktops keyed by ULID with idle eviction
//
// Example Usage:
//
//	hub := desktop.NewHub(desktop.DefaultConfig(), catalog, metrics, logger)
//	id, d, err := hub.Create()
//	d.ClickDock("terminal")
//	d.Terminal(terminal.InputChanged{Value: "help"})
//	d.Terminal(terminal.KeyEnter{})
//	view := desktop.Render(d.Snapshot())
package desktop
