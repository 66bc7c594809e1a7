// Package window provides the desktop window registry.
//
// The registry tracks one window per application id: whether it is open,
// minimized or maximized, its stacking order, geometry and the payload handed
// to its renderer. Viewer applications (txtfile, imgfile) reuse their single
// window to show whatever content was requested last.
//
// Features:
//   - Single-instance windows keyed by a closed set of application ids
//   - Monotonic z-order counter shared by every focus event
//   - Maximize/restore with exact geometry round-trip
//   - Minimum size floor on resize
//   - Change notifications for renderers
//
// The registry is not safe for concurrent use. Its owner (the desktop)
// serializes access.
//
// Example Usage:
//
//	reg := window.NewRegistry(window.DefaultConfig(), logger)
//	reg.Open(window.Finder, nil)
//	reg.Open(window.TxtFile, &window.Payload{Name: "notes.txt", Description: []string{"a", "b"}})
//	top, ok := reg.Top()
package window
