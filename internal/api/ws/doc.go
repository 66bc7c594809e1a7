// Package ws streams a desktop over a WebSocket.
//
// Each connection drives one desktop from the hub. Client input is applied
// as it arrives; pointer moves are coalesced and committed once per frame,
// and a fresh view is pushed after any frame in which the desktop changed.
//
// Features:
//   - Latest-wins pointer coalescing at the frame interval
//   - Views pushed only when the desktop version moves
//   - Ping keepalive and idle desktop detection
//   - Graceful shutdown of all open streams
//
// Message Types (Client → Server):
//   - pointer_down, pointer_move, pointer_up: {app, target, x, y}
//   - key: {key: Enter|ArrowUp|ArrowDown, value}
//   - input: {value}
//   - scroll: {lines}
//   - viewport: {width, height}
//   - ping
//
// Message Types (Server → Client):
//   - view: rendered desktop
//   - pong: reply to ping
//   - error: rejected message
//
// Example Usage:
//
//	handler := ws.NewHandler(hub, ws.DefaultConfig(), metrics, logger)
//	router.GET("/desktops/:id/stream", handler.HandleConnection)
package ws
