// Package main is the entry point for the webdesk backend server.
//
// The server hosts simulated portfolio desktops: a window manager, a
// drag/resize controller and a toy terminal per desktop, exposed over REST
// with a WebSocket stream for pointer-driven interaction.
//
// Architecture:
//
//	Browser → REST  (/desktops/:id/...) → Desktop Hub → Desktop
//	        → WS    (/desktops/:id/stream) ↗
//
// Configuration:
//   - Built-in defaults
//   - Optional TOML file named by CONFIG_FILE
//   - Environment variables (12-factor)
//   - CLI flags (override everything)
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Extra catalog fragments, colored debug logs
//	LOG_DEV=true LOG_LEVEL=debug ./server -content ./content
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
