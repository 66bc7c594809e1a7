// Package server assembles the HTTP stack.
//
// It loads the content catalog, builds the desktop hub with metrics as its
// observer, and mounts REST routes, the desktop stream and /metrics behind
// recovery, tracing, metrics, CORS, rate limiting and body limits. Responses
// are gzip-compressed except WebSocket upgrades.
package server
