/*
Package monitoring provides Prometheus metrics for the desktop server.

# Overview

Metrics live on a private registry per Metrics value. The collector also
implements the desktop hub observer, so window operations, terminal commands
and hub occupancy are counted without the domain importing Prometheus.

# Features

- HTTP request metrics (latency, throughput, response size)
- Window operations by kind
- Terminal submissions by outcome
- Live desktops and WebSocket connections
- JSON snapshot for the health endpoint

# Usage

	metrics := monitoring.NewMetrics()
	hub := desktop.NewHub(cfg, catalog, metrics, logger)

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
