/*
Package tracing provides request ids and request logging.

# Overview

Every HTTP request gets a prefixed ULID request id. The id is returned in
X-Request-ID, stored on the gin context and the request context, and attached
to the structured log line written when the request finishes. Log lines are
written by a background collector so handlers never block on the logger.

# Usage

	tracer := tracing.New(logger, 1000)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Inside a handler
	rid := tracing.RequestIDFrom(c.Request.Context())

# Headers

A caller may send its own X-Request-ID. It is kept when it is a well-formed
request id and replaced otherwise.
*/
package tracing
