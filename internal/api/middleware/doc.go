// Package middleware provides HTTP middleware for the desktop API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting with idle eviction
//   - BodyLimit: Request body size cap
//
// Example Usage:
//
//	limiter := middleware.NewLimiter(middleware.DefaultRateLimitConfig())
//	go limiter.RunEviction(ctx, time.Minute)
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(limiter.Middleware())
//	router.Use(middleware.BodyLimit(64 << 10))
package middleware
