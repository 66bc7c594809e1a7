package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns a permissive configuration for local development.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Accept",
			"Origin",
			"Cache-Control",
			"X-Requested-With",
			"X-Request-ID",
			"If-None-Match",
		},
		ExposeHeaders: []string{"X-Request-ID", "ETag"},
		MaxAge:        12 * time.Hour,
	}
}

// WithOrigins returns a copy restricted to the given origins. Credentials are
// allowed only for explicit origin lists.
func (c CORSConfig) WithOrigins(origins []string) CORSConfig {
	if len(origins) == 0 {
		return c
	}
	c.AllowOrigins = slices.Clone(origins)
	c.AllowCredentials = !slices.Contains(origins, "*")
	return c
}

// CORS creates a CORS middleware with the provided configuration.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	wildcard := slices.Contains(cfg.AllowOrigins, "*")
	conf := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials && !wildcard,
		AllowWebSockets:  true,
		MaxAge:           cfg.MaxAge,
	}
	if wildcard {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = cfg.AllowOrigins
	}
	return cors.New(conf)
}
