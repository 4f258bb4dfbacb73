package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymcore-api/internal/config"
)

// Headers the front desk and client portal must be able to send
var requiredRequestHeaders = []string{"Accept", "Origin", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"}

// Headers browsers may read back: export file names, replay markers and throttling state
var exposedHeaders = []string{
	"Content-Disposition",
	"Content-Length",
	"Content-Type",
	"Retry-After",
	"X-Idempotency-Replayed",
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"X-Request-ID",
}

// CORSMiddleware creates a CORS middleware with the provided configuration
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

func corsConfig(cfg *config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     withHeaders(cfg.AllowedHeaders, requiredRequestHeaders...),
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		AllowFiles:       cfg.AllowFiles,
		MaxAge:           12 * time.Hour,
	}

	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	if len(c.AllowMethods) == 0 {
		c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	}
	return c
}

// withHeaders appends every header of extra missing from list, ignoring case
func withHeaders(list []string, extra ...string) []string {
	out := append([]string{}, list...)
	for _, h := range extra {
		found := false
		for _, have := range out {
			if strings.EqualFold(have, h) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, h)
		}
	}
	return out
}
