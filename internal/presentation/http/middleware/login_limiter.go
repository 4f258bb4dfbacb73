package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	log "github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// LoginRateLimit throttles credential endpoints per client IP. formatted uses the
// limiter notation, e.g. "10-M" for ten attempts a minute.
func LoginRateLimit(formatted string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		log.Fatalf("invalid login rate %q: %v", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)
	limiterMiddleware := stdlib.NewMiddleware(instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.WithError(err).Warn("login limiter unavailable, request let through")
		}),
	)

	return func(c *gin.Context) {
		served := false
		limiterMiddleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			served = true
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if served {
			return
		}
		// the limit headers are only set when the store answered
		if c.Writer.Header().Get("X-RateLimit-Limit") == "" {
			c.Next()
			return
		}
		response.Error(c, apperror.ErrRateLimited)
		c.Abort()
	}
}
