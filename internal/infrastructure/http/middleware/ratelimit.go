package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/Samadhi-12/MinuteMe/errors"
	"github.com/Samadhi-12/MinuteMe/pkg/ratelimit"
)

// RateLimit throttles requests per authenticated user, falling back to the client IP
func RateLimit(limiter *ratelimit.KeyedRateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if userID, ok := c.Get(UserIDKey).(string); ok && userID != "" {
				key = "user:" + userID
			}
			if !limiter.Allow(key) {
				return errors.ErrRateLimited()
			}
			return next(c)
		}
	}
}
