package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NemoTravel/results/internal/models"
	"github.com/NemoTravel/results/internal/ratelimit"
)

// RateLimit rejects requests from clients that exceed their per-IP budget.
func RateLimit(limiter *ratelimit.ClientLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:   "rate_limited",
					Message: "Too many requests, slow down",
					Code:    http.StatusTooManyRequests,
				})
			}
			return next(c)
		}
	}
}
