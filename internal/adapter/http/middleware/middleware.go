package middleware

import (
	"context"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
)

type (
	TokenValidator interface {
		Validate(ctx context.Context, token string) (*models.Claims, error)
	}

	Middleware struct {
		tokens  TokenValidator
		service string
		log     logger.Logger
	}
)

// NewMiddleware builds the middleware set of one service. tokens may be nil
// when the service exposes no protected routes.
func NewMiddleware(tokens TokenValidator, service string, log logger.Logger) *Middleware {
	return &Middleware{
		tokens:  tokens,
		service: service,
		log:     log,
	}
}
