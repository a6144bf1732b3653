// Package auth issues and verifies the HS256 access tokens that guard the
// report archive.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
)

const issuer = "mileage-report"

type TokenService struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

// Issue signs an access token for subject with the given role.
func (s *TokenService) Issue(subject string, role types.UserRole) (string, error) {
	issuedAt := s.now().UTC()

	claims := models.Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.accessTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Validate validates the given JWT token string, returning its claims if valid.
// Expired tokens yield types.ErrExpiredToken, anything else types.ErrInvalidToken.
func (s *TokenService) Validate(ctx context.Context, token string) (*models.Claims, error) {
	ctx = wrap.WithAction(ctx, "validate_token")

	claims := &models.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, wrap.Error(ctx, types.ErrExpiredToken)
		}
		return nil, wrap.Error(ctx, fmt.Errorf("%w: %v", types.ErrInvalidToken, err))
	}
	if !parsed.Valid || claims.Role == "" {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	return claims, nil
}
