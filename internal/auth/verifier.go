// AngelaMos | 2026
// verifier.go

package auth

import (
	"context"
	"fmt"

	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/middleware"
)

// Verifier checks an access token's signature and then its revocation state:
// the per-token blacklist and the per-user token version.
type Verifier struct {
	jwt     *JWTManager
	service *Service
}

func NewVerifier(jwt *JWTManager, service *Service) *Verifier {
	return &Verifier{jwt: jwt, service: service}
}

func (v *Verifier) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := v.jwt.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	revoked, err := v.service.IsAccessTokenBlacklisted(ctx, claims.JTI)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w: %w", core.ErrStoreUnavailable, err)
	}
	if revoked {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	if err := v.service.ValidateTokenVersion(ctx, claims.UserID, claims.TokenVersion); err != nil {
		return nil, err
	}

	return claims, nil
}

var _ middleware.TokenVerifier = (*Verifier)(nil)
