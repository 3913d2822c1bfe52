package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourhub/utils"

	"go.uber.org/zap"
)

// DefaultSessionService is the production implementation. A nil Revocations
// disables revocation checks.
type DefaultSessionService struct {
	Tokens      *utils.TokenManager
	Revocations RevocationStore
	Logger      *zap.Logger
}

func NewSessionService(tokens *utils.TokenManager, revocations RevocationStore, logger *zap.Logger) *DefaultSessionService {
	return &DefaultSessionService{Tokens: tokens, Revocations: revocations, Logger: logger}
}

func (s *DefaultSessionService) TTL() time.Duration { return s.Tokens.TTL() }

func (s *DefaultSessionService) Issue(ctx context.Context, claims Claims) (string, time.Time, error) {
	if strings.TrimSpace(claims.Email()) == "" {
		return "", time.Time{}, utils.Validation("email is required")
	}
	token, expiresAt, err := s.Tokens.GenerateToken(claims)
	if err != nil {
		return "", time.Time{}, utils.Internal("failed to sign session token", err)
	}
	return token, expiresAt, nil
}

func (s *DefaultSessionService) Validate(ctx context.Context, token string) (Claims, error) {
	if token == "" {
		return nil, utils.Unauthorized("unauthorized access")
	}
	mc, err := s.Tokens.ValidateToken(token)
	if err != nil {
		return nil, &utils.AppError{Kind: utils.KindUnauthorized, Message: "unauthorized access", Err: err}
	}
	claims := Claims(mc)
	if claims.Email() == "" {
		return nil, utils.Unauthorized("unauthorized access")
	}
	if s.Revocations != nil {
		revoked, err := s.Revocations.IsRevoked(ctx, utils.HashToken(token))
		if err != nil {
			return nil, utils.Internal("failed to check session revocation", err)
		}
		if revoked {
			return nil, utils.Unauthorized("unauthorized access")
		}
	}
	return claims, nil
}

func (s *DefaultSessionService) Revoke(ctx context.Context, token string) error {
	if s.Revocations == nil || token == "" {
		return nil
	}
	mc, err := s.Tokens.ValidateToken(token)
	if err != nil {
		// Already unusable.
		return nil
	}
	ttl := remainingLifetime(Claims(mc))
	if ttl <= 0 {
		return nil
	}
	if err := s.Revocations.Revoke(ctx, utils.HashToken(token), ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.Logger.Debug("Session revoked", zap.String("email", Claims(mc).Email()))
	return nil
}

func remainingLifetime(claims Claims) time.Duration {
	var exp int64
	switch v := claims["exp"].(type) {
	case float64:
		exp = int64(v)
	case int64:
		exp = v
	default:
		return 0
	}
	return time.Until(time.Unix(exp, 0))
}
