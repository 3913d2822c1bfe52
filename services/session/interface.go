package session

import (
	"context"
	"time"
)

// Claims are the decoded contents of a session token.
type Claims map[string]interface{}

// Email returns the identity claim, or "" when absent.
func (c Claims) Email() string {
	email, _ := c["email"].(string)
	return email
}

// SessionService issues and verifies session tokens.
type SessionService interface {
	// Issue signs claims into a token. claims must carry a non-empty email.
	Issue(ctx context.Context, claims Claims) (string, time.Time, error)
	// Validate returns the claims of a well-formed, unexpired, unrevoked token.
	Validate(ctx context.Context, token string) (Claims, error)
	// Revoke marks token unusable for the rest of its lifetime. It is a no-op
	// when no revocation store is configured.
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}

// RevocationStore remembers revoked tokens until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}
