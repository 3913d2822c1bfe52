package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tourhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func (m *memoryRevocations) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = map[string]time.Duration{}
	}
	m.revoked[tokenHash] = ttl
	return nil
}

func (m *memoryRevocations) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenHash]
	return ok, nil
}

func newService(store RevocationStore) *DefaultSessionService {
	return NewSessionService(utils.NewTokenManager("test-secret", 10*time.Hour), store, zap.NewNop())
}

func TestIssueRequiresEmail(t *testing.T) {
	svc := newService(nil)

	_, _, err := svc.Issue(context.Background(), Claims{"name": "No Email"})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestIssueThenValidateKeepsExtraClaims(t *testing.T) {
	svc := newService(nil)

	token, expiresAt, err := svc.Issue(context.Background(), Claims{"email": "t@example.com", "name": "Tess"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "t@example.com", claims.Email())
	assert.Equal(t, "Tess", claims["name"])
}

func TestValidateRejectsMissingAndMalformed(t *testing.T) {
	svc := newService(nil)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Validate(context.Background(), token)
		require.Error(t, err, token)
		assert.True(t, utils.IsKind(err, utils.KindUnauthorized), token)
	}
}

func TestRevokedTokenIsRejected(t *testing.T) {
	store := &memoryRevocations{}
	svc := newService(store)

	token, _, err := svc.Issue(context.Background(), Claims{"email": "t@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(context.Background(), token))

	ttl, ok := store.revoked[utils.HashToken(token)]
	require.True(t, ok)
	assert.InDelta(t, (10 * time.Hour).Seconds(), ttl.Seconds(), 5)

	_, err = svc.Validate(context.Background(), token)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
}

func TestRevokeWithoutStoreIsNoop(t *testing.T) {
	svc := newService(nil)

	token, _, err := svc.Issue(context.Background(), Claims{"email": "t@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(context.Background(), token))

	_, err = svc.Validate(context.Background(), token)
	assert.NoError(t, err)
}

func TestValidateSurfacesStoreFailureAsInternal(t *testing.T) {
	store := &memoryRevocations{}
	svc := newService(store)
	token, _, err := svc.Issue(context.Background(), Claims{"email": "t@example.com"})
	require.NoError(t, err)

	store.err = errors.New("redis down")
	_, err = svc.Validate(context.Background(), token)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInternal))
}
