package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/testutil"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := testutil.SetupTestRedis(t)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	sess := domainauth.Session{
		ID:              "test-session-1",
		AuthToken:       "tok-123",
		CompanyID:       "42",
		Role:            domainauth.RoleUser,
		UserPermissions: `[{"module_name":"Services","can_view":true}]`,
	}
	require.NoError(t, store.Save(ctx, sess, 30*time.Minute))

	got, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	ttl, err := client.TTL(ctx, "session:test-session-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestSessionStore_HashLayout(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStoreWithPrefix(client, "console:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Session{
		ID:        "abc",
		AuthToken: "t",
		CompanyID: "9",
		Role:      domainauth.RoleCompany,
	}, time.Minute))

	fields, err := client.HGetAll(ctx, "console:abc").Result()
	require.NoError(t, err)
	assert.Equal(t, "t", fields["authToken"])
	assert.Equal(t, "9", fields["CompanyId"])
	assert.Equal(t, "COMPANY", fields["role"])
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t))

	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "test-session-delete", AuthToken: "x"}, time.Minute))
	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err := store.Get(ctx, "test-session-delete")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_EmptyID(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t))
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{}, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")

	_, err = store.Get(ctx, "")
	assert.Equal(t, ErrNotFound, err)
	assert.NoError(t, store.Delete(ctx, ""))
}
