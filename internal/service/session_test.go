package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/adapters/memory"
	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/mocks"
)

func TestSessionService_SeedAndGet(t *testing.T) {
	svc := NewSessionService(SessionServiceOptions{Sessions: memory.NewSessionStore()})
	ctx := context.Background()

	seeded, err := svc.Seed(ctx, domainauth.Session{AuthToken: "tok", CompanyID: "5", Role: " user "})
	require.NoError(t, err)
	require.NotEmpty(t, seeded.ID)

	got, err := svc.GetSession(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleUser, got.Role)
	assert.Equal(t, "5", got.CompanyID)
}

func TestSessionService_GetSessionRequiresID(t *testing.T) {
	svc := NewSessionService(SessionServiceOptions{Sessions: memory.NewSessionStore()})

	_, err := svc.GetSession(context.Background(), "")
	assert.Error(t, err)
}

func TestSessionService_LogoutPropagatesStoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Delete(gomock.Any(), "s1").Return(errors.New("boom"))

	svc := NewSessionService(SessionServiceOptions{Sessions: store})

	err := svc.Logout(context.Background(), "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete session")
	assert.NoError(t, svc.Logout(context.Background(), ""))
}

func TestSessionService_SeedUsesTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Save(gomock.Any(), gomock.Any(), 2*time.Hour).Return(nil)

	svc := NewSessionService(SessionServiceOptions{Sessions: store, TTL: 2 * time.Hour})

	_, err := svc.Seed(context.Background(), domainauth.Session{AuthToken: "tok"})
	require.NoError(t, err)
}

func TestNewSessionService_PanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() { NewSessionService(SessionServiceOptions{}) })
}
