package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/workly-hq/hrms-backend-go/internal/domain/auth"
	"github.com/workly-hq/hrms-backend-go/internal/domain/user"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
	byID    map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(context.Context, string, string) error { return nil }

func (f *fakeUserRepo) ListIDs(context.Context) ([]string, error) { return nil, nil }

func newTestAuthService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	employeeID := "emp-1"
	testUser := user.User{
		ID:           "user-1",
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
		EmployeeID:   &employeeID,
	}

	repo := &fakeUserRepo{
		byEmail: map[string]user.User{testUser.Email: testUser},
		byID:    map[string]user.User{testUser.ID: testUser},
	}
	jwtSvc := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	return NewAuthService(repo, jwtSvc), jwtSvc
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "employee", resp.User.Role)
	require.NotNil(t, resp.User.EmployeeID)
	assert.Equal(t, "emp-1", *resp.User.EmployeeID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	// An access token is not a refresh token.
	_, err = svc.Refresh(ctx, login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshAfterLogout(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
