package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/workly-hq/hrms-backend-go/internal/domain/auth"
	"github.com/workly-hq/hrms-backend-go/internal/domain/user"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	var resp auth.LoginResponse
	resp.AccessToken, resp.ExpiresAt, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	resp.RefreshToken, resp.RefreshExp, err = a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	resp.User = auth.UserInfo{
		ID:         userData.ID,
		Email:      userData.Email,
		Role:       string(userData.Role),
		EmployeeID: userData.EmployeeID,
	}
	return resp, nil
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if a.Service.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := a.Service.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	tokenType, _ := token.Get("type")
	if tokenType != "refresh" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	userID, ok := token.Get("user_id")
	if !ok {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID.(string))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.RefreshResponse{}, auth.ErrInvalidToken
		}
		return auth.RefreshResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	var resp auth.RefreshResponse
	resp.AccessToken, resp.ExpiresAt, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	a.Service.RevokeToken(refreshToken)
	return nil
}
