package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/workly-hq/hrms-backend-go/internal/domain/auth"
	"github.com/workly-hq/hrms-backend-go/internal/handler/http/response"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExp))
	response.SuccessWithMessage(w, "Login successful", result)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.Unauthorized(w, "Refresh token missing")
		return
	}

	result, err := a.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		if err := a.authService.Logout(r.Context(), cookie.Value); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	// Expire the cookie client-side as well
	expired := a.jwtService.RefreshTokenCookie("", time.Now().Add(-time.Hour).Unix())
	http.SetCookie(w, expired)

	response.SuccessWithMessage(w, "Logged out", nil)
}
