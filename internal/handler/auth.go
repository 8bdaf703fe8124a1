package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobdesk/marketplace-api/internal/config"
	"github.com/jobdesk/marketplace-api/internal/model"
	"github.com/jobdesk/marketplace-api/internal/repository"
	"github.com/jobdesk/marketplace-api/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// tokenResp is the payload returned by register, login and refresh. The
// refresh token is omitted on refresh, which never rotates it.
type tokenResp struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	ExpiresIn    int      `json:"expires_in"`
	User         userPart `json:"user"`
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, Email: u.Email, Name: u.Name, Timezone: u.Timezone}
}

// issueTokenPair mints an access token and a refresh token for the user
// and persists the refresh token hash.
func (h *AuthHandler) issueTokenPair(ctx context.Context, userID uint64) (utils.AccessToken, utils.RefreshToken, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, h.Cfg.AccessTTLMin)
	if err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, userID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	return access, refresh, nil
}

// Register creates a user and returns a token pair immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.Timezone = strings.ToUpper(strings.TrimSpace(req.Timezone))

	fieldErrs := map[string]string{}
	if msg := validateEmail(req.Email); msg != "" {
		fieldErrs["email"] = msg
	}
	if msg := validatePassword(req.Password); msg != "" {
		fieldErrs["password"] = msg
	}
	if msg := validateTimezone(req.Timezone); msg != "" {
		fieldErrs["timezone"] = msg
	}
	if len(fieldErrs) > 0 {
		return respondValidation(c, "Validation failed", fieldErrs)
	}
	if req.Timezone == "" {
		req.Timezone = model.TimezoneUK
	}
	if req.Name == "" {
		// default display name: local part of the email
		req.Name = req.Email[:strings.Index(req.Email, "@")]
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.Name, req.Timezone, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return respondError(c, http.StatusConflict, "Registration failed",
				map[string]string{"email": "Email already in use"})
		}
		return respondError(c, http.StatusInternalServerError, "Failed to create user", nil)
	}

	access, refresh, err := h.issueTokenPair(ctx, uid)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to issue tokens", nil)
	}

	return respondCreated(c, "User registered successfully", tokenResp{
		AccessToken:  access.Token,
		RefreshToken: refresh.Raw,
		ExpiresIn:    utils.AccessTokenLifetimeSeconds,
		User:         userPart{ID: uid, Email: req.Email, Name: req.Name, Timezone: req.Timezone},
	})
}

// Login verifies credentials and returns a fresh token pair. Unknown
// emails and wrong passwords produce the identical response so the
// endpoint cannot be used to enumerate accounts. Existing refresh tokens
// stay valid; concurrent sessions are allowed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		fieldErrs := map[string]string{}
		if req.Email == "" {
			fieldErrs["email"] = "Email is required"
		}
		if req.Password == "" {
			fieldErrs["password"] = "Password is required"
		}
		return respondValidation(c, "Email and password are required", fieldErrs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return respondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
		}
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return respondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
	}

	access, refresh, err := h.issueTokenPair(ctx, u.ID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to issue tokens", nil)
	}

	return respondSuccess(c, "Login successful", tokenResp{
		AccessToken:  access.Token,
		RefreshToken: refresh.Raw,
		ExpiresIn:    utils.AccessTokenLifetimeSeconds,
		User:         toUserPart(u),
	})
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated and stays usable until its own
// expiry. Unknown tokens are a 404; expired ones a 401.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return respondValidation(c, "Refresh token required",
			map[string]string{"refresh_token": "Refresh token is required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		switch err {
		case repository.ErrTokenNotFound:
			return respondError(c, http.StatusNotFound, "Invalid refresh token",
				map[string]string{"refresh_token": "Refresh token not found"})
		case repository.ErrTokenExpired:
			return respondError(c, http.StatusUnauthorized, "Refresh token expired",
				map[string]string{"refresh_token": "Refresh token has expired"})
		}
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to load user", nil)
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, h.Cfg.AccessTTLMin)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to issue token", nil)
	}

	return respondSuccess(c, "Token refreshed successfully", tokenResp{
		AccessToken: access.Token,
		ExpiresIn:   utils.AccessTokenLifetimeSeconds,
		User:        toUserPart(u),
	})
}

// Logout revokes refresh tokens for the authenticated caller. With a
// refresh_token in the body only that session ends; without one every
// session is revoked.
func (h *AuthHandler) Logout(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	var req refreshReq
	_ = c.Bind(&req) // absent or invalid body means "revoke all"
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if raw == "" {
		if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
			return respondError(c, http.StatusInternalServerError, "Logout failed", nil)
		}
		return c.NoContent(http.StatusNoContent)
	}

	hash := utils.HashRefreshRaw(raw)
	if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return respondError(c, http.StatusUnauthorized, "Invalid refresh token", nil)
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return respondError(c, http.StatusInternalServerError, "Logout failed", nil)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return respondNotFound(c, "User not found")
		}
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	return respondSuccess(c, "User retrieved successfully", toUserPart(u))
}
