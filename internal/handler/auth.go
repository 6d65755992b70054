package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/muhammadafan/fresh-harvest-connect/internal/config"
	"github.com/muhammadafan/fresh-harvest-connect/internal/middleware"
	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
	"github.com/muhammadafan/fresh-harvest-connect/internal/queue"
	"github.com/muhammadafan/fresh-harvest-connect/internal/repository"
	"github.com/muhammadafan/fresh-harvest-connect/internal/utils"
)

// AuthHandler bundles dependencies for signup, login and logout.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Events EventSink
}

func NewAuthHandler(cfg config.Config, users UserStore, events EventSink) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Events: events}
}

// ----- DTOs -----

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginResp struct {
	User    model.PublicUser `json:"user"`
	Token   string           `json:"token"`
	Expires time.Time        `json:"expires"`
}

// Signup creates a user account. The role may be FARMER or CONSUMER
// (default CONSUMER); ADMIN cannot be self-selected — administrative
// accounts come from the seed command only.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := bindJSON(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleConsumer
	}
	if !model.SignupRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role selected"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already in use"})
		}
		return internalError(c)
	}

	fireEvent(h.Events, queue.ActivityEvent{
		Event:      queue.EventUserRegistered,
		UserID:     uid,
		Name:       req.Name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user created successfully",
		"user":    model.PublicUser{ID: uid, Name: req.Name, Email: req.Email, Role: role},
	})
}

// Login exchanges credentials for a session token. The token carries the
// role snapshot taken here; it is returned in the body for API clients
// and set as an HttpOnly cookie for browser navigation. Unknown email,
// missing stored hash and wrong password all produce the identical
// response so callers cannot probe which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindJSON(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return internalError(c)
	}
	if u.PasswordHash == "" || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.SessionTTLMin)
	if err != nil {
		return internalError(c)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Cfg.Env == "prod",
	})
	return c.JSON(http.StatusOK, loginResp{User: u.Public(), Token: tok.Token, Expires: tok.Exp})
}

// Logout clears the session cookie. Tokens are stateless, so nothing is
// revoked server-side; the cookie removal plus client-side disposal of
// the bearer token ends the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

// Me returns the caller's stored account, re-read from the credential
// store rather than echoed from token claims.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, ok := requireStoredUser(ctx, c, h.Users)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u.Public()})
}
