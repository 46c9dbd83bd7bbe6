// Package session manages the cookie that carries the session token and
// resolves the authenticated user for a request.
package session

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/blog-platform/internal/domain"
	"github.com/ErlanBelekov/blog-platform/internal/repository"
	"github.com/ErlanBelekov/blog-platform/internal/token"
	"github.com/gin-gonic/gin"
)

const (
	// CookieName is shared with the route guard, which reads the raw
	// cookie without going through the manager.
	CookieName = "blog-auth-token"

	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/auth/login"

	cookieMaxAge = int(token.TTL / time.Second)
)

type Manager struct {
	tokens *token.Service
	users  repository.UserRepository
	secure bool
	logger *slog.Logger
}

func NewManager(tokens *token.Service, users repository.UserRepository, secure bool, logger *slog.Logger) *Manager {
	return &Manager{
		tokens: tokens,
		users:  users,
		secure: secure,
		logger: logger.With("component", "session"),
	}
}

// Set signs claims for the user and stores them in an HTTP-only cookie
// whose max-age mirrors the token expiry.
func (m *Manager) Set(c *gin.Context, user *domain.User) error {
	signed, err := m.tokens.Sign(user)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, signed, cookieMaxAge, "/", "", m.secure, true)
	return nil
}

// Clear deletes the session cookie.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}

// CurrentUser resolves the request's user, or nil when the request is not
// authenticated. A request counts as authenticated only when the cookie is
// present, the token verifies, the subject still exists, and the subject's
// email is verified. All failures look alike to the caller.
//
// A non-nil error means the credential store itself failed, not that the
// evidence was bad.
func (m *Manager) CurrentUser(c *gin.Context) (*domain.User, error) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil, nil
	}

	claims := m.tokens.Verify(raw)
	if claims == nil {
		return nil, nil
	}

	user, err := m.users.FindByID(c.Request.Context(), claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !user.EmailVerified {
		return nil, nil
	}
	return user, nil
}

// RequireAuth returns the current user, or redirects to the login page and
// aborts the request. When ok is false the caller must return immediately.
func (m *Manager) RequireAuth(c *gin.Context) (user *domain.User, ok bool) {
	user, err := m.CurrentUser(c)
	if err != nil {
		m.logger.ErrorContext(c.Request.Context(), "resolve current user", "error", err)
	}
	if user == nil {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
		return nil, false
	}
	return user, true
}
