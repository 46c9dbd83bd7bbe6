package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/ErlanBelekov/blog-platform/internal/metrics"
	"github.com/ErlanBelekov/blog-platform/internal/session"
	"github.com/ErlanBelekov/blog-platform/internal/token"
	"github.com/gin-gonic/gin"
)

// userScopedRe matches paths shaped /{segment}/... — the per-user
// namespace of the blog.
var userScopedRe = regexp.MustCompile(`^/[^/]+/`)

// Guard classifies every request path and redirects unauthenticated or
// mis-scoped requests before any handler runs. It verifies the session
// token only; it never queries the credential store. The authoritative
// account check (existence, verified email) happens in session.CurrentUser.
//
// Rules, applied in order:
//  1. Non-public path without a session cookie → /auth/login.
//  2. User-scoped path with a cookie: invalid token → /auth/login;
//     username claim not matching the leading segment → the claimed
//     user's own home.
//  3. Auth page with a valid session → the user's home.
func Guard(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		raw, err := c.Cookie(session.CookieName)
		hasCookie := err == nil && raw != ""

		if isPublic(path) {
			if strings.HasPrefix(path, "/auth/") && hasCookie {
				if claims := tokens.Verify(raw); claims != nil {
					redirect(c, homePath(claims.Username), "already_authed")
					return
				}
			}
			c.Next()
			return
		}

		if !hasCookie {
			redirect(c, session.LoginPath, "login")
			return
		}

		if userScopedRe.MatchString(path) {
			claims := tokens.Verify(raw)
			if claims == nil {
				redirect(c, session.LoginPath, "login")
				return
			}

			owner := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
			if claims.Username != owner {
				redirect(c, homePath(claims.Username), "cross_user")
				return
			}
		}

		c.Next()
	}
}

func isPublic(path string) bool {
	return path == "/" ||
		strings.HasPrefix(path, "/auth/") ||
		strings.HasPrefix(path, "/api/auth/") ||
		strings.HasPrefix(path, "/static/") ||
		path == "/favicon.ico" ||
		path == "/robots.txt"
}

func homePath(username string) string {
	return "/" + username + "/home"
}

func redirect(c *gin.Context, target, reason string) {
	metrics.GuardRedirectsTotal.WithLabelValues(reason).Inc()
	c.Redirect(http.StatusFound, target)
	c.Abort()
}
