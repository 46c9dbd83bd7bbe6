package handler

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/blog-platform/internal/session"
	"github.com/ErlanBelekov/blog-platform/internal/usecase"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	sessions *session.Manager
	posts    *usecase.PostUsecase
	logger   *slog.Logger
}

func NewUserHandler(sessions *session.Manager, posts *usecase.PostUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		sessions: sessions,
		posts:    posts,
		logger:   logger.With("component", "user_handler"),
	}
}

// GET /:username/home
// The guard already rejects cross-user paths on token evidence alone; the
// handler re-checks against the authoritative user so a stale token can
// never land on someone else's page.
func (h *UserHandler) Home(c *gin.Context) {
	user, ok := h.sessions.RequireAuth(c)
	if !ok {
		return
	}

	if c.Param("username") != user.Username {
		c.Redirect(http.StatusFound, "/"+user.Username+"/home")
		c.Abort()
		return
	}

	posts, err := h.posts.ListByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list posts for home", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	display := user.Username
	if user.Name != nil && *user.Name != "" {
		display = *user.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome, " + display + "!",
		"user":    newUserResponse(user),
		"posts":   newPostResponses(posts),
	})
}
