package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/blog-platform/internal/domain"
	"github.com/ErlanBelekov/blog-platform/internal/session"
	"github.com/ErlanBelekov/blog-platform/internal/usecase"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	sessions *session.Manager
	posts    *usecase.PostUsecase
	logger   *slog.Logger
}

func NewPostHandler(sessions *session.Manager, posts *usecase.PostUsecase, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		sessions: sessions,
		posts:    posts,
		logger:   logger.With("component", "post_handler"),
	}
}

type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newPostResponses(posts []*domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, postResponse{
			ID:        p.ID,
			Title:     p.Title,
			Body:      p.Body,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return out
}

type createPostRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Body  string `json:"body"  binding:"required"`
}

// POST /:username/posts
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := h.sessions.RequireAuth(c)
	if !ok {
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), usecase.CreatePostInput{
		AuthorID: user.ID,
		Title:    req.Title,
		Body:     req.Body,
	})
	if err != nil {
		h.logger.Error("create post", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, postResponse{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	})
}

// GET /:username/posts
func (h *PostHandler) List(c *gin.Context) {
	user, ok := h.sessions.RequireAuth(c)
	if !ok {
		return
	}

	posts, err := h.posts.ListByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": newPostResponses(posts)})
}
