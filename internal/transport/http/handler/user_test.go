package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ErlanBelekov/blog-platform/internal/domain"
	"github.com/ErlanBelekov/blog-platform/internal/session"
	"github.com/ErlanBelekov/blog-platform/internal/token"
	"github.com/ErlanBelekov/blog-platform/internal/transport/http/handler"
	"github.com/ErlanBelekov/blog-platform/internal/usecase"
	"github.com/gin-gonic/gin"
)

// userOnlyStore resolves exactly one user by ID.
type userOnlyStore struct {
	user *domain.User
}

func (s *userOnlyStore) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (s *userOnlyStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		copied := *s.user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *userOnlyStore) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *userOnlyStore) FindByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *userOnlyStore) MarkEmailVerified(_ context.Context, _ string) error { return nil }

type fakePostRepo struct {
	posts []*domain.Post
}

func (r *fakePostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.posts = append(r.posts, p)
	return p, nil
}

func (r *fakePostRepo) ListByAuthor(_ context.Context, authorID string, _ int) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newHomeEngine(t *testing.T, store *userOnlyStore, posts *fakePostRepo) (*gin.Engine, *token.Service) {
	t.Helper()

	tokens, err := token.NewService([]byte(testKey))
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	logger := slog.Default()
	sessions := session.NewManager(tokens, store, false, logger)
	h := handler.NewUserHandler(sessions, usecase.NewPostUsecase(posts), logger)

	r := gin.New()
	r.GET("/:username/home", h.Home)
	return r, tokens
}

func getWithSession(t *testing.T, r *gin.Engine, tokens *token.Service, path string, user *domain.User) *httptest.ResponseRecorder {
	t.Helper()

	signed, err := tokens.Sign(user)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: signed})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHome_OwnPage_Welcomes(t *testing.T) {
	u := &domain.User{ID: "user-1", Email: "bob@example.com", Username: "bob", EmailVerified: true}
	posts := &fakePostRepo{posts: []*domain.Post{
		{ID: "post-1", AuthorID: "user-1", Title: "hello", Body: "first"},
	}}
	r, tokens := newHomeEngine(t, &userOnlyStore{user: u}, posts)

	w := getWithSession(t, r, tokens, "/bob/home", u)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Welcome, bob!") {
		t.Errorf("body %q lacks welcome message", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"hello"`) {
		t.Errorf("body %q lacks the author's post", w.Body.String())
	}
}

func TestHome_DisplayNamePreferred(t *testing.T) {
	name := "Bob Builder"
	u := &domain.User{ID: "user-1", Email: "bob@example.com", Username: "bob", Name: &name, EmailVerified: true}
	r, tokens := newHomeEngine(t, &userOnlyStore{user: u}, &fakePostRepo{})

	w := getWithSession(t, r, tokens, "/bob/home", u)

	if !strings.Contains(w.Body.String(), "Welcome, Bob Builder!") {
		t.Errorf("body %q lacks display-name welcome", w.Body.String())
	}
}

func TestHome_StaleTokenForOtherUser_RedirectsToOwnHome(t *testing.T) {
	// The request reaches the handler with a token whose username claim is
	// stale (user renamed after issue); the authoritative record wins.
	u := &domain.User{ID: "user-1", Email: "bob@example.com", Username: "bob", EmailVerified: true}
	r, tokens := newHomeEngine(t, &userOnlyStore{user: u}, &fakePostRepo{})

	stale := &domain.User{ID: "user-1", Email: u.Email, Username: "alice"}
	w := getWithSession(t, r, tokens, "/alice/home", stale)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/bob/home" {
		t.Errorf("redirect to %q, want /bob/home", loc)
	}
}

func TestHome_UnverifiedUser_RedirectsToLogin(t *testing.T) {
	u := &domain.User{ID: "user-1", Email: "bob@example.com", Username: "bob", EmailVerified: false}
	r, tokens := newHomeEngine(t, &userOnlyStore{user: u}, &fakePostRepo{})

	w := getWithSession(t, r, tokens, "/bob/home", u)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/auth/login" {
		t.Errorf("redirect to %q, want /auth/login", loc)
	}
}

func TestHome_NoSession_RedirectsToLogin(t *testing.T) {
	u := &domain.User{ID: "user-1", Email: "bob@example.com", Username: "bob", EmailVerified: true}
	r, _ := newHomeEngine(t, &userOnlyStore{user: u}, &fakePostRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bob/home", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/auth/login" {
		t.Errorf("redirect to %q, want /auth/login", loc)
	}
}
