package repository

import (
	"context"

	"github.com/ErlanBelekov/blog-platform/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Post, error)
}
