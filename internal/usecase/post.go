package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/blog-platform/internal/domain"
	"github.com/ErlanBelekov/blog-platform/internal/repository"
)

const defaultPostLimit = 20

type PostUsecase struct {
	repo repository.PostRepository
}

func NewPostUsecase(repo repository.PostRepository) *PostUsecase {
	return &PostUsecase{repo: repo}
}

type CreatePostInput struct {
	AuthorID string
	Title    string
	Body     string
}

func (u *PostUsecase) CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	post, err := u.repo.Create(ctx, &domain.Post{
		AuthorID: input.AuthorID,
		Title:    input.Title,
		Body:     input.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (u *PostUsecase) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	posts, err := u.repo.ListByAuthor(ctx, authorID, defaultPostLimit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
