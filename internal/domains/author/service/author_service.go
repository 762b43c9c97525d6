package service

import (
	"context"
	"fmt"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/author/repository"
)

// authorService implements ServiceInterface
type authorService struct {
	repo  repository.RepositoryInterface
	posts PostCounter
}

// NewAuthorService creates a new author service instance
// Service depends on Repository abstraction (interface), not concrete type
func NewAuthorService(repo repository.RepositoryInterface, posts PostCounter) ServiceInterface {
	return &authorService{
		repo:  repo,
		posts: posts,
	}
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	created, err := s.repo.Create(ctx, req.ToEntity())
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return created, nil
}

func (s *authorService) GetByID(ctx context.Context, id string) (*model.Author, error) {
	if id == "" {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *authorService) List(ctx context.Context) ([]*model.Author, error) {
	return s.repo.FindAll(ctx)
}

func (s *authorService) Delete(ctx context.Context, id string) error {
	// ═══════════════════════════════════════════════════════════
	// CHECK REFERENTIAL INTEGRITY TRƯỚC KHI XÓA
	// ═══════════════════════════════════════════════════════════
	// Posts giữ reference tới author; không cascade, không để dangling.
	postCount, err := s.posts.CountByAuthor(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check post count: %w", err)
	}

	if postCount > 0 {
		return fmt.Errorf("%w: author has %d linked posts", model.ErrAuthorHasPosts, postCount)
	}

	return s.repo.Delete(ctx, id)
}
