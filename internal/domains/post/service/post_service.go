package service

import (
	"context"
	"errors"
	"fmt"

	authormodel "blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/repository"
)

type postService struct {
	repo    repository.RepositoryInterface
	authors AuthorReader
}

func NewPostService(repo repository.RepositoryInterface, authors AuthorReader) ServiceInterface {
	return &postService{
		repo:    repo,
		authors: authors,
	}
}

func (s *postService) List(ctx context.Context) ([]model.PostResponse, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	// ═══════════════════════════════════════════════════════════
	// BATCH RESOLVE AUTHORS (1 round trip thay vì N)
	// ═══════════════════════════════════════════════════════════
	seen := make(map[string]struct{}, len(posts))
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; ok || p.AuthorID == "" {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		ids = append(ids, p.AuthorID)
	}

	byID := make(map[string]*authormodel.Author, len(ids))
	if len(ids) > 0 {
		authors, err := s.authors.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve authors: %w", err)
		}
		for _, a := range authors {
			byID[a.ID] = a
		}
	}

	return model.ProjectAll(posts, byID), nil
}

func (s *postService) Get(ctx context.Context, id string) (*model.PostResponse, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.resolveAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	res := model.Project(post, author)
	return &res, nil
}

func (s *postService) Create(ctx context.Context, req *model.CreatePostRequest) (*model.PostResponse, error) {
	author, err := s.authors.FindByID(ctx, req.AuthorID)
	if err != nil {
		if errors.Is(err, authormodel.ErrAuthorNotFound) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}

	created, err := s.repo.Create(ctx, req.ToEntity(author.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	res := model.Project(created, author)
	return &res, nil
}

func (s *postService) Update(ctx context.Context, id string, update model.PostUpdate) (*model.UpdatedPostResponse, error) {
	updated, err := s.repo.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, err
	}

	res := model.ProjectUpdated(updated)
	return &res, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// resolveAuthor returns nil for a dangling reference.
func (s *postService) resolveAuthor(ctx context.Context, authorID string) (*authormodel.Author, error) {
	if authorID == "" {
		return nil, nil
	}

	author, err := s.authors.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, authormodel.ErrAuthorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve author: %w", err)
	}
	return author, nil
}
