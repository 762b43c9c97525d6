package service

import (
	"context"

	authormodel "blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/post/model"
)

// ServiceInterface defines business logic operations for the Post domain.
// Results are already projected for the HTTP layer.
type ServiceInterface interface {
	// List resolves all authors with one batch lookup.
	List(ctx context.Context) ([]model.PostResponse, error)

	// Get errors: model.ErrPostNotFound
	Get(ctx context.Context, id string) (*model.PostResponse, error)

	// Create errors: model.ErrAuthorNotFound (nothing is written)
	Create(ctx context.Context, req *model.CreatePostRequest) (*model.PostResponse, error)

	// Update errors: model.ErrPostNotFound
	Update(ctx context.Context, id string, update model.PostUpdate) (*model.UpdatedPostResponse, error)

	Delete(ctx context.Context, id string) error
}

// AuthorReader is the slice of the author repository posts need.
type AuthorReader interface {
	FindByID(ctx context.Context, id string) (*authormodel.Author, error)
	FindByIDs(ctx context.Context, ids []string) ([]*authormodel.Author, error)
}
