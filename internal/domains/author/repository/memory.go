package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author/model"
)

// memoryRepository keeps authors in process; used by memory:// and tests.
type memoryRepository struct {
	mu         sync.RWMutex
	authors    map[string]model.Author
	byUserName map[string]string // userName -> id
	order      []string
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		authors:    make(map[string]model.Author),
		byUserName: make(map[string]string),
	}
}

func (r *memoryRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUserName[a.UserName]; taken {
		return nil, model.ErrDuplicateUserName
	}

	created := *a
	created.ID = uuid.NewString()

	r.authors[created.ID] = created
	r.byUserName[created.UserName] = created.ID
	r.order = append(r.order, created.ID)

	return &created, nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id string) (*model.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	return &a, nil
}

func (r *memoryRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	authors := []*model.Author{}
	for _, id := range r.order {
		if _, ok := wanted[id]; !ok {
			continue
		}
		a := r.authors[id]
		authors = append(authors, &a)
	}
	return authors, nil
}

func (r *memoryRepository) FindByUserName(ctx context.Context, userName string) (*model.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	id, ok := r.byUserName[userName]
	r.mu.RUnlock()

	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *memoryRepository) FindAll(ctx context.Context) ([]*model.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	authors := make([]*model.Author, 0, len(r.order))
	for _, id := range r.order {
		a := r.authors[id]
		authors = append(authors, &a)
	}
	return authors, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.authors[id]
	if !ok {
		return nil
	}

	delete(r.authors, id)
	delete(r.byUserName, a.UserName)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
