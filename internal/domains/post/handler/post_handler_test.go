package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/post/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context) ([]model.PostResponse, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.PostResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id string) (*model.PostResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.PostResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, req *model.CreatePostRequest) (*model.PostResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*model.PostResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id string, update model.PostUpdate) (*model.UpdatedPostResponse, error) {
	args := m.Called(ctx, id, update)
	if v := args.Get(0); v != nil {
		return v.(*model.UpdatedPostResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newTestRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPostHandler(svc)

	r := gin.New()
	r.GET("/posts", h.List)
	r.POST("/posts", h.Create)
	r.GET("/posts/:id", h.Get)
	r.PUT("/posts/:id", h.Update)
	r.DELETE("/posts/:id", h.Delete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything).Return([]model.PostResponse{
		{ID: "p1", Author: "Ada Lovelace", Title: "t", Comments: []model.CommentResponse{}},
	}, nil)

	w := do(newTestRouter(svc), http.MethodGet, "/posts", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"p1","author":"Ada Lovelace","content":"","title":"t","comments":[]}]`, w.Body.String())
}

func TestStorageFailureBodies(t *testing.T) {
	cause := errors.New("server selection timeout")

	tests := []struct {
		name   string
		setup  func(*mockService)
		method string
		path   string
		body   string
		want   string
	}{
		{
			name:   "list",
			setup:  func(s *mockService) { s.On("List", mock.Anything).Return(nil, cause) },
			method: http.MethodGet, path: "/posts",
			want: `{"error":"something went terribly wrong"}`,
		},
		{
			name:   "get",
			setup:  func(s *mockService) { s.On("Get", mock.Anything, "p1").Return(nil, cause) },
			method: http.MethodGet, path: "/posts/p1",
			want: `{"error":"something went horribly awry"}`,
		},
		{
			name:   "create",
			setup:  func(s *mockService) { s.On("Create", mock.Anything, mock.Anything).Return(nil, cause) },
			method: http.MethodPost, path: "/posts",
			body: `{"title":"t","content":"c","author_id":"a1"}`,
			want: `{"error":"Something went wrong"}`,
		},
		{
			name:   "update",
			setup:  func(s *mockService) { s.On("Update", mock.Anything, "p1", mock.Anything).Return(nil, cause) },
			method: http.MethodPut, path: "/posts/p1",
			body: `{"id":"p1","title":"t"}`,
			want: `{"error":"something went wrong"}`,
		},
		{
			name:   "delete",
			setup:  func(s *mockService) { s.On("Delete", mock.Anything, "p1").Return(cause) },
			method: http.MethodDelete, path: "/posts/p1",
			want: `{"error":"something went wrong"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.setup(svc)

			w := do(newTestRouter(svc), tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := new(mockService)
	svc.On("Get", mock.Anything, "missing").Return(nil, model.ErrPostNotFound)

	w := do(newTestRouter(svc), http.MethodGet, "/posts/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())
}

func TestCreate(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, &model.CreatePostRequest{Title: "t", Content: "c", AuthorID: "a1"}).
		Return(&model.PostResponse{ID: "p1", Author: "Ada Lovelace", Title: "t", Content: "c", Comments: []model.CommentResponse{}}, nil)

	w := do(newTestRouter(svc), http.MethodPost, "/posts", `{"title":"t","content":"c","author_id":"a1"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"p1","author":"Ada Lovelace","content":"c","title":"t","comments":[]}`, w.Body.String())
}

func TestCreate_MissingField(t *testing.T) {
	svc := new(mockService)

	w := do(newTestRouter(svc), http.MethodPost, "/posts", `{"title":"t","author_id":"a1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, "{\"error\":\"Missing `content` in request body\"}", w.Body.String())
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_EmptyTitle(t *testing.T) {
	svc := new(mockService)

	w := do(newTestRouter(svc), http.MethodPost, "/posts", `{"title":"","content":"c","author_id":"a1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, "{\"error\":\"`title` must not be empty\"}", w.Body.String())
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_UnknownAuthor(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrAuthorNotFound)

	w := do(newTestRouter(svc), http.MethodPost, "/posts", `{"title":"t","content":"c","author_id":"nobody"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Author not found"}`, w.Body.String())
}

func TestUpdate(t *testing.T) {
	svc := new(mockService)
	svc.On("Update", mock.Anything, "p1", mock.MatchedBy(func(u model.PostUpdate) bool {
		return u.Title != nil && *u.Title == "new" && u.Content == nil
	})).Return(&model.UpdatedPostResponse{ID: "p1", Title: "new", Content: "c"}, nil)

	w := do(newTestRouter(svc), http.MethodPut, "/posts/p1", `{"id":"p1","title":"new","author":"someone"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"p1","title":"new","content":"c"}`, w.Body.String())
}

func TestUpdate_IDMismatchHalts(t *testing.T) {
	svc := new(mockService)

	w := do(newTestRouter(svc), http.MethodPut, "/posts/p1", `{"id":"p2","title":"new"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Request path id and request body id values must match"}`, w.Body.String())
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := new(mockService)
	svc.On("Update", mock.Anything, "p1", mock.Anything).Return(nil, model.ErrPostNotFound)

	w := do(newTestRouter(svc), http.MethodPut, "/posts/p1", `{"id":"p1","title":"new"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())
}

func TestDelete(t *testing.T) {
	svc := new(mockService)
	svc.On("Delete", mock.Anything, "p1").Return(nil)

	w := do(newTestRouter(svc), http.MethodDelete, "/posts/p1", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
