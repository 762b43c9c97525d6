package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/config"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{
			Environment:     "test",
			Port:            "0",
			RequestTimeout:  5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{URL: "memory://", MaxRetries: 1},
	}

	srv, err := Start(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = srv.Stop(context.Background())
	})
	return srv
}

type apiResponse struct {
	status int
	body   []byte
}

func (r apiResponse) decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, v), string(r.body))
}

func call(t *testing.T, srv *Server, method, path string, body interface{}) apiResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL()+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return apiResponse{status: resp.StatusCode, body: raw}
}

func createAuthor(t *testing.T, srv *Server, first, last, userName string) string {
	t.Helper()

	resp := call(t, srv, http.MethodPost, "/authors", map[string]string{
		"firstName": first,
		"lastName":  last,
		"userName":  userName,
	})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))

	var author struct {
		ID string `json:"id"`
	}
	resp.decode(t, &author)
	return author.ID
}

type postBody struct {
	ID       string        `json:"id"`
	Author   string        `json:"author"`
	Content  string        `json:"content"`
	Title    string        `json:"title"`
	Comments []interface{} `json:"comments"`
}

func TestAdaLovelaceScenario(t *testing.T) {
	srv := startTestServer(t)
	authorID := createAuthor(t, srv, "Ada", "Lovelace", "ada")

	resp := call(t, srv, http.MethodPost, "/posts", map[string]string{
		"title":     "Notes",
		"content":   "On the Analytical Engine",
		"author_id": authorID,
	})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))

	var created postBody
	resp.decode(t, &created)
	assert.Equal(t, "Ada Lovelace", created.Author)
	assert.Equal(t, "Notes", created.Title)
	assert.NotNil(t, created.Comments)
	assert.Empty(t, created.Comments)

	resp = call(t, srv, http.MethodGet, "/posts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.status)

	var fetched postBody
	resp.decode(t, &fetched)
	assert.Equal(t, created, fetched)
}

func TestCreatePost_MissingFieldsPersistNothing(t *testing.T) {
	srv := startTestServer(t)
	authorID := createAuthor(t, srv, "Ada", "Lovelace", "ada")

	full := map[string]string{"title": "t", "content": "c", "author_id": authorID}
	for _, field := range []string{"title", "content", "author_id"} {
		body := map[string]string{}
		for k, v := range full {
			if k != field {
				body[k] = v
			}
		}

		resp := call(t, srv, http.MethodPost, "/posts", body)
		assert.Equal(t, http.StatusBadRequest, resp.status, field)
		assert.JSONEq(t, "{\"error\":\"Missing `"+field+"` in request body\"}", string(resp.body))
	}

	resp := call(t, srv, http.MethodGet, "/posts", nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, `[]`, string(resp.body))
}

func TestPost_EmptyTitleRejected(t *testing.T) {
	srv := startTestServer(t)
	authorID := createAuthor(t, srv, "Ada", "Lovelace", "ada")

	resp := call(t, srv, http.MethodPost, "/posts", map[string]string{
		"title": "", "content": "c", "author_id": authorID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, "{\"error\":\"`title` must not be empty\"}", string(resp.body))

	resp = call(t, srv, http.MethodGet, "/posts", nil)
	assert.JSONEq(t, `[]`, string(resp.body))

	resp = call(t, srv, http.MethodPost, "/posts", map[string]string{
		"title": "kept", "content": "c", "author_id": authorID,
	})
	require.Equal(t, http.StatusCreated, resp.status)
	var created postBody
	resp.decode(t, &created)

	resp = call(t, srv, http.MethodPut, "/posts/"+created.ID, map[string]string{"id": created.ID, "title": ""})
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = call(t, srv, http.MethodGet, "/posts/"+created.ID, nil)
	var fetched postBody
	resp.decode(t, &fetched)
	assert.Equal(t, "kept", fetched.Title)
}

func TestCreatePost_UnknownAuthor(t *testing.T) {
	srv := startTestServer(t)

	resp := call(t, srv, http.MethodPost, "/posts", map[string]string{
		"title": "t", "content": "c", "author_id": "nobody",
	})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"error":"Author not found"}`, string(resp.body))
}

func TestUpdatePost_OnlyTitleAndContentChange(t *testing.T) {
	srv := startTestServer(t)
	adaID := createAuthor(t, srv, "Ada", "Lovelace", "ada")
	otherID := createAuthor(t, srv, "Charles", "Babbage", "charles")

	resp := call(t, srv, http.MethodPost, "/posts", map[string]string{
		"title": "old", "content": "body", "author_id": adaID,
	})
	require.Equal(t, http.StatusCreated, resp.status)
	var created postBody
	resp.decode(t, &created)

	resp = call(t, srv, http.MethodPut, "/posts/"+created.ID, map[string]interface{}{
		"id":        created.ID,
		"title":     "new",
		"author":    otherID,
		"author_id": otherID,
		"comments":  []map[string]string{{"content": "injected"}},
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	assert.JSONEq(t, `{"id":"`+created.ID+`","title":"new","content":"body"}`, string(resp.body))

	resp = call(t, srv, http.MethodGet, "/posts/"+created.ID, nil)
	var fetched postBody
	resp.decode(t, &fetched)
	assert.Equal(t, "new", fetched.Title)
	assert.Equal(t, "body", fetched.Content)
	assert.Equal(t, "Ada Lovelace", fetched.Author)
	assert.Empty(t, fetched.Comments)
}

func TestUpdatePost_Errors(t *testing.T) {
	srv := startTestServer(t)

	resp := call(t, srv, http.MethodPut, "/posts/abc", map[string]string{"id": "xyz", "title": "t"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"error":"Request path id and request body id values must match"}`, string(resp.body))

	resp = call(t, srv, http.MethodPut, "/posts/abc", map[string]string{"id": "abc", "title": "t"})
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.JSONEq(t, `{"error":"Post not found"}`, string(resp.body))
}

func TestDeletePost_Twice(t *testing.T) {
	srv := startTestServer(t)
	authorID := createAuthor(t, srv, "Ada", "Lovelace", "ada")

	resp := call(t, srv, http.MethodPost, "/posts", map[string]string{
		"title": "t", "content": "c", "author_id": authorID,
	})
	var created postBody
	resp.decode(t, &created)

	for i := 0; i < 2; i++ {
		resp = call(t, srv, http.MethodDelete, "/posts/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, resp.status)
		assert.Empty(t, resp.body)
	}

	resp = call(t, srv, http.MethodGet, "/posts/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
}

func TestListPosts_Shape(t *testing.T) {
	srv := startTestServer(t)
	authorID := createAuthor(t, srv, "Ada", "Lovelace", "ada")

	const n = 3
	for i := 0; i < n; i++ {
		resp := call(t, srv, http.MethodPost, "/posts", map[string]string{
			"title": "t", "content": "c", "author_id": authorID,
		})
		require.Equal(t, http.StatusCreated, resp.status)
	}

	resp := call(t, srv, http.MethodGet, "/posts", nil)
	require.Equal(t, http.StatusOK, resp.status)

	var posts []map[string]interface{}
	resp.decode(t, &posts)
	require.Len(t, posts, n)
	for _, p := range posts {
		for _, key := range []string{"id", "author", "content", "title", "comments"} {
			assert.Contains(t, p, key)
		}
		assert.Equal(t, "Ada Lovelace", p["author"])
	}
}

func TestAuthorDelete_RestrictedWhilePostsExist(t *testing.T) {
	srv := startTestServer(t)
	authorID := createAuthor(t, srv, "Ada", "Lovelace", "ada")

	resp := call(t, srv, http.MethodPost, "/posts", map[string]string{
		"title": "t", "content": "c", "author_id": authorID,
	})
	var created postBody
	resp.decode(t, &created)

	resp = call(t, srv, http.MethodDelete, "/authors/"+authorID, nil)
	assert.Equal(t, http.StatusConflict, resp.status)

	call(t, srv, http.MethodDelete, "/posts/"+created.ID, nil)

	resp = call(t, srv, http.MethodDelete, "/authors/"+authorID, nil)
	assert.Equal(t, http.StatusNoContent, resp.status)

	resp = call(t, srv, http.MethodGet, "/authors/"+authorID, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
}

func TestAuthorCreate_DuplicateUserName(t *testing.T) {
	srv := startTestServer(t)
	createAuthor(t, srv, "Ada", "Lovelace", "ada")

	resp := call(t, srv, http.MethodPost, "/authors", map[string]string{"userName": "ada"})
	assert.Equal(t, http.StatusConflict, resp.status)
}

func TestUnmatchedRoutes(t *testing.T) {
	srv := startTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/nope"},
		{http.MethodPatch, "/posts/abc"},
		{http.MethodPatch, "/authors/abc"},
	} {
		resp := call(t, srv, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusNotFound, resp.status, tc.method+" "+tc.path)
		assert.JSONEq(t, `{"message":"Not Found"}`, string(resp.body))
	}
}

func TestHealth(t *testing.T) {
	srv := startTestServer(t)

	resp := call(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.status)

	var health map[string]interface{}
	resp.decode(t, &health)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "memory", health["driver"])
}

func TestRequestIDEcho(t *testing.T) {
	srv := startTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL()+"/posts", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "trace-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "trace-123", resp.Header.Get("X-Request-ID"))
}

func TestStop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		App:      config.AppConfig{Port: "0", ShutdownTimeout: time.Second},
		Database: config.DatabaseConfig{URL: "memory://", MaxRetries: 1},
	}

	srv, err := Start(context.Background(), cfg)
	require.NoError(t, err)

	require.NoError(t, srv.Stop(context.Background()))
	assert.NoError(t, <-srv.Err())

	_, err = http.Get(srv.URL() + "/health")
	assert.Error(t, err)
}

func TestStart_InvalidDatabaseURL(t *testing.T) {
	cfg := &config.Config{
		App:      config.AppConfig{Port: "0"},
		Database: config.DatabaseConfig{URL: "ftp://example.com"},
	}

	_, err := Start(context.Background(), cfg)
	assert.Error(t, err)
}
