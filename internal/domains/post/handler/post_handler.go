package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

// Generic bodies for storage failures, one per operation.
const (
	msgListFailed   = "something went terribly wrong"
	msgGetFailed    = "something went horribly awry"
	msgCreateFailed = "Something went wrong"
	msgUpdateFailed = "something went wrong"
	msgDeleteFailed = "something went wrong"

	msgPostNotFound   = "Post not found"
	msgAuthorNotFound = "Author not found"
)

type PostHandler struct {
	service service.ServiceInterface
}

func NewPostHandler(svc service.ServiceInterface) *PostHandler {
	return &PostHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /posts
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, msgListFailed)
		return
	}

	response.OK(c, posts)
}

// ════════════════════════════════════════════════════════════════
// GET: GET /posts/:id
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, msgGetFailed)
		return
	}

	response.OK(c, post)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /posts
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, err, msgCreateFailed)
		return
	}

	req, err := model.ParseCreatePostRequest(body)
	if err != nil {
		h.fail(c, err, msgCreateFailed)
		return
	}

	post, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, msgCreateFailed)
		return
	}

	response.Created(c, post)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /posts/:id
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) Update(c *gin.Context) {
	id := c.Param("id")

	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, err, msgUpdateFailed)
		return
	}

	update, err := model.ParseUpdatePostRequest(id, body)
	if err != nil {
		h.fail(c, err, msgUpdateFailed)
		return
	}

	post, err := h.service.Update(c.Request.Context(), id, update)
	if err != nil {
		h.fail(c, err, msgUpdateFailed)
		return
	}

	response.OK(c, post)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /posts/:id
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, msgDeleteFailed)
		return
	}

	response.NoContent(c)
}

// fail writes the response for err. Only storage failures are logged; their
// cause never reaches the client.
func (h *PostHandler) fail(c *gin.Context, err error, generic string) {
	status := model.ToHTTPStatus(err)

	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.Error(c, status, validationErr.Message)
	case errors.Is(err, model.ErrAuthorNotFound):
		response.Error(c, status, msgAuthorNotFound)
	case errors.Is(err, model.ErrPostNotFound):
		response.Error(c, status, msgPostNotFound)
	default:
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("post_id", c.Param("id")).
			Msg("post request failed")
		response.Error(c, status, generic)
	}
}
