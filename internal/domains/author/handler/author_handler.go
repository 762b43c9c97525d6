package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/author/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err, "Something went wrong")
		return
	}

	response.Created(c, created.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: GET /authors, GET /authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "something went wrong")
		return
	}

	response.OK(c, model.ToResponses(authors))
}

func (h *AuthorHandler) GetByID(c *gin.Context) {
	author, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "something went wrong")
		return
	}

	response.OK(c, author.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "something went wrong")
		return
	}

	response.NoContent(c)
}

// fail maps domain errors to their status; anything unknown is logged and
// answered with the generic message.
func (h *AuthorHandler) fail(c *gin.Context, err error, generic string) {
	status := model.ToHTTPStatus(err)
	if status != http.StatusInternalServerError {
		switch {
		case errors.Is(err, model.ErrAuthorNotFound):
			response.NotFound(c, "Author not found")
		case errors.Is(err, model.ErrDuplicateUserName):
			response.Conflict(c, model.ErrDuplicateUserName.Error())
		case errors.Is(err, model.ErrAuthorHasPosts):
			response.Conflict(c, model.ErrAuthorHasPosts.Error())
		default:
			response.Error(c, status, err.Error())
		}
		return
	}

	log.Error().Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("author request failed")
	response.InternalServerError(c, generic)
}
