package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody là shape của mọi failure response: {"error": "..."}
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody được dùng cho unmatched routes: {"message": "Not Found"}
type MessageBody struct {
	Message string `json:"message"`
}

// Success responses
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// NoContent writes a 204 with an empty body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error responses
func Error(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Error: message})
}

func Message(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, MessageBody{Message: message})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
