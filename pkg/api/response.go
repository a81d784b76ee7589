package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func serverErrorMessage(err error) string {
	return "server error: " + err.Error()
}

// respondError writes {message, ...echo}. echo carries the request input back
// to the caller.
func respondError(c *gin.Context, status int, message string, echo gin.H) {
	body := gin.H{}
	for k, v := range echo {
		body[k] = v
	}
	body["message"] = message
	c.JSON(status, body)
}

// failure reports an unexpected service error, constraint violations included,
// as a 500 carrying the error text.
func (h *Handler) failure(c *gin.Context, err error, echo gin.H) {
	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, serverErrorMessage(err), echo)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "validation error",
		"errors": map[string]string{
			"field": "request",
			"error": err.Error(),
		},
	})
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func cursorQuery(c *gin.Context) int {
	cursor, err := strconv.Atoi(c.DefaultQuery("cursor", "1"))
	if err != nil || cursor < 1 {
		return 1
	}
	return cursor
}
