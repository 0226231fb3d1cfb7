package middleware

import (
	"net/http"

	"humusgarden-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const MsgBodyTooLarge = "El cuerpo de la solicitud es demasiado grande"

// BodyLimit rejects bodies larger than limit bytes. A declared Content-Length
// is checked up front; chunked bodies are capped with http.MaxBytesReader and
// surface as *http.MaxBytesError when decoded.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			response.AbortWithError(c, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
