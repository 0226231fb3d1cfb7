package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORSMiddleware reflects any Origin. The marketing site may be served from
// several hosts (apex, www, preview builds) so no allow-list is kept.
func CORSMiddleware() gin.HandlerFunc {
	policy := cors.New(cors.Options{
		AllowOriginFunc: func(string) bool { return true },
		AllowedMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:  []string{"*"},
		ExposedHeaders:  []string{"X-Request-ID"},
		MaxAge:          86400,
	})

	return func(c *gin.Context) {
		policy.HandlerFunc(c.Writer, c.Request)

		// Preflight requests end here
		if c.Request.Method == http.MethodOptions &&
			c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
