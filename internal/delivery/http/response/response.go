package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ack is the success body of the contact endpoint
type Ack struct {
	OK bool `json:"ok" example:"true"`
}

// ErrorBody is the only failure shape the API emits
type ErrorBody struct {
	Error string `json:"error" example:"Faltan campos obligatorios"`
}

// Status is the health probe body
type Status struct {
	Status string `json:"status" example:"ok"`
}

// OK sends {"ok": true}
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, Ack{OK: true})
}

// Error sends {"error": message} with the given status
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorBody{Error: message})
}

// AbortWithError sends the error body and stops the handler chain
func AbortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorBody{Error: message})
}
