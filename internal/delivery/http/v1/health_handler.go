package v1

import (
	"net/http"

	"humusgarden-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(r *gin.RouterGroup, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	r.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Status
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthUC.Check(c.Request.Context()))
}
