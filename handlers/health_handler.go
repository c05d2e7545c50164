package handlers

import (
	"net/http"
	"time"

	"multimodel-api/config"
	"multimodel-api/models"
	"multimodel-api/services"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	config *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{config: cfg}
}

// Health reports whether provider configuration is complete
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	now := time.Now().UTC().Format(timestampLayout)

	if err := services.ValidateAPIKeys(h.config); err != nil {
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{
			Status:    "unhealthy",
			Error:     err.Error(),
			Timestamp: now,
		})
		return
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:      "healthy",
		Timestamp:   now,
		Environment: h.config.Server.Environment,
		Models: &models.ModelFlags{
			DeepSeek: h.config.Providers.ModelsSet.DeepSeek,
			Qwen:     h.config.Providers.ModelsSet.Qwen,
			Gemini:   h.config.Providers.ModelsSet.Gemini,
		},
	})
}
