package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openmol/drugforge/internal/config"
	"github.com/openmol/drugforge/internal/services"
	"gorm.io/gorm"
)

// HealthHandler handles the service health report
type HealthHandler struct {
	Cfg *config.Config
	DB  *gorm.DB
}

// Check handles GET /api/health
// @Summary Service health
// @Description Report database and upstream connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
