package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openmol/drugforge/internal/services"
	"github.com/openmol/drugforge/internal/types"
	"github.com/openmol/drugforge/internal/utils"
)

// ProxyHandler relays single-shot prompts to the upstream model so the SPA
// never holds the API key.
type ProxyHandler struct {
	Gemini services.Generator
}

type proxyRequest struct {
	Prompt string `json:"prompt"`
}

// ProxyGemini handles POST /api/protein/proxy/gemini
// @Summary Proxy a prompt to the generative model
// @Tags Proxy
// @Accept json
// @Produce json
// @Param body body proxyRequest true "Prompt"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /protein/proxy/gemini [post]
func (h *ProxyHandler) ProxyGemini(c *fiber.Ctx) error {
	var in proxyRequest
	if err := c.BodyParser(&in); err != nil {
		return types.Validation("Prompt is required")
	}
	if in.Prompt == "" {
		return types.Validation("Prompt is required")
	}

	content, err := h.Gemini.GenerateContent(c.Context(), in.Prompt)
	if err != nil {
		return types.Upstream("Upstream generation failed")
	}

	return utils.SuccessResponse(c, fiber.Map{
		"content": content,
	}, fiber.StatusOK)
}
