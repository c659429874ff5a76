package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openmol/drugforge/internal/middleware"
	"github.com/openmol/drugforge/internal/services"
	"github.com/openmol/drugforge/internal/types"
	"github.com/openmol/drugforge/internal/utils"
	"gorm.io/gorm"
)

// PaperHandler handles research-paper bundle routes
type PaperHandler struct {
	DB *gorm.DB
}

type moleculeRef struct {
	Title  string `json:"title"`
	Smiles string `json:"smiles"`
}

type saveResearchPapersRequest struct {
	Molecule moleculeRef                    `json:"molecule"`
	Papers   types.FlexList[services.Paper] `json:"papers"`
}

type saveGeneratedPaperRequest struct {
	Molecule moleculeRef             `json:"molecule"`
	Paper    services.GeneratedPaper `json:"paper"`
}

// SaveResearch handles POST /api/protein/save-research-papers
// @Summary Save a research paper bundle
// @Tags Papers
// @Accept json
// @Produce json
// @Param body body saveResearchPapersRequest true "Molecule and papers"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /protein/save-research-papers [post]
func (h *PaperHandler) SaveResearch(c *fiber.Ctx) error {
	var in saveResearchPapersRequest
	if err := c.BodyParser(&in); err != nil {
		return types.Validation("Invalid request body")
	}
	if in.Molecule.Title == "" || in.Molecule.Smiles == "" {
		return types.Validation("Molecule title and SMILES are required")
	}
	papers := in.Papers.Slice()
	if len(papers) == 0 {
		return types.Validation("At least one paper is required")
	}

	user := middleware.CurrentUser(c)

	bundle, err := services.SaveResearchPapers(h.DB, user.ID, in.Molecule.Title, in.Molecule.Smiles, papers)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"success": true,
		"bundle":  bundle,
	}, fiber.StatusCreated)
}

// ListResearch handles GET /api/protein/saved-research-papers
// @Summary List saved research paper bundles
// @Tags Papers
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/saved-research-papers [get]
func (h *PaperHandler) ListResearch(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	bundles, err := services.ListResearchPapers(h.DB, user.ID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"papers": bundles,
	}, fiber.StatusOK)
}

// CheckResearch handles GET /api/protein/check-saved-papers?title&smiles
// @Summary Check whether a research bundle is saved
// @Tags Papers
// @Produce json
// @Param title query string true "Molecule title"
// @Param smiles query string true "Molecule SMILES"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/check-saved-papers [get]
func (h *PaperHandler) CheckResearch(c *fiber.Ctx) error {
	title := c.Query("title")
	smiles := c.Query("smiles")
	if title == "" || smiles == "" {
		return types.Validation("title and smiles are required")
	}

	user := middleware.CurrentUser(c)

	exists, err := services.ResearchPapersExist(h.DB, user.ID, title, smiles)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"exists": exists,
	}, fiber.StatusOK)
}

// SaveGenerated handles POST /api/protein/save-generated-research-paper
// @Summary Save a generated paper
// @Tags Papers
// @Accept json
// @Produce json
// @Param body body saveGeneratedPaperRequest true "Molecule and generated paper"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /protein/save-generated-research-paper [post]
func (h *PaperHandler) SaveGenerated(c *fiber.Ctx) error {
	var in saveGeneratedPaperRequest
	if err := c.BodyParser(&in); err != nil {
		return types.Validation("Invalid request body")
	}
	if in.Molecule.Title == "" || in.Molecule.Smiles == "" {
		return types.Validation("Molecule title and SMILES are required")
	}
	if in.Paper.Title == "" {
		return types.Validation("Paper content is required")
	}

	user := middleware.CurrentUser(c)

	bundle, err := services.SaveGeneratedPaper(h.DB, user.ID, in.Molecule.Title, in.Molecule.Smiles, in.Paper)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"success": true,
		"bundle":  bundle,
	}, fiber.StatusCreated)
}

// ListGenerated handles GET /api/protein/saved-generated-research-papers
// @Summary List saved generated papers
// @Tags Papers
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/saved-generated-research-papers [get]
func (h *PaperHandler) ListGenerated(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	bundles, err := services.ListGeneratedPapers(h.DB, user.ID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"papers": bundles,
	}, fiber.StatusOK)
}

// CheckGenerated handles GET /api/protein/check-saved-generated-papers?title&smiles
// @Summary Check whether a generated paper is saved
// @Tags Papers
// @Produce json
// @Param title query string true "Molecule title"
// @Param smiles query string true "Molecule SMILES"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/check-saved-generated-papers [get]
func (h *PaperHandler) CheckGenerated(c *fiber.Ctx) error {
	title := c.Query("title")
	smiles := c.Query("smiles")
	if title == "" || smiles == "" {
		return types.Validation("title and smiles are required")
	}

	user := middleware.CurrentUser(c)

	exists, err := services.GeneratedPaperExists(h.DB, user.ID, title, smiles)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"exists": exists,
	}, fiber.StatusOK)
}
