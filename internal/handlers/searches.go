package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/openmol/drugforge/internal/middleware"
	"github.com/openmol/drugforge/internal/services"
	"github.com/openmol/drugforge/internal/types"
	"github.com/openmol/drugforge/internal/utils"
	"gorm.io/gorm"
)

// SearchHandler handles target-prediction search routes
type SearchHandler struct {
	DB *gorm.DB
}

type smilesRequest struct {
	Smiles string `json:"smiles"`
}

// Save handles POST /api/protein/save-search
// @Summary Save a target-prediction search
// @Tags Searches
// @Accept json
// @Produce json
// @Param body body services.SearchInput true "Search payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /protein/save-search [post]
func (h *SearchHandler) Save(c *fiber.Ctx) error {
	var in services.SearchInput
	if err := c.BodyParser(&in); err != nil {
		return types.Validation("Invalid request body")
	}
	if in.Smiles == "" {
		return types.Validation("SMILES string is required")
	}

	user := middleware.CurrentUser(c)

	search, err := services.SaveTargetSearch(h.DB, user.ID, in)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"success": true,
		"search":  search,
	}, fiber.StatusCreated)
}

// List handles GET /api/protein/saved-searches
// @Summary List saved searches
// @Tags Searches
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/saved-searches [get]
func (h *SearchHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	searches, err := services.ListTargetSearches(h.DB, user.ID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"searches": searches,
	}, fiber.StatusOK)
}

// CheckSaved handles GET /api/protein/check-saved-searches?smiles
// @Summary Check whether a search is saved
// @Tags Searches
// @Produce json
// @Param smiles query string true "Molecule SMILES"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/check-saved-searches [get]
func (h *SearchHandler) CheckSaved(c *fiber.Ctx) error {
	smiles := c.Query("smiles")
	if smiles == "" {
		return types.Validation("smiles is required")
	}

	user := middleware.CurrentUser(c)

	exists, err := services.TargetSearchExists(h.DB, user.ID, smiles)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"exists": exists,
	}, fiber.StatusOK)
}

// Fingerprints handles POST /api/protein/rdkit-fingerprints
// @Summary Compute molecular fingerprints
// @Description Compute simulated Morgan and MACCS fingerprint embeddings for a SMILES string
// @Tags Searches
// @Accept json
// @Produce json
// @Param body body smilesRequest true "Molecule SMILES"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/rdkit-fingerprints [post]
func (h *SearchHandler) Fingerprints(c *fiber.Ctx) error {
	var in smilesRequest
	if err := c.BodyParser(&in); err != nil {
		return types.Validation("SMILES string is required")
	}

	fingerprints, err := services.ComputeFingerprints(in.Smiles)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"fingerprints": fingerprints,
	}, fiber.StatusOK)
}

// Docking handles POST /api/protein/docking
// @Summary Run a docking simulation
// @Description Run a simulated molecular docking for a SMILES string
// @Tags Searches
// @Accept json
// @Produce json
// @Param body body smilesRequest true "Molecule SMILES"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/docking [post]
func (h *SearchHandler) Docking(c *fiber.Ctx) error {
	var in smilesRequest
	if err := c.BodyParser(&in); err != nil {
		return types.Validation("SMILES string is required")
	}

	results, err := services.PerformDocking(in.Smiles)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"results": results,
	}, fiber.StatusOK)
}

// ConvertFile handles POST /api/protein/convert-file-to-smiles
// @Summary Convert a chemistry file to SMILES
// @Description Extract a SMILES string from an uploaded .smi, .mol or .sdf file
// @Tags Searches
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Chemistry file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/convert-file-to-smiles [post]
func (h *SearchHandler) ConvertFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return types.Validation("A file upload is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return types.Validation("Uploaded file could not be read")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return types.Validation("Uploaded file could not be read")
	}

	smiles, err := services.ConvertFileToSmiles(fileHeader.Filename, content)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"smiles": smiles,
	}, fiber.StatusOK)
}
