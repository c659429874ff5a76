package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/openmol/drugforge/internal/middleware"
	"github.com/openmol/drugforge/internal/services"
	"github.com/openmol/drugforge/internal/types"
	"github.com/openmol/drugforge/internal/utils"
	"gorm.io/gorm"
)

// DrugNameHandler handles AI naming routes
type DrugNameHandler struct {
	DB     *gorm.DB
	Gemini services.Generator
}

type generateDrugNameRequest struct {
	MoleculeTitle string `json:"moleculeTitle"`
	Smiles        string `json:"smiles"`
}

// Generate handles POST /api/protein/generate-drug-name/:id
//
// Generates ranked name candidates via the upstream model, persists the top
// candidate, and returns all candidates. A molecule whose name was already
// saved yields 409 so the SPA can redirect to the saved list.
//
// @Summary Generate drug name candidates
// @Description Generate ranked naming candidates for a saved molecule; the top candidate is persisted
// @Tags DrugNames
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body generateDrugNameRequest true "Molecule natural key"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /protein/generate-drug-name/{id} [post]
func (h *DrugNameHandler) Generate(c *fiber.Ctx) error {
	var in generateDrugNameRequest
	if err := c.BodyParser(&in); err != nil {
		return types.Validation("All fields are required")
	}
	if in.MoleculeTitle == "" || in.Smiles == "" {
		return types.Validation("All fields are required")
	}

	user := middleware.CurrentUser(c)

	exists, err := services.DrugNameExists(h.DB, user.ID, in.MoleculeTitle, in.Smiles)
	if err != nil {
		return err
	}
	if exists {
		return types.ConflictSave("Drug name already generated for this molecule")
	}

	var (
		candidates []services.DrugNameCandidate
		fallback   string
	)

	raw, err := h.Gemini.GenerateContent(c.Context(), services.BuildDrugNamePrompt(in.MoleculeTitle, in.Smiles))
	if err != nil {
		return types.Upstream("Drug name generation failed")
	}

	candidates, parseErr := services.ParseDrugNameCandidates(raw)
	if parseErr != nil {
		log.Printf("Drug name output unparsable for user %s: %v", user.ID, parseErr)
		candidates = []services.DrugNameCandidate{services.FallbackDrugName(in.MoleculeTitle)}
		fallback = "AI naming output could not be parsed; a fallback name was generated instead."
	}

	top := candidates[0]
	record, err := services.SaveDrugName(h.DB, user.ID, in.MoleculeTitle, in.Smiles, top.Name, top.Rationale)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"success":       true,
		"suggestedName": record.SuggestedName,
		"namingDetails": record.NamingDetails,
		"allCandidates": candidates,
		"fallback":      fallback,
	}, fiber.StatusOK)
}

// List handles GET /api/protein/saved-drug-names
// @Summary List saved drug names
// @Tags DrugNames
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/saved-drug-names [get]
func (h *DrugNameHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	names, err := services.ListDrugNames(h.DB, user.ID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"drugNames": names,
	}, fiber.StatusOK)
}

// CheckSaved handles GET /api/protein/check-saved-drug-name?moleculeTitle&smiles
// @Summary Check whether a drug name is saved
// @Tags DrugNames
// @Produce json
// @Param moleculeTitle query string true "Molecule title"
// @Param smiles query string true "Molecule SMILES"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/check-saved-drug-name [get]
func (h *DrugNameHandler) CheckSaved(c *fiber.Ctx) error {
	moleculeTitle := c.Query("moleculeTitle")
	smiles := c.Query("smiles")
	if moleculeTitle == "" || smiles == "" {
		return types.Validation("moleculeTitle and smiles are required")
	}

	user := middleware.CurrentUser(c)

	exists, err := services.DrugNameExists(h.DB, user.ID, moleculeTitle, smiles)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"exists": exists,
	}, fiber.StatusOK)
}
