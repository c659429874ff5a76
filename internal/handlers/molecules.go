package handlers

import (
	"bufio"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/openmol/drugforge/internal/middleware"
	"github.com/openmol/drugforge/internal/services"
	"github.com/openmol/drugforge/internal/types"
	"github.com/openmol/drugforge/internal/utils"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"
)

// MoleculeHandler handles generated-molecule routes
type MoleculeHandler struct {
	DB     *gorm.DB
	Gemini services.Generator
}

type generateMoleculeRequest struct {
	SmilesOfFirst    string `json:"smilesoffirst"`
	SmilesOfSecond   string `json:"smilesofsecond"`
	NewMoleculeTitle string `json:"newmoleculetitle"`
}

// List handles GET /api/protein/generatednewmolecule
// @Summary List generated molecules
// @Description List the caller's generated molecules, oldest first
// @Tags Molecules
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/generatednewmolecule [get]
func (h *MoleculeHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	molecules, err := services.ListGeneratedMolecules(h.DB, user.ID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"molecules": molecules,
	}, fiber.StatusOK)
}

// Generate handles POST /api/protein/generatenewmolecule/:id
//
// The response is a text/event-stream relay of the upstream generation.
// Chunks arrive as "data: ..." events; the stream ends with "data: [DONE]".
// On successful completion the parsed molecule is persisted once. A client
// disconnect surfaces as a write error inside the stream writer, which aborts
// the upstream call through the emit callback.
//
// @Summary Generate a new molecule
// @Description Stream the generation of a hybrid molecule from two source SMILES
// @Tags Molecules
// @Accept json
// @Produce text/event-stream
// @Param id path string true "User ID"
// @Param body body generateMoleculeRequest true "Source molecules"
// @Success 200 {string} string "SSE stream"
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /protein/generatenewmolecule/{id} [post]
func (h *MoleculeHandler) Generate(c *fiber.Ctx) error {
	var in generateMoleculeRequest
	if err := c.BodyParser(&in); err != nil {
		return types.Validation("All fields are required.")
	}
	if in.SmilesOfFirst == "" || in.SmilesOfSecond == "" || in.NewMoleculeTitle == "" {
		return types.Validation("All fields are required.")
	}

	user := middleware.CurrentUser(c)
	prompt := services.BuildMoleculePrompt(in.NewMoleculeTitle, in.SmilesOfFirst, in.SmilesOfSecond)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	// Capture everything the stream writer needs; the handler returns before
	// the writer runs and c must not be touched after that.
	db := h.DB
	gemini := h.Gemini
	userID := user.ID
	input := in
	reqCtx := c.Context()

	reqCtx.SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		full, err := gemini.StreamGenerateContent(reqCtx, prompt, func(chunk string) error {
			if err := writeSSE(w, chunk); err != nil {
				return err
			}
			return w.Flush()
		})
		if err != nil {
			// Upstream failure or client disconnect: surface an error event
			// and persist nothing.
			log.Printf("Molecule generation aborted for user %s: %v", userID, err)
			_ = writeSSE(w, fmt.Sprintf("Error: generation failed: %v", err))
			fmt.Fprint(w, "data: [DONE]\n\n")
			_ = w.Flush()
			return
		}

		parsed := services.ParseMoleculeOutput(full)
		parsed.Title = input.NewMoleculeTitle
		parsed.SourceSmilesA = input.SmilesOfFirst
		parsed.SourceSmilesB = input.SmilesOfSecond

		if _, err := services.SaveGeneratedMolecule(db, userID, parsed); err != nil {
			log.Printf("Failed to persist generated molecule for user %s: %v", userID, err)
			_ = writeSSE(w, "Error: failed to save generated molecule")
		}

		fmt.Fprint(w, "data: [DONE]\n\n")
		_ = w.Flush()
	}))

	return nil
}

// writeSSE writes one chunk as server-sent-event data lines. Chunks may span
// multiple lines; each line gets its own data: prefix.
func writeSSE(w *bufio.Writer, chunk string) error {
	for _, line := range strings.Split(chunk, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}
