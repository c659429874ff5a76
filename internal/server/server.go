package server

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/openmol/drugforge/internal/config"
	"github.com/openmol/drugforge/internal/handlers"
	"github.com/openmol/drugforge/internal/middleware"
	"github.com/openmol/drugforge/internal/services"
	"github.com/openmol/drugforge/internal/types"
	"gorm.io/gorm"
)

// New assembles the Fiber application: global middleware, metrics, swagger,
// and the full route table. The Generator is injected so tests can swap in a
// mock upstream.
func New(cfg *config.Config, db *gorm.DB, gemini services.Generator) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientOrigin,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))

	prometheus := fiberprometheus.New("drugforge")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	app.Get("/swagger/*", swagger.HandlerDefault)

	tokens := services.NewTokenManager(cfg)
	protect := middleware.Protect(db, tokens)

	authHandler := &handlers.AuthHandler{DB: db, Tokens: tokens}
	moleculeHandler := &handlers.MoleculeHandler{DB: db, Gemini: gemini}
	drugNameHandler := &handlers.DrugNameHandler{DB: db, Gemini: gemini}
	paperHandler := &handlers.PaperHandler{DB: db}
	searchHandler := &handlers.SearchHandler{DB: db}
	proxyHandler := &handlers.ProxyHandler{Gemini: gemini}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}

	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/profile", protect, authHandler.Profile)

	protein := api.Group("/protein")

	protein.Get("/generatednewmolecule", protect, moleculeHandler.List)
	protein.Post("/generatenewmolecule/:id", protect, moleculeHandler.Generate)

	protein.Post("/generate-drug-name/:id", protect, drugNameHandler.Generate)
	protein.Get("/saved-drug-names", protect, drugNameHandler.List)
	protein.Get("/check-saved-drug-name", protect, drugNameHandler.CheckSaved)

	protein.Post("/save-research-papers", protect, paperHandler.SaveResearch)
	protein.Get("/saved-research-papers", protect, paperHandler.ListResearch)
	protein.Get("/check-saved-papers", protect, paperHandler.CheckResearch)
	protein.Post("/save-generated-research-paper", protect, paperHandler.SaveGenerated)
	protein.Get("/saved-generated-research-papers", protect, paperHandler.ListGenerated)
	protein.Get("/check-saved-generated-papers", protect, paperHandler.CheckGenerated)

	protein.Post("/convert-file-to-smiles", protect, searchHandler.ConvertFile)
	protein.Post("/rdkit-fingerprints", protect, searchHandler.Fingerprints)
	protein.Post("/docking", protect, searchHandler.Docking)
	protein.Post("/save-search", protect, searchHandler.Save)
	protein.Get("/saved-searches", protect, searchHandler.List)
	protein.Get("/check-saved-searches", protect, searchHandler.CheckSaved)

	protein.Post("/proxy/gemini", proxyHandler.ProxyGemini)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Resource Not Found",
		})
	})

	return app
}

// ErrorHandler translates any error escaping a handler into the JSON error
// shape the SPA renders.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	if apiErr, ok := types.AsAPIError(err); ok {
		code = apiErr.Code
		message = apiErr.Message
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
