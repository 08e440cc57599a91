package routes

import (
	"github.com/kassslll/creator-studio/backend/controllers"
	"github.com/kassslll/creator-studio/backend/middleware"
	"github.com/kassslll/creator-studio/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// Controllers bundles everything the route table mounts.
type Controllers struct {
	Discovery  *controllers.DiscoveryController
	Content    *controllers.ContentController
	VectorDB   *controllers.VectorDBController
	Curriculum *controllers.CurriculumController
}

// NewApp builds the fiber app with middleware and the full route table.
func NewApp(logger *utils.Logger, ctl Controllers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "creator-studio",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return utils.Error(c, code, err)
		},
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	SetupRoutes(app, ctl)
	return app
}

func SetupRoutes(app *fiber.App, ctl Controllers) {
	api := app.Group("/api")

	// Discovery routes
	api.Post("/discover", ctl.Discovery.Discover)
	api.Get("/discover/stream", ctl.Discovery.DiscoverStream)
	api.Post("/discover/analyze", ctl.Discovery.Analyze)

	// Vector database routes
	vectordb := api.Group("/vectordb")
	vectordb.Post("/search", ctl.VectorDB.Search)
	vectordb.Get("/status", ctl.VectorDB.Status)
	vectordb.Get("/stats", ctl.VectorDB.Stats)

	// Content routes; static paths before /:id
	content := api.Group("/content")
	content.Post("/generate", ctl.Content.Generate)
	content.Post("/generate/stream", ctl.Content.GenerateStream)
	content.Post("/modify", ctl.Content.Modify)
	content.Get("/list", ctl.Content.List)
	content.Get("/recent", ctl.Content.Recent)
	content.Get("/:id", ctl.Content.Get)
	content.Get("/:id/preview", ctl.Content.Preview)
	content.Post("/:id/edit", ctl.Content.Edit)
	content.Post("/:id/quiz/check", ctl.Content.CheckQuiz)

	// Curriculum routes
	api.Get("/curricula", ctl.Curriculum.List)
	api.Get("/curricula/:id", ctl.Curriculum.Get)
}
