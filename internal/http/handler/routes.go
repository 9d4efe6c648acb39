package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"docshelf/docs"
	"docshelf/internal/service"
	"docshelf/internal/storage"
	"docshelf/internal/web"
)

// Dependencies are the collaborators the routes are built from.
type Dependencies struct {
	DB        *sql.DB
	Documents service.DocumentService
	Comments  service.CommentService
	Metrics   prometheus.Gatherer
	// Blobs backs /blobs/:key; the route is skipped when nil.
	Blobs storage.Storage
	Log   *zap.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Page shells
	app.Get("/", Page(web.PageIndex, "Documents"))
	app.Get("/upload", Page(web.PageUpload, "Upload"))
	app.Get("/document/:id", Page(web.PageDocument, "Document"))
	app.Use("/static", Static())

	api := app.Group("/api/documents")
	api.Get("/", ListDocuments(deps.Documents, log))
	api.Post("/", UploadDocument(deps.Documents, log))
	api.Get("/:id", GetDocument(deps.Documents, log))
	api.Delete("/:id", DeleteDocument(deps.Documents, log))
	api.Get("/:id/download", DownloadDocument(deps.Documents, log))
	api.Get("/:id/comments", ListComments(deps.Comments, log))
	api.Post("/:id/comments", AddComment(deps.Comments, log))

	if deps.Blobs != nil {
		app.Get("/blobs/:key", ServeBlob(deps.Blobs, log))
	}

	app.Get("/health", HealthCheck(deps.DB))
	app.Get("/healthz", LivenessProbe())
	if deps.Metrics != nil {
		app.Get("/metrics", Metrics(deps.Metrics))
	}
	app.Get("/swagger/*", SwaggerUI())
}

// SwaggerUI serves the API docs with host and scheme taken from the request.
func SwaggerUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
