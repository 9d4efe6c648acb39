package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"docshelf/internal/web"
)

// Page renders one of the static page shells. The document page receives the raw :id param.
func Page(name, title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return web.Render(c, name, web.PageData{Title: title, DocumentID: c.Params("id")})
	}
}

// Static serves the embedded browser assets.
func Static() fiber.Handler {
	return filesystem.New(filesystem.Config{
		Root: http.FS(web.Static()),
	})
}
