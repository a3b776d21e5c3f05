package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"exampleapi/internal/model"
	"exampleapi/internal/service"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Blogs      service.Resource[model.Blog, model.BlogInput]
	Entries    service.Resource[model.Entry, model.EntryInput]
	Authors    service.Resource[model.Author, model.AuthorInput]
	Comments   service.Resource[model.Comment, model.CommentInput]
	Datum      service.Resource[model.ProfileDatum, model.ProfileDatumInput]
	Categories service.Resource[model.FacebookAdTargetingCategory, model.FacebookAdTargetingCategoryInput]
	Targets    service.Resource[model.Target, model.TargetInput]
	Profiles   service.Resource[model.Profile, model.ProfileInput]
	AuthorBios service.AuthorBioService
}

// collections lists the registered collection paths in API root order.
var collections = []string{"blogs", "entries", "authors", "comments", "datum", "categories", "targets", "profiles"}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Paths carry no trailing slash; the app is expected to run with StrictRouting.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/", APIRoot())

	RegisterResource(app, "/blogs", svcs.Blogs)
	RegisterResource(app, "/entries", svcs.Entries)
	RegisterResource(app, "/authors", svcs.Authors)
	RegisterResource(app, "/comments", svcs.Comments)
	RegisterResource(app, "/datum", svcs.Datum)
	RegisterResource(app, "/categories", svcs.Categories)
	RegisterResource(app, "/targets", svcs.Targets)
	RegisterResource(app, "/profiles", svcs.Profiles)

	app.Get("/authors/:id/bio", GetAuthorBio(svcs.AuthorBios))
	app.Put("/authors/:id/bio", PutAuthorBio(svcs.AuthorBios))
	app.Delete("/authors/:id/bio", DeleteAuthorBio(svcs.AuthorBios))
}

// HealthCheck checks DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// APIRoot lists the absolute URL of every collection.
func APIRoot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		base := c.BaseURL()
		out := make(fiber.Map, len(collections))
		for _, name := range collections {
			out[name] = base + "/" + name
		}
		return c.JSON(out)
	}
}
