package handler

import (
	"github.com/gofiber/fiber/v2"

	"exampleapi/internal/model"
	"exampleapi/internal/service"
)

func GetAuthorBio(svc service.AuthorBioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorID, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		bio, err := svc.Get(c.UserContext(), authorID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(bio)
	}
}

// PutAuthorBio creates the author's bio or replaces the existing one.
func PutAuthorBio(svc service.AuthorBioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorID, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in model.AuthorBioInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		bio, err := svc.Put(c.UserContext(), authorID, &in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(bio)
	}
}

func DeleteAuthorBio(svc service.AuthorBioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorID, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), authorID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
