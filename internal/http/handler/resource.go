package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"exampleapi/internal/service"
)

// RegisterResource exposes svc as a collection at path:
//
//	GET    path       list
//	POST   path       create
//	GET    path/:id   retrieve
//	PUT    path/:id   full update
//	PATCH  path/:id   partial update
//	DELETE path/:id   delete
func RegisterResource[T any, In any](router fiber.Router, path string, svc service.Resource[T, In]) {
	router.Get(path, ListResource(svc))
	router.Post(path, CreateResource(svc))
	router.Get(path+"/:id", GetResource(svc))
	router.Put(path+"/:id", UpdateResource(svc))
	router.Patch(path+"/:id", PatchResource(svc))
	router.Delete(path+"/:id", DeleteResource(svc))
}

// ListResource handles GET on a collection with limit & offset.
// Limits above service.MaxLimit are capped by the service.
func ListResource[T any, In any](svc service.Resource[T, In]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(service.DefaultLimit)))
		if err != nil || limit < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil || offset < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func CreateResource[T any, In any](svc service.Resource[T, In]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := new(In)
		if err := c.BodyParser(in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		item, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

func GetResource[T any, In any](svc service.Resource[T, In]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		item, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

func UpdateResource[T any, In any](svc service.Resource[T, In]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		in := new(In)
		if err := c.BodyParser(in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		item, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// PatchResource decodes the body over the stored fields so that omitted
// fields keep their current value.
func PatchResource[T any, In any](svc service.Resource[T, In]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		item, err := svc.Patch(c.UserContext(), id, func(in *In) error {
			return c.BodyParser(in)
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

func DeleteResource[T any, In any](svc service.Resource[T, In]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// parseID reads the :id route parameter. IDs are positive integers.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
