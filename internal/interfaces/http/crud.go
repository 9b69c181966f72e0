package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// Pasos comunes de los handlers CRUD: leer, validar, delegar y responder.

func createWith[Req, Resp any](c *fiber.Ctx, fn func(context.Context, Req) (*Resp, error)) error {
	var in Req
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := fn(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func getWith[Resp any](c *fiber.Ctx, fn func(context.Context, int64) (*Resp, error)) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := fn(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func updateWith[Req, Resp any](c *fiber.Ctx, fn func(context.Context, int64, Req) (*Resp, error)) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in Req
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := fn(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func listWith[Resp any](c *fiber.Ctx, fn func(context.Context, repository.ListFilter) (*dto.ListResponse[Resp], error)) error {
	f, err := listFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := fn(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func deleteWith(c *fiber.Ctx, fn func(context.Context, int64, *int64) error) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	version, err := ifMatchVersion(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := fn(c.UserContext(), id, version); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
