package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/ravichandra178/mynitrends/internal/service"
)

type validatable interface {
	Validate() error
}

// parseBody decodes the JSON body into req and validates it. On failure the
// 400 response has already been written and the returned error is the result
// of writing it, so callers should return it as-is when ok is false.
func parseBody(c *fiber.Ctx, req validatable) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if err := req.Validate(); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return true, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrTrendNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrAlreadyPosted),
		errors.Is(err, service.ErrNotPublished),
		errors.Is(err, service.ErrFacebookNotConfigured):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
