package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ravichandra178/mynitrends/internal/service"
	"github.com/ravichandra178/mynitrends/internal/transfer"
)

type SettingsHandler struct {
	s service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{s: service}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.s.Get(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if settings == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{})
	}
	return c.Status(fiber.StatusOK).JSON(settings)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req transfer.SettingsUpdate
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	settings, err := h.s.Update(c.Context(), req.ToModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(settings)
}
