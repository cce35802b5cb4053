package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ravichandra178/mynitrends/internal/service"
	"github.com/ravichandra178/mynitrends/internal/transfer"
)

type TrendHandler struct {
	s service.TrendService
}

func NewTrendHandler(service service.TrendService) *TrendHandler {
	return &TrendHandler{s: service}
}

func (h *TrendHandler) ListTrends(c *fiber.Ctx) error {
	trends, err := h.s.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(trends)
}

func (h *TrendHandler) CreateTrend(c *fiber.Ctx) error {
	var req transfer.TrendCreation
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	trend, err := h.s.Create(c.Context(), req.Topic, req.Source)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(trend)
}

func (h *TrendHandler) GenerateTrends(c *fiber.Ctx) error {
	result, err := h.s.Generate(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
