package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ravichandra178/mynitrends/internal/service"
	"github.com/ravichandra178/mynitrends/internal/transfer"
)

type AutoReplyHandler struct {
	s service.AutoReplyService
}

func NewAutoReplyHandler(service service.AutoReplyService) *AutoReplyHandler {
	return &AutoReplyHandler{s: service}
}

func (h *AutoReplyHandler) GenerateAutoReply(c *fiber.Ctx) error {
	var req transfer.AutoReplyRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	reply, err := h.s.Generate(c.Context(), req.Comment, req.Tone)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(reply)
}
