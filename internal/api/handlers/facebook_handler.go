package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ravichandra178/mynitrends/internal/service"
	"github.com/ravichandra178/mynitrends/internal/transfer"
)

type FacebookHandler struct {
	s service.PublishService
}

func NewFacebookHandler(service service.PublishService) *FacebookHandler {
	return &FacebookHandler{s: service}
}

func (h *FacebookHandler) PostToFacebook(c *fiber.Ctx) error {
	var req transfer.PostToFacebook
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	facebookPostID, err := h.s.Publish(c.Context(), req.PostID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":        true,
		"facebookPostId": facebookPostID,
	})
}

func (h *FacebookHandler) FetchEngagement(c *fiber.Ctx) error {
	var req transfer.FetchEngagement
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	engagement, err := h.s.RefreshEngagement(c.Context(), req.PostID, req.FacebookPostID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"likes":    engagement.Likes,
		"comments": engagement.Comments,
	})
}

func (h *FacebookHandler) TestConnection(c *fiber.Ctx) error {
	var req transfer.TestConnection
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	page, err := h.s.TestConnection(c.Context(), req.PageID, req.AccessToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"pageName": page.Name,
		"pageId":   page.ID,
	})
}

func (h *FacebookHandler) AutoPost(c *fiber.Ctx) error {
	report, err := h.s.AutoPost(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	resp := fiber.Map{
		"success": true,
		"results": report.Results,
	}
	if report.Message != "" {
		resp["message"] = report.Message
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
