package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/ravichandra178/mynitrends/internal/queue"
	"github.com/ravichandra178/mynitrends/internal/service"
	"github.com/ravichandra178/mynitrends/internal/transfer"
)

type PostHandler struct {
	s           service.PostService
	AsynqClient *asynq.Client
}

// NewPostHandler builds the post routes. asynqClient may be nil, in which
// case scheduled posts are left to the auto-post job.
func NewPostHandler(service service.PostService, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: service, AsynqClient: asynqClient}
}

func (h *PostHandler) GeneratePost(c *fiber.Ctx) error {
	var req transfer.PostGeneration
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	post, err := h.s.Generate(c.Context(), req.TrendID, req.Topic)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.s.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	var req transfer.PostUpdate
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	post, err := h.s.Update(c.Context(), c.Params("id"), req.ToModel())
	if err != nil {
		return respondError(c, err)
	}

	if h.AsynqClient != nil && req.ScheduledTimeSet && post.ScheduledTime != nil {
		delay := time.Until(*post.ScheduledTime)
		if delay > 0 {
			payload := queue.PublishPostPayload{PostID: post.ID, ScheduledAt: *post.ScheduledTime}
			if err := queue.EnqueuePublish(h.AsynqClient, payload, delay); err != nil {
				slog.Error("failed to enqueue scheduled publish", "post_id", post.ID, "error", err)
			}
		}
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *PostHandler) PostHistory(c *fiber.Ctx) error {
	history, err := h.s.History(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(history)
}
