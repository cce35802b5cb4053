package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/ravichandra178/mynitrends/internal/repository"
)

const defaultReplyTone = "friendly"

type AutoReplyService interface {
	Generate(ctx context.Context, comment, tone string) (*models.AutoReply, error)
}

type autoReplyService struct {
	ar  repository.AutoReplyRepository
	gen Generator
}

func NewAutoReplyService(ar repository.AutoReplyRepository, gen Generator) AutoReplyService {
	return &autoReplyService{
		ar:  ar,
		gen: gen,
	}
}

func (s *autoReplyService) Generate(ctx context.Context, comment, tone string) (*models.AutoReply, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrInvalidInput)
	}
	if tone == "" {
		tone = defaultReplyTone
	}

	reply := s.gen.Reply(ctx, comment, tone)

	return s.ar.Create(ctx, &models.AutoReply{
		ID:      uuid.NewString(),
		Comment: comment,
		Reply:   reply.Text,
		Source:  reply.Source,
	})
}
