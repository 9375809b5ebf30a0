package services

import (
	"context"

	"github.com/yungbote/gradecalc/internal/platform/logger"
)

type feedbackSender interface {
	Send(ctx context.Context, message string) error
}

type FeedbackService interface {
	Submit(ctx context.Context, message string) error
}

type feedbackService struct {
	log    *logger.Logger
	sender feedbackSender
}

func NewFeedbackService(baseLog *logger.Logger, sender feedbackSender) FeedbackService {
	return &feedbackService{log: baseLog.With("service", "FeedbackService"), sender: sender}
}

func (s *feedbackService) Submit(ctx context.Context, message string) error {
	if err := s.sender.Send(ctx, message); err != nil {
		s.log.Warn("feedback not delivered", "error", err, "message_chars", len([]rune(message)))
		return err
	}
	return nil
}
