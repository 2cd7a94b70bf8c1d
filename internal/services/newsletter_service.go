package services

import (
	"context"

	"github.com/msquare-lighting/msquare-api/internal/validation"
	apperrors "github.com/msquare-lighting/msquare-api/pkg/errors"
	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"github.com/msquare-lighting/msquare-api/pkg/metrics"
	"go.uber.org/zap"
)

// NewsletterService records newsletter signups. Addresses are only logged;
// there is no subscriber list to persist them to.
type NewsletterService struct{}

func NewNewsletterService() *NewsletterService {
	return &NewsletterService{}
}

// Subscribe accepts email when it passes the contact email rule.
func (s *NewsletterService) Subscribe(_ context.Context, email string) error {
	if !validation.IsValidEmail(email) {
		metrics.NewsletterSubscriptions.WithLabelValues("invalid").Inc()
		return apperrors.InvalidInputError("email", "not a valid email address")
	}
	metrics.NewsletterSubscriptions.WithLabelValues("success").Inc()
	logger.Info("Newsletter subscription", zap.String("email", email))
	return nil
}
