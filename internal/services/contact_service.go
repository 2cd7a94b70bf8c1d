package services

import (
	"context"
	"time"

	"github.com/msquare-lighting/msquare-api/internal/models"
	"github.com/msquare-lighting/msquare-api/internal/notify"
	"github.com/msquare-lighting/msquare-api/internal/ratelimit"
	"github.com/msquare-lighting/msquare-api/internal/validation"
	apperrors "github.com/msquare-lighting/msquare-api/pkg/errors"
	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"github.com/msquare-lighting/msquare-api/pkg/metrics"
	"github.com/msquare-lighting/msquare-api/pkg/tracing"
	"go.uber.org/zap"
)

// ContactService admits, validates and dispatches contact form submissions
type ContactService struct {
	limiter  ratelimit.Limiter
	notifier notify.Notifier
}

// NewContactService creates a new contact service instance
func NewContactService(limiter ratelimit.Limiter, notifier notify.Notifier) *ContactService {
	return &ContactService{
		limiter:  limiter,
		notifier: notifier,
	}
}

// Admit consumes one slot of the client's window. A limiter backend failure
// lets the request through so intake keeps working without Redis.
func (s *ContactService) Admit(ctx context.Context, clientKey string) error {
	allowed, err := s.limiter.Allow(ctx, clientKey)
	if err != nil {
		metrics.RateLimitDecisions.WithLabelValues("contact", "error").Inc()
		logger.Warn("Contact rate limiter unavailable, allowing request",
			zap.String("client_key", clientKey),
			zap.Error(err))
		return nil
	}
	if !allowed {
		metrics.RateLimitDecisions.WithLabelValues("contact", "rejected").Inc()
		metrics.ContactFormSubmissions.WithLabelValues("rate_limited").Inc()
		logger.Info("Contact submission rate limited", zap.String("client_key", clientKey))
		return apperrors.ErrRateLimited
	}
	metrics.RateLimitDecisions.WithLabelValues("contact", "allowed").Inc()
	return nil
}

// Submit validates sub and hands it to the notifier. Validation failures
// return a *ValidationError, dispatch failures a *NotifyError.
func (s *ContactService) Submit(ctx context.Context, sub *models.Submission) error {
	ctx, span := tracing.StartSpan(ctx, "ContactService.Submit")
	defer span.End()

	if err := apperrors.NewValidationError(validation.ValidateSubmission(sub)); err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("validation_failed").Inc()
		return err
	}

	start := time.Now()
	if err := s.notifier.Notify(ctx, sub); err != nil {
		span.RecordError(err)
		metrics.ContactFormSubmissions.WithLabelValues("notify_failed").Inc()
		logger.Error("Failed to dispatch contact notification",
			zap.Error(err),
			zap.String("project_type", sub.ProjectType),
			zap.Float64("duration", metrics.MeasureDuration(start)))
		return apperrors.NotifyFailure(err)
	}

	metrics.ContactFormSubmissions.WithLabelValues("success").Inc()
	logger.Info("Contact submission accepted",
		zap.String("project_type", sub.ProjectType),
		zap.Float64("duration", metrics.MeasureDuration(start)))
	return nil
}
