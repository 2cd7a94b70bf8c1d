// Package notify delivers accepted contact submissions to the studio and
// acknowledges them to the visitor.
package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/msquare-lighting/msquare-api/internal/models"
	"github.com/msquare-lighting/msquare-api/pkg/mailer"
	"github.com/msquare-lighting/msquare-api/pkg/tracing"
)

// Notifier hands a validated submission to a notification channel.
type Notifier interface {
	Notify(ctx context.Context, sub *models.Submission) error
}

// LogNotifier records submissions in the log instead of sending mail. It is
// what runs when no SMTP credentials are configured.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier creates a log-only notifier writing to log.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

// Notify writes every submitted field and always succeeds.
func (n *LogNotifier) Notify(_ context.Context, sub *models.Submission) error {
	n.log.Info("Contact form submission",
		zap.String("channel", "log"),
		zap.String("name", sub.Name),
		zap.String("email", sub.Email),
		zap.String("phone", sub.Phone),
		zap.String("project_type", sub.ProjectType),
		zap.String("message", sub.Message),
	)
	return nil
}

// MailConfig addresses for the mail notifier.
type MailConfig struct {
	From          string
	OperatorEmail string
	SiteURL       string
}

// MailNotifier sends the operator notification, then the visitor's
// acknowledgement. The first failed send ends the attempt.
type MailNotifier struct {
	mailer mailer.Mailer
	cfg    MailConfig
}

// NewMailNotifier creates a notifier dispatching through m.
func NewMailNotifier(m mailer.Mailer, cfg MailConfig) *MailNotifier {
	return &MailNotifier{mailer: m, cfg: cfg}
}

// Notify implements Notifier.
func (n *MailNotifier) Notify(ctx context.Context, sub *models.Submission) error {
	ctx, span := tracing.StartSpan(ctx, "notify.Mail")
	defer span.End()

	operator, ack, err := n.Compose(sub)
	if err != nil {
		return err
	}

	if err := n.mailer.Send(ctx, operator); err != nil {
		return fmt.Errorf("operator notification: %w", err)
	}
	if err := n.mailer.Send(ctx, ack); err != nil {
		return fmt.Errorf("acknowledgement: %w", err)
	}
	return nil
}

// Compose renders the operator and acknowledgement messages for sub.
func (n *MailNotifier) Compose(sub *models.Submission) (operator, ack *mailer.Message, err error) {
	data := newTemplateData(sub, n.cfg.SiteURL)

	operatorBody, err := render(operatorTemplate, data)
	if err != nil {
		return nil, nil, err
	}
	ackBody, err := render(acknowledgementTemplate, data)
	if err != nil {
		return nil, nil, err
	}

	operator = &mailer.Message{
		Kind:     "operator",
		From:     n.cfg.From,
		To:       n.cfg.OperatorEmail,
		Subject:  operatorSubject(sub),
		HTMLBody: operatorBody,
	}
	ack = &mailer.Message{
		Kind:     "acknowledgement",
		From:     n.cfg.From,
		To:       sub.Email,
		Subject:  acknowledgementSubject,
		HTMLBody: ackBody,
	}
	return operator, ack, nil
}

var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*MailNotifier)(nil)
)
