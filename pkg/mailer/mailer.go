package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"github.com/msquare-lighting/msquare-api/pkg/metrics"
	"github.com/msquare-lighting/msquare-api/pkg/tracing"
)

// Message is a single outbound HTML email.
type Message struct {
	Kind     string // metrics label, e.g. "operator" or "acknowledgement"
	From     string
	To       string
	Subject  string
	HTMLBody string
}

// Mailer sends one message per call. Implementations must not retry.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// Config holds SMTP connection settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// SMTPMailer delivers through an SMTP relay using STARTTLS when offered.
type SMTPMailer struct {
	client *mail.Client
	host   string
}

// NewSMTPMailer creates a new SMTP mailer. It does not connect; each Send
// dials, delivers and disconnects.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	logger.Info("SMTP mailer initialized",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)

	return &SMTPMailer{client: client, host: cfg.Host}, nil
}

// Send delivers msg in a single attempt.
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	ctx, span := tracing.StartSpan(ctx, "mailer.Send")
	defer span.End()

	start := time.Now()

	out, err := BuildMsg(msg)
	if err != nil {
		return err
	}

	err = m.client.DialAndSendWithContext(ctx, out)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		span.RecordError(err)
		metrics.MailDispatchDuration.WithLabelValues(msg.Kind, "error").Observe(duration)
		metrics.MailDispatchTotal.WithLabelValues(msg.Kind, "error").Inc()
		logger.LogAPICall("smtp", msg.Kind, "error", duration,
			zap.Error(err),
			zap.String("host", m.host),
		)
		return fmt.Errorf("failed to send %s email: %w", msg.Kind, err)
	}

	metrics.MailDispatchDuration.WithLabelValues(msg.Kind, "success").Observe(duration)
	metrics.MailDispatchTotal.WithLabelValues(msg.Kind, "success").Inc()
	logger.LogAPICall("smtp", msg.Kind, "success", duration, zap.String("host", m.host))
	return nil
}

// BuildMsg converts msg into a go-mail message, validating addresses.
func BuildMsg(msg *Message) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	return out, nil
}
