package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	pkglogger "github.com/BradenHooton/portfolio/pkg/logger"
)

// Email is a single outgoing message.
type Email struct {
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers outgoing messages.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// sesAPI is the part of *ses.Client the mailer uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends emails using AWS SES
type SESMailer struct {
	client      sesAPI
	fromAddress string
	logger      *slog.Logger
}

// NewSESMailer loads the default AWS credential chain for region.
func NewSESMailer(ctx context.Context, region, fromAddress string, logger *slog.Logger) (*SESMailer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newSESMailerWithClient(ses.NewFromConfig(cfg), fromAddress, logger), nil
}

func newSESMailerWithClient(client sesAPI, fromAddress string, logger *slog.Logger) *SESMailer {
	return &SESMailer{
		client:      client,
		fromAddress: fromAddress,
		logger:      logger,
	}
}

func (m *SESMailer) Send(ctx context.Context, email Email) error {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(email.TextBody), Charset: aws.String("UTF-8")},
	}
	if email.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(email.HTMLBody), Charset: aws.String("UTF-8")}
	}

	input := &ses.SendEmailInput{
		Source: aws.String(m.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{email.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(email.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	}
	if email.ReplyTo != "" {
		input.ReplyToAddresses = []string{email.ReplyTo}
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		m.logger.Error("failed to send email via SES",
			slog.String("to", pkglogger.SanitizedEmail(email.To)),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("email sent",
		slog.String("to", pkglogger.SanitizedEmail(email.To)),
		slog.String("message_id", aws.ToString(result.MessageId)))

	return nil
}

// LogMailer records messages in the log instead of sending them. Used when
// contact email is disabled.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, email Email) error {
	m.logger.InfoContext(ctx, "contact email not sent (mail disabled)",
		slog.String("reply_to", pkglogger.SanitizedEmail(email.ReplyTo)),
		slog.String("subject", email.Subject),
		slog.Int("body_length", len(email.TextBody)))
	return nil
}
