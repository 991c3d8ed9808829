package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/portfolio/internal/models"
)

// MockMailer records sent messages.
type MockMailer struct {
	SendFunc func(ctx context.Context, email Email) error
	Sent     []Email
}

func (m *MockMailer) Send(ctx context.Context, email Email) error {
	m.Sent = append(m.Sent, email)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, email)
	}
	return nil
}

type mockSES struct {
	input *ses.SendEmailInput
	err   error
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-123")}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func validContact() models.ContactRequest {
	return models.ContactRequest{
		Name:    "  Ada Lovelace ",
		Email:   "ada@example.com",
		Subject: "",
		Message: "I would like to talk about <b>engines</b>.",
	}
}

func TestContactService_Submit(t *testing.T) {
	mailer := &MockMailer{}
	svc := NewContactService(mailer, "owner@example.com", testLogger())

	err := svc.Submit(context.Background(), validContact())
	require.NoError(t, err)
	require.Len(t, mailer.Sent, 1)

	sent := mailer.Sent[0]
	assert.Equal(t, "owner@example.com", sent.To)
	assert.Equal(t, "ada@example.com", sent.ReplyTo)
	assert.Equal(t, defaultContactSubject, sent.Subject)
	assert.Contains(t, sent.TextBody, "From: Ada Lovelace <ada@example.com>")
	assert.Contains(t, sent.HTMLBody, "&lt;b&gt;engines&lt;/b&gt;")
	assert.NotContains(t, sent.HTMLBody, "<b>engines</b>")
}

func TestContactService_Honeypot(t *testing.T) {
	mailer := &MockMailer{}
	svc := NewContactService(mailer, "owner@example.com", testLogger())

	req := validContact()
	req.Website = "http://spam.example"

	assert.NoError(t, svc.Submit(context.Background(), req))
	assert.Empty(t, mailer.Sent)
}

func TestContactService_MailerFailure(t *testing.T) {
	mailer := &MockMailer{SendFunc: func(ctx context.Context, email Email) error {
		return errors.New("throttled")
	}}
	svc := NewContactService(mailer, "owner@example.com", testLogger())

	err := svc.Submit(context.Background(), validContact())
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestContactService_Disabled(t *testing.T) {
	svc := NewContactService(nil, "", testLogger())

	err := svc.Submit(context.Background(), validContact())
	assert.ErrorIs(t, err, models.ErrMailDisabled)
}

func TestSESMailer_Send(t *testing.T) {
	client := &mockSES{}
	mailer := newSESMailerWithClient(client, "site@example.com", testLogger())

	err := mailer.Send(context.Background(), Email{
		To:       "owner@example.com",
		ReplyTo:  "ada@example.com",
		Subject:  "Hello",
		TextBody: "plain",
		HTMLBody: "<p>html</p>",
	})
	require.NoError(t, err)

	in := client.input
	require.NotNil(t, in)
	assert.Equal(t, "site@example.com", aws.ToString(in.Source))
	assert.Equal(t, []string{"owner@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"ada@example.com"}, in.ReplyToAddresses)
	assert.Equal(t, "Hello", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "plain", aws.ToString(in.Message.Body.Text.Data))
	assert.Equal(t, "<p>html</p>", aws.ToString(in.Message.Body.Html.Data))
}

func TestSESMailer_TextOnly(t *testing.T) {
	client := &mockSES{}
	mailer := newSESMailerWithClient(client, "site@example.com", testLogger())

	require.NoError(t, mailer.Send(context.Background(), Email{To: "owner@example.com", TextBody: "plain"}))

	assert.Nil(t, client.input.Message.Body.Html)
	assert.Empty(t, client.input.ReplyToAddresses)
}

func TestSESMailer_Error(t *testing.T) {
	client := &mockSES{err: errors.New("MessageRejected")}
	mailer := newSESMailerWithClient(client, "site@example.com", testLogger())

	err := mailer.Send(context.Background(), Email{To: "owner@example.com"})
	assert.ErrorContains(t, err, "MessageRejected")
}

func TestLogMailer_DoesNotLogBody(t *testing.T) {
	var buf bytes.Buffer
	mailer := NewLogMailer(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := mailer.Send(context.Background(), Email{
		ReplyTo:  "ada@example.com",
		Subject:  "Hi",
		TextBody: "secret details",
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "mail disabled")
	assert.NotContains(t, buf.String(), "secret details")
	assert.NotContains(t, buf.String(), "ada@example.com")
}
