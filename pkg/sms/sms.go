package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type messageCreator interface {
	CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error)
}

type TwilioSender struct {
	api        messageCreator
	fromNumber string
}

func NewTwilioSender(accountSID, authToken, fromNumber string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{
		api:        client.Api,
		fromNumber: fromNumber,
	}
}

func (t *TwilioSender) Send(ctx context.Context, to, body string) error {
	params := &api.CreateMessageParams{}
	params.SetTo(InternationalFormat(to))
	params.SetFrom(t.fromNumber)
	params.SetBody(body)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		zap.L().Error("failed to send sms", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("send sms: %w", err)
	}
	if resp.Sid != nil {
		zap.L().Debug("sms sent", zap.String("sid", *resp.Sid))
	}
	return nil
}

// LogSender writes messages to the log. Used when no SMS provider is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, body string) error {
	zap.L().Info("sms", zap.String("to", to), zap.String("body", body))
	return nil
}

// New picks Twilio when credentials are present and the log sender otherwise.
func New(accountSID, authToken, fromNumber string) Sender {
	if accountSID == "" || authToken == "" || fromNumber == "" {
		zap.L().Warn("twilio is not configured, sms will only be logged")
		return LogSender{}
	}
	return NewTwilioSender(accountSID, authToken, fromNumber)
}

// InternationalFormat rewrites a local Nigerian number 0XXXXXXXXXX as +234XXXXXXXXXX.
func InternationalFormat(phone string) string {
	if len(phone) == 11 && phone[0] == '0' {
		return "+234" + phone[1:]
	}
	return phone
}
