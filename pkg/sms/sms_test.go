package sms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeCreator struct {
	params *api.CreateMessageParams
	err    error
}

func (f *fakeCreator) CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &api.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioSender_Send(t *testing.T) {
	creator := &fakeCreator{}
	sender := &TwilioSender{api: creator, fromNumber: "+15005550006"}

	err := sender.Send(context.Background(), "08031234567", "Your code is 123456")
	require.NoError(t, err)
	require.NotNil(t, creator.params)
	assert.Equal(t, "+2348031234567", *creator.params.To)
	assert.Equal(t, "+15005550006", *creator.params.From)
	assert.Equal(t, "Your code is 123456", *creator.params.Body)
}

func TestTwilioSender_SendError(t *testing.T) {
	sender := &TwilioSender{api: &fakeCreator{err: errors.New("unauthorized")}, fromNumber: "+15005550006"}

	err := sender.Send(context.Background(), "+2348031234567", "hi")
	assert.ErrorContains(t, err, "unauthorized")
}

func TestNew(t *testing.T) {
	assert.IsType(t, LogSender{}, New("", "", ""))
	assert.IsType(t, &TwilioSender{}, New("AC123", "token", "+15005550006"))
}

func TestInternationalFormat(t *testing.T) {
	assert.Equal(t, "+2348031234567", InternationalFormat("08031234567"))
	assert.Equal(t, "+2348031234567", InternationalFormat("+2348031234567"))
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{}.Send(context.Background(), "08031234567", "hi"))
}
