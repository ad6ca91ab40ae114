package service

import (
	"context"
	"fmt"

	"pesapoint-backend/internal/logger"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type twilioSMSSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSMSSender(accountSID, authToken, fromNumber string) SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &twilioSMSSender{client: client, from: fromNumber}
}

func (s *twilioSMSSender) Send(ctx context.Context, to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	logger.ExternalServiceCall("twilio", "create_message")
	_, err := s.client.Api.CreateMessage(params)
	logger.ExternalServiceResult("twilio", "create_message", err)
	if err != nil {
		return fmt.Errorf("sending sms: %w", err)
	}
	return nil
}
