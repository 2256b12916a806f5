package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender implements Sender through the Twilio messages API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	log    zerolog.Logger
}

func NewTwilioSender(cfg Config, logger zerolog.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSender{client: client, from: cfg.From, log: logger}
}

// SendSMS delivers body to the given E.164 number. The Twilio SDK carries no
// context, so cancellation is checked before the call goes out.
func (s *TwilioSender) SendSMS(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("sending SMS: %w", err)
	}

	sid := ""
	if msg.Sid != nil {
		sid = *msg.Sid
	}
	s.log.Info().Str("to", to).Str("sid", sid).Msg("SMS sent")
	return nil
}
