package notify

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Sender delivers plan notifications to the user.
type Sender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// Config holds Twilio credentials.
type Config struct {
	AccountSID string
	AuthToken  string
	From       string
}

// NewSender returns a Twilio-backed sender, or a log-only demo sender when
// credentials are absent. Twilio account SIDs start with "AC"; anything else
// is treated as unset.
func NewSender(cfg Config, logger zerolog.Logger) Sender {
	if !strings.HasPrefix(cfg.AccountSID, "AC") || cfg.AuthToken == "" {
		logger.Warn().Msg("twilio credentials not set, SMS is logged only")
		return DemoSender{Log: logger}
	}
	return NewTwilioSender(cfg, logger)
}

// DemoSender logs the message instead of texting it.
type DemoSender struct {
	Log zerolog.Logger
}

func (s DemoSender) SendSMS(ctx context.Context, to, body string) error {
	s.Log.Info().
		Str("to", to).
		Int("chars", len(body)).
		Msg("demo SMS (not sent):\n" + body)
	return nil
}
