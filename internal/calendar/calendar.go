package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// Event is one planned outing to put on the calendar.
type Event struct {
	Title       string
	Description string
	Start       time.Time
	// Duration defaults to two hours when zero.
	Duration time.Duration
}

// Writer puts plan events onto a calendar.
type Writer interface {
	CreateEvent(ctx context.Context, ev Event) (string, error)
}

// Config holds Google Calendar settings.
type Config struct {
	// CredentialsFile points at a Google credentials JSON file: either a
	// service account key, or an OAuth client config when TokenFile is
	// also set. Empty means calendar writes are logged, not sent.
	CredentialsFile string
	// TokenFile points at a saved authorized-user token obtained from the
	// OAuth consent flow.
	TokenFile  string
	CalendarID string // default "primary"
}

// NewWriter returns a Google Calendar writer, or a log-only demo writer when
// no credentials are configured.
func NewWriter(ctx context.Context, cfg Config, logger zerolog.Logger) (Writer, error) {
	if cfg.CredentialsFile == "" {
		logger.Warn().Msg("calendar credentials not set, events are logged only")
		return DemoWriter{Log: logger}, nil
	}
	opt := option.WithCredentialsFile(cfg.CredentialsFile)
	if cfg.TokenFile != "" {
		var err error
		opt, err = userTokenOption(ctx, cfg.CredentialsFile, cfg.TokenFile)
		if err != nil {
			return nil, err
		}
	}
	return NewGoogleWriter(ctx, cfg.CalendarID, logger, opt)
}

// DemoWriter logs the event instead of calling Google, so keyless setups and
// tests still complete a full plan run.
type DemoWriter struct {
	Log zerolog.Logger
}

func (w DemoWriter) CreateEvent(ctx context.Context, ev Event) (string, error) {
	id := fmt.Sprintf("saturday-plan-%d", ev.Start.Unix())
	w.Log.Info().
		Str("title", ev.Title).
		Time("start", ev.Start).
		Str("event_id", id).
		Msg("demo calendar event (not written to Google)")
	return id, nil
}

// NextSaturday returns the Saturday outing slot a plan made at now targets:
// the coming Saturday at 11:00 in now's timezone. A plan made on Saturday
// before 09:00 still targets the same day; later than that it rolls to next
// week.
func NextSaturday(now time.Time) time.Time {
	daysUntil := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
	if daysUntil == 0 && now.Hour() >= 9 {
		daysUntil = 7
	}
	d := now.AddDate(0, 0, daysUntil)
	return time.Date(d.Year(), d.Month(), d.Day(), 11, 0, 0, 0, now.Location())
}
