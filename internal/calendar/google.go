package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const defaultEventDuration = 2 * time.Hour

// GoogleWriter implements Writer against the Google Calendar v3 API.
type GoogleWriter struct {
	svc        *gcal.Service
	calendarID string
	log        zerolog.Logger
}

// userTokenOption builds a client option from an OAuth client config plus a
// saved authorized-user token. The token source refreshes expired tokens
// with the embedded refresh token.
func userTokenOption(ctx context.Context, credentialsFile, tokenFile string) (option.ClientOption, error) {
	credsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading oauth client config: %w", err)
	}
	oauthCfg, err := google.ConfigFromJSON(credsJSON, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parsing oauth client config: %w", err)
	}
	tokenJSON, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("reading oauth token: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("parsing oauth token %s: %w", tokenFile, err)
	}
	return option.WithTokenSource(oauthCfg.TokenSource(ctx, &token)), nil
}

// NewGoogleWriter builds a calendar service with the given client options.
// An empty calendarID targets the account's primary calendar.
func NewGoogleWriter(ctx context.Context, calendarID string, logger zerolog.Logger, opts ...option.ClientOption) (*GoogleWriter, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleWriter{svc: svc, calendarID: calendarID, log: logger}, nil
}

func (w *GoogleWriter) CreateEvent(ctx context.Context, ev Event) (string, error) {
	dur := ev.Duration
	if dur <= 0 {
		dur = defaultEventDuration
	}
	end := ev.Start.Add(dur)

	gev := &gcal.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Start:       &gcal.EventDateTime{DateTime: ev.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339)},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "popup", Minutes: 30},
				{Method: "popup", Minutes: 10},
			},
			// UseDefault is a zero value; without this it never reaches the
			// wire and Google keeps the account default reminders.
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := w.svc.Events.Insert(w.calendarID, gev).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("inserting calendar event: %w", err)
	}

	w.log.Info().
		Str("event_id", created.Id).
		Str("title", ev.Title).
		Str("link", created.HtmlLink).
		Msg("calendar event created")
	return created.Id, nil
}
