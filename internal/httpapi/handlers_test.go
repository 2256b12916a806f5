package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubPlanService struct {
	resp *contract.PlanResponse
	err  error
	got  contract.PlanRequest
}

func (s *stubPlanService) Plan(_ context.Context, req contract.PlanRequest) (*contract.PlanResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type stubFeedbackService struct {
	resp *contract.FeedbackResponse
	err  error
	got  contract.FeedbackRequest
}

func (s *stubFeedbackService) Record(_ context.Context, req contract.FeedbackRequest) (*contract.FeedbackResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newTestServer(plans *stubPlanService, feedback *stubFeedbackService) *Server {
	return NewServer(plans, feedback, Options{
		Addr:    ":0",
		Metrics: prometheus.NewRegistry(),
		Logger:  zerolog.Nop(),
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func samplePlanResponse() *contract.PlanResponse {
	rating := 4.8
	return &contract.PlanResponse{
		GeneratedAt: time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC),
		RunID:       "run-123",
		Zip:         "10001",
		Weather:     domain.WeatherClear,
		Chosen: contract.ScoredVenue{
			Venue: domain.VenueCandidate{
				ID:         "mock-outdoor-1",
				Name:       "Riverside Park",
				Address:    "100 River Rd",
				Category:   domain.CategoryOutdoor,
				Rating:     &rating,
				PriceLevel: 0,
			},
			Score: 1.92,
		},
		Narrative:       "Your Saturday plan is ready: Riverside Park (outdoor).",
		SMSBody:         "Saturday 11:00 AM: Riverside Park",
		CalendarEventID: "saturday-plan-1",
		ScheduledFor:    time.Date(2026, time.June, 6, 11, 0, 0, 0, time.UTC),
	}
}

func TestCreatePlan_ReturnsPlan(t *testing.T) {
	plans := &stubPlanService{resp: samplePlanResponse()}
	srv := newTestServer(plans, &stubFeedbackService{})

	rec := doJSON(t, srv, http.MethodPost, "/plan", map[string]any{
		"zip":          "94110",
		"radius_miles": 10,
		"max_price":    2,
		"phone":        "+15550100",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var got contract.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "run-123", got.RunID)
	assert.Equal(t, "Riverside Park", got.Chosen.Venue.Name)
	assert.Equal(t, domain.WeatherClear, got.Weather)
	assert.False(t, got.Degraded())
	assert.Equal(t, "saturday-plan-1", got.CalendarEventID)
	assert.Contains(t, rec.Body.String(), `"run_id":"run-123"`)

	assert.Equal(t, "94110", plans.got.Zip)
	assert.Equal(t, 10, plans.got.RadiusMiles)
	assert.Equal(t, 2, plans.got.MaxPrice)
	assert.Equal(t, "+15550100", plans.got.Phone)
	assert.False(t, plans.got.DryRun)
}

func TestCreatePlan_EmptyBodyUsesDefaults(t *testing.T) {
	plans := &stubPlanService{resp: samplePlanResponse()}
	srv := newTestServer(plans, &stubFeedbackService{})

	rec := doJSON(t, srv, http.MethodPost, "/plan", map[string]any{})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10001", plans.got.Zip)
	assert.Equal(t, 5, plans.got.RadiusMiles)
	assert.Equal(t, 3, plans.got.MaxPrice)
	assert.Nil(t, plans.got.Weather)
}

func TestCreatePlan_ConfiguredDefaultsApply(t *testing.T) {
	plans := &stubPlanService{resp: samplePlanResponse()}
	defaults := contract.NewPlanRequest("94110")
	defaults.RadiusMiles = 12
	defaults.Phone = "+15550123"
	srv := NewServer(plans, &stubFeedbackService{}, Options{
		Addr:     ":0",
		Defaults: &defaults,
		Metrics:  prometheus.NewRegistry(),
		Logger:   zerolog.Nop(),
	})

	rec := doJSON(t, srv, http.MethodPost, "/plan", map[string]any{})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "94110", plans.got.Zip)
	assert.Equal(t, 12, plans.got.RadiusMiles)
	assert.Equal(t, "+15550123", plans.got.Phone)

	// Body fields still win over the configured defaults.
	rec = doJSON(t, srv, http.MethodPost, "/plan", map[string]any{"zip": "60631", "phone": "+15550199"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "60631", plans.got.Zip)
	assert.Equal(t, "+15550199", plans.got.Phone)
}

func TestCreatePlan_ZeroMaxPriceIsKept(t *testing.T) {
	plans := &stubPlanService{resp: samplePlanResponse()}
	srv := newTestServer(plans, &stubFeedbackService{})

	rec := doJSON(t, srv, http.MethodPost, "/plan", map[string]any{"max_price": 0})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, plans.got.MaxPrice)
}

func TestCreatePlan_WeatherOverridePassedThrough(t *testing.T) {
	plans := &stubPlanService{resp: samplePlanResponse()}
	srv := newTestServer(plans, &stubFeedbackService{})

	rec := doJSON(t, srv, http.MethodPost, "/plan", map[string]any{"weather": "rain", "dry_run": true})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, plans.got.Weather)
	assert.Equal(t, domain.WeatherRain, *plans.got.Weather)
	assert.True(t, plans.got.DryRun)
}

func TestCreatePlan_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		code   contract.PlanErrorCode
		status int
	}{
		{contract.ErrInvalidMaxPrice, http.StatusBadRequest},
		{contract.ErrInvalidWeather, http.StatusBadRequest},
		{contract.ErrNoCandidates, http.StatusNotFound},
		{contract.ErrWeatherLookup, http.StatusBadGateway},
		{contract.ErrVenueSearch, http.StatusBadGateway},
		{contract.ErrInternalError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			plans := &stubPlanService{err: &contract.PlanError{Code: tc.code, Message: "boom"}}
			srv := newTestServer(plans, &stubFeedbackService{})

			rec := doJSON(t, srv, http.MethodPost, "/plan", map[string]any{})

			require.Equal(t, tc.status, rec.Code)
			var got errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, string(tc.code), got.Code)
			assert.Equal(t, "boom", got.Message)
		})
	}
}

func TestCreatePlan_UnexpectedErrorHidesDetail(t *testing.T) {
	plans := &stubPlanService{err: errors.New("sql: database is locked")}
	srv := newTestServer(plans, &stubFeedbackService{})

	rec := doJSON(t, srv, http.MethodPost, "/plan", map[string]any{})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "INTERNAL_ERROR", got.Code)
	assert.NotContains(t, got.Message, "sql")
}

func TestCreatePlan_MalformedBody(t *testing.T) {
	srv := newTestServer(&stubPlanService{}, &stubFeedbackService{})

	req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "INVALID_BODY", got.Code)
}

func TestRecordFeedback_AppliesDelta(t *testing.T) {
	feedback := &stubFeedbackService{resp: &contract.FeedbackResponse{
		Category:  domain.CategoryCafe,
		VenueID:   "place-1",
		NewWeight: 1.5,
		UpdatedAt: time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC),
	}}
	srv := newTestServer(&stubPlanService{}, feedback)

	rec := doJSON(t, srv, http.MethodPost, "/feedback", map[string]any{
		"category": "cafe",
		"venue_id": "place-1",
		"delta":    1.5,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var got contract.FeedbackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.CategoryCafe, got.Category)
	assert.Equal(t, "place-1", got.VenueID)
	assert.InDelta(t, 1.5, got.NewWeight, 1e-9)

	assert.Equal(t, domain.CategoryCafe, feedback.got.Category)
	assert.InDelta(t, 1.5, feedback.got.Delta, 1e-9)
}

func TestRecordFeedback_MissingCategory(t *testing.T) {
	srv := newTestServer(&stubPlanService{}, &stubFeedbackService{})

	rec := doJSON(t, srv, http.MethodPost, "/feedback", map[string]any{"delta": 1.0})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "INVALID_BODY", got.Code)
}

func TestRecordFeedback_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		code   contract.FeedbackErrorCode
		status int
	}{
		{contract.FeedbackErrInvalidCategory, http.StatusBadRequest},
		{contract.FeedbackErrInvalidDelta, http.StatusBadRequest},
		{contract.FeedbackErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			feedback := &stubFeedbackService{err: &contract.FeedbackError{Code: tc.code, Message: "nope"}}
			srv := newTestServer(&stubPlanService{}, feedback)

			rec := doJSON(t, srv, http.MethodPost, "/feedback", map[string]any{
				"category": "cafe",
				"delta":    1.0,
			})

			require.Equal(t, tc.status, rec.Code)
			var got errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, string(tc.code), got.Code)
		})
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&stubPlanService{}, &stubFeedbackService{})

	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","agent":"SaturdayPlanner"}`, rec.Body.String())
}

func TestIndexServesEmbeddedPage(t *testing.T) {
	srv := newTestServer(&stubPlanService{}, &stubFeedbackService{})

	rec := doJSON(t, srv, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "SaturdayPlanner")
	assert.Contains(t, rec.Body.String(), "/plan")
}

func TestMetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "saturday_test_total"})
	registry.MustRegister(counter)
	counter.Inc()

	srv := NewServer(&stubPlanService{}, &stubFeedbackService{}, Options{
		Metrics: registry,
		Logger:  zerolog.Nop(),
	})

	rec := doJSON(t, srv, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "saturday_test_total 1")
}

func TestRequestLoggerSkipsProbes(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	srv := NewServer(&stubPlanService{resp: samplePlanResponse()}, &stubFeedbackService{}, Options{
		Metrics: prometheus.NewRegistry(),
		Logger:  logger,
	})

	doJSON(t, srv, http.MethodGet, "/healthz", nil)
	doJSON(t, srv, http.MethodGet, "/metrics", nil)
	assert.Empty(t, buf.String())

	doJSON(t, srv, http.MethodPost, "/plan", map[string]any{})
	line := buf.String()
	assert.Contains(t, line, `"message":"http request"`)
	assert.Contains(t, line, `"status":200`)
	assert.Contains(t, line, `"method":"POST"`)
	assert.Contains(t, line, `"path":"/plan"`)
}
