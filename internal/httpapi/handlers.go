package httpapi

import (
	_ "embed"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/domain"
	"github.com/Keto24/saturday-planner/internal/service"
)

//go:embed static/index.html
var indexPage []byte

type handler struct {
	plans    service.PlanService
	feedback service.FeedbackService
	defaults contract.PlanRequest
	log      zerolog.Logger
}

func (h *handler) registerRoutes(engine *gin.Engine, gatherer prometheus.Gatherer) {
	engine.GET("/", h.index)
	engine.POST("/plan", h.createPlan)
	engine.POST("/feedback", h.recordFeedback)
	engine.GET("/healthz", h.health)
	engine.GET("/metrics", metricsHandler(gatherer))
}

func (h *handler) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (h *handler) createPlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Code:    "INVALID_BODY",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	resp, err := h.plans.Plan(c.Request.Context(), req.toContract(h.defaults))
	if err != nil {
		h.planError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) recordFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Code:    "INVALID_BODY",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	resp, err := h.feedback.Record(c.Request.Context(), contract.FeedbackRequest{
		Category: domain.Category(req.Category),
		VenueID:  req.VenueID,
		Delta:    req.Delta,
	})
	if err != nil {
		h.feedbackError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "agent": "SaturdayPlanner"})
}

func (h *handler) planError(c *gin.Context, err error) {
	var planErr *contract.PlanError
	if !errors.As(err, &planErr) {
		h.log.Error().Err(err).Msg("plan failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
			Code:    string(contract.ErrInternalError),
			Message: "planning failed",
		})
		return
	}
	c.AbortWithStatusJSON(planErrorStatus(planErr.Code), errorResponse{
		Code:    string(planErr.Code),
		Message: planErr.Message,
	})
}

func (h *handler) feedbackError(c *gin.Context, err error) {
	var fbErr *contract.FeedbackError
	if !errors.As(err, &fbErr) {
		h.log.Error().Err(err).Msg("feedback failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
			Code:    string(contract.FeedbackErrInternal),
			Message: "recording feedback failed",
		})
		return
	}
	c.AbortWithStatusJSON(feedbackErrorStatus(fbErr.Code), errorResponse{
		Code:    string(fbErr.Code),
		Message: fbErr.Message,
	})
}

func planErrorStatus(code contract.PlanErrorCode) int {
	switch code {
	case contract.ErrInvalidMaxPrice, contract.ErrInvalidWeather:
		return http.StatusBadRequest
	case contract.ErrNoCandidates:
		return http.StatusNotFound
	case contract.ErrWeatherLookup, contract.ErrVenueSearch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func feedbackErrorStatus(code contract.FeedbackErrorCode) int {
	switch code {
	case contract.FeedbackErrInvalidCategory, contract.FeedbackErrInvalidDelta:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
