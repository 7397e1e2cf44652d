package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/patrickwarner/planforge/internal/allocation"
	"github.com/patrickwarner/planforge/internal/middleware"
	"github.com/patrickwarner/planforge/internal/models"
	"github.com/patrickwarner/planforge/internal/planstore"
)

const dateLayout = "2006-01-02"

// CreatePlanRequest is the wire shape for plan creation. Dates are
// plain calendar dates; the engine works at day granularity.
type CreatePlanRequest struct {
	CampaignID           int64   `json:"campaign_id"`
	UserID               int64   `json:"user_id"`
	Name                 string  `json:"name"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	TargetRevenue        float64 `json:"target_revenue"`
	TargetAOV            float64 `json:"target_aov"`
	TargetConversionRate float64 `json:"target_conversion_rate"`
	CostPerClick         float64 `json:"cost_per_click"`
}

// CreatePlanResponse carries the computed plan plus advisory text.
type CreatePlanResponse struct {
	Plan   *models.Plan `json:"plan"`
	Advice string       `json:"advice,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	body, _ := json.Marshal(errorResponse{Error: msg})
	writeJSON(w, status, body)
}

// CreatePlanHandler validates the request shape, runs the allocation
// engine and returns the persisted plan. Validation beyond shape (value
// ranges, degenerate day counts) belongs to the engine; the handler
// only maps its error taxonomy onto status codes.
func (s *Server) CreatePlanHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "/plans"
	method := r.Method
	logger := middleware.LoggerFromRequest(r, s.Logger)

	finish := func(status string) {
		s.Metrics.IncrementRequests(endpoint, method, status)
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
	}

	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("invalid plan request", zap.Error(err))
		finish("400")
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CampaignID <= 0 || req.UserID <= 0 {
		finish("400")
		s.writeError(w, http.StatusBadRequest, "campaign_id and user_id are required")
		return
	}
	if req.Name == "" {
		finish("400")
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		finish("400")
		s.writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		finish("400")
		s.writeError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}

	inputs := models.CampaignInputs{
		Name:                 req.Name,
		StartDate:            startDate,
		EndDate:              endDate,
		TargetRevenue:        req.TargetRevenue,
		TargetAOV:            req.TargetAOV,
		TargetConversionRate: req.TargetConversionRate,
		CostPerClick:         req.CostPerClick,
	}

	if err := s.Store.EnsureCampaign(r.Context(), req.CampaignID, req.UserID, req.Name); err != nil {
		logger.Error("ensure campaign", zap.Error(err))
		finish("500")
		s.writeError(w, http.StatusInternalServerError, "plan store failure")
		return
	}

	plan, err := s.Engine.Allocate(r.Context(), req.CampaignID, inputs)
	switch {
	case errors.Is(err, allocation.ErrInvalidInput):
		finish("400")
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, allocation.ErrDegenerateAllocation):
		s.Metrics.IncrementDegenerateAllocations()
		finish("422")
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		logger.Error("allocate plan", zap.Error(err), zap.Int64("campaign_id", req.CampaignID))
		finish("500")
		s.writeError(w, http.StatusInternalServerError, "plan store failure")
		return
	}

	requestID := uuid.NewString()
	if s.Analytics != nil {
		if err := s.Analytics.RecordPlanCreated(r.Context(), requestID, plan.CampaignID, plan.Strategy, plan.Totals); err != nil {
			logger.Warn("record plan_created", zap.Error(err))
		}
	}
	s.Metrics.IncrementPlansCreated(plan.Strategy)

	adviceText, err := s.Advice.PlanAdvice(r.Context(), plan)
	if err != nil {
		// advisory text is decoration, the plan still stands
		logger.Warn("plan advice", zap.Error(err))
		adviceText = ""
	}

	body, err := json.Marshal(CreatePlanResponse{Plan: plan, Advice: adviceText})
	if err != nil {
		logger.Error("marshal plan response", zap.Error(err))
		finish("500")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	finish("201")
	writeJSON(w, http.StatusCreated, body)
}

// campaignIDFromRequest parses the path variable and the user_id query
// parameter shared by the read and delete handlers.
func campaignIDFromRequest(r *http.Request) (campaignID, userID int64, ok bool) {
	vars := mux.Vars(r)
	campaignID, err := strconv.ParseInt(vars["campaignID"], 10, 64)
	if err != nil || campaignID <= 0 {
		return 0, 0, false
	}
	userID, err = strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, 0, false
	}
	return campaignID, userID, true
}

// GetPlanHandler returns the stored plan for a campaign.
func (s *Server) GetPlanHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "/plans/{campaignID}"
	method := r.Method
	logger := middleware.LoggerFromRequest(r, s.Logger)

	finish := func(status string) {
		s.Metrics.IncrementRequests(endpoint, method, status)
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
	}

	campaignID, userID, ok := campaignIDFromRequest(r)
	if !ok {
		finish("400")
		s.writeError(w, http.StatusBadRequest, "campaignID and user_id are required")
		return
	}

	plan, err := s.Store.GetPlan(r.Context(), campaignID, userID)
	if errors.Is(err, planstore.ErrNotFound) {
		finish("404")
		s.writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		logger.Error("get plan", zap.Error(err), zap.Int64("campaign_id", campaignID))
		finish("500")
		s.writeError(w, http.StatusInternalServerError, "plan store failure")
		return
	}

	body, err := json.Marshal(plan)
	if err != nil {
		logger.Error("marshal stored plan", zap.Error(err))
		finish("500")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	finish("200")
	writeJSON(w, http.StatusOK, body)
}

// DeletePlanHandler removes a campaign's stored plan.
func (s *Server) DeletePlanHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "/plans/{campaignID}"
	method := r.Method
	logger := middleware.LoggerFromRequest(r, s.Logger)

	finish := func(status string) {
		s.Metrics.IncrementRequests(endpoint, method, status)
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
	}

	campaignID, userID, ok := campaignIDFromRequest(r)
	if !ok {
		finish("400")
		s.writeError(w, http.StatusBadRequest, "campaignID and user_id are required")
		return
	}

	deleted, err := s.Store.DeletePlan(r.Context(), campaignID, userID)
	if err != nil {
		logger.Error("delete plan", zap.Error(err), zap.Int64("campaign_id", campaignID))
		finish("500")
		s.writeError(w, http.StatusInternalServerError, "plan store failure")
		return
	}
	if !deleted {
		finish("404")
		s.writeError(w, http.StatusNotFound, "plan not found")
		return
	}

	if s.Analytics != nil {
		if err := s.Analytics.RecordPlanDeleted(r.Context(), uuid.NewString(), campaignID); err != nil {
			logger.Warn("record plan_deleted", zap.Error(err))
		}
	}
	s.Metrics.IncrementPlansDeleted()

	finish("204")
	w.WriteHeader(http.StatusNoContent)
}
