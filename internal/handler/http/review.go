package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starfeed/reviews/internal/service"
	"github.com/starfeed/reviews/pkg/httputil"
	"github.com/starfeed/reviews/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// SubmitReviewRequest is the JSON request body for submitting a review.
type SubmitReviewRequest struct {
	SupportRating  int    `json:"support_rating" validate:"required,min=1,max=5"`
	QualityRating  int    `json:"quality_rating" validate:"required,min=1,max=5"`
	FeaturesRating int    `json:"features_rating" validate:"required,min=1,max=5"`
	ValueRating    int    `json:"value_rating" validate:"required,min=1,max=5"`
	Comment        string `json:"comment" validate:"max=2000"`
}

// --- Response DTOs ---

type submitResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type exportResponse struct {
	CSVData string `json:"csv_data"`
}

// --- Handlers ---

// Root handles GET /api/
func (h *ReviewHandler) Root(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Review Management API"})
}

// SubmitReview handles POST /api/reviews
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.NewErrorEnvelope(
			"INVALID_INPUT", "invalid request body: "+err.Error(),
		))
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.SubmitReviewInput{
		SupportRating:  req.SupportRating,
		QualityRating:  req.QualityRating,
		FeaturesRating: req.FeaturesRating,
		ValueRating:    req.ValueRating,
		Comment:        req.Comment,
	}

	review, err := h.service.Submit(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, submitResponse{
		Message: "review submitted successfully",
		ID:      review.ID,
	})
}

// ListReviews handles GET /api/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	var status *string
	if v := r.URL.Query().Get("status"); v != "" {
		status = &v
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.NewErrorEnvelope(
				"INVALID_INPUT", "limit must be an integer",
			))
			return
		}
		limit = n
	}

	reviews, err := h.service.List(r.Context(), status, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// ModerateReview handles PUT /api/reviews/{id}/status
func (h *ReviewHandler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.NewErrorEnvelope(
			"INVALID_INPUT", "review id is required",
		))
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.NewErrorEnvelope(
			"INVALID_INPUT", "status query parameter is required",
		))
		return
	}

	if err := h.service.Moderate(r.Context(), id, status); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("status updated: %s", status),
	})
}

// GetStats handles GET /api/stats
func (h *ReviewHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, s)
}

// GetWeeklyStats handles GET /api/stats/weekly
func (h *ReviewHandler) GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.WeeklyStats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, s)
}

// GetMonthlyStats handles GET /api/stats/monthly
func (h *ReviewHandler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.MonthlyStats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, s)
}

// ExportReviews handles GET /api/export
func (h *ReviewHandler) ExportReviews(w http.ResponseWriter, r *http.Request) {
	csvData, err := h.service.ExportCSV(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, exportResponse{CSVData: csvData})
}
