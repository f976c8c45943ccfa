package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/application/service"
	derr "github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/errors"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/models"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/ports"
	"go.uber.org/zap"
)

type SessionHandler struct {
	log     *zap.Logger
	service *service.TripService
	timeout time.Duration
}

func NewSessionHandler(log *zap.Logger, svc *service.TripService, timeout time.Duration) *SessionHandler {
	return &SessionHandler{
		log:     log,
		service: svc,
		timeout: timeout,
	}
}

type startSessionRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DepartDate  string `json:"depart_date"`
	ReturnDate  string `json:"return_date,omitempty"`
	TripType    string `json:"trip_type,omitempty"`
	Travellers  int    `json:"travellers,omitempty"`
}

type updateSelectionRequest struct {
	Journey      string                `json:"journey"`
	SegmentIndex int                   `json:"segment_index"`
	Seats        []models.SeatChoice   `json:"seats,omitempty"`
	Meals        []models.MealChoice   `json:"meals,omitempty"`
	Baggage      *models.BaggageChoice `json:"baggage,omitempty"`
}

type submitBookingRequest struct {
	ContactEmail string  `json:"contact_email"`
	Discount     float64 `json:"discount,omitempty"`
}

// Create handles POST /v1/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session, err := h.service.StartSession(ctx, ports.TripQuery{
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartDate:  req.DepartDate,
		ReturnDate:  req.ReturnDate,
		Type:        models.TripType(req.TripType),
	}, req.Travellers)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// Route dispatches /v1/sessions/{id} and its sub-resources.
func (h *SessionHandler) Route(w http.ResponseWriter, r *http.Request) {
	id, action, ok := parseSessionPath(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid path, expected /v1/sessions/{id}[/selection|/fare|/booking]")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	switch {
	case action == "" && r.Method == http.MethodGet:
		h.get(ctx, w, id)
	case action == "selection" && r.Method == http.MethodPut:
		h.updateSelection(ctx, w, r, id)
	case action == "fare" && r.Method == http.MethodGet:
		h.fareSummary(ctx, w, r, id)
	case action == "booking" && r.Method == http.MethodPost:
		h.submitBooking(ctx, w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

func (h *SessionHandler) get(ctx context.Context, w http.ResponseWriter, id string) {
	session, err := h.service.GetSession(ctx, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) updateSelection(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
	var req updateSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}

	key := models.SelectionKey(strings.TrimSpace(req.Journey), req.SegmentIndex)
	session, err := h.service.UpdateSelection(ctx, id, key, models.AncillarySelection{
		Seats:   req.Seats,
		Meals:   req.Meals,
		Baggage: req.Baggage,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) fareSummary(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
	discount, errMsg := parseFloatQuery(r, "discount", 0)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, errMsg)
		return
	}

	summary, err := h.service.FareSummary(ctx, id, discount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *SessionHandler) submitBooking(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
	var req submitBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ContactEmail) == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "contact_email is required")
		return
	}

	record, err := h.service.SubmitBooking(ctx, id, req.ContactEmail, req.Discount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"booking_id": record.ID,
		"total":      record.Summary.Total,
		"created_at": record.CreatedAt,
	})
}

func (h *SessionHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, derr.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, codeInvalidQuery, "invalid trip query")
	case errors.Is(err, derr.ErrInvalidSelection):
		writeError(w, http.StatusBadRequest, codeInvalidSelection, "selection does not match any journey segment")
	case errors.Is(err, derr.ErrTripUnavailable):
		writeError(w, http.StatusNotFound, codeTripUnavailable, "no trip data available for this query")
	case errors.Is(err, derr.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, codeSessionNotFound, "booking session not found")
	case errors.Is(err, derr.ErrSourceTemporary):
		writeError(w, http.StatusBadGateway, codeProviderUnavailable, "flight provider temporarily unavailable")
	default:
		h.log.Error("session request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func parseSessionPath(path string) (id, action string, ok bool) {
	const prefix = "/v1/sessions/"
	if !strings.HasPrefix(path, prefix) {
		return "", "", false
	}

	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return "", "", false
	}

	parts := strings.Split(rest, "/")
	switch len(parts) {
	case 1:
		return parts[0], "", true
	case 2:
		switch parts[1] {
		case "selection", "fare", "booking":
			return parts[0], parts[1], true
		}
	}
	return "", "", false
}
