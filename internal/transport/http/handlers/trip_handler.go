package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/application/service"
	derr "github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/errors"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/models"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/ports"
	"go.uber.org/zap"
)

type TripHandler struct {
	log     *zap.Logger
	service *service.TripService
	timeout time.Duration
}

func NewTripHandler(log *zap.Logger, svc *service.TripService, timeout time.Duration) *TripHandler {
	return &TripHandler{
		log:     log,
		service: svc,
		timeout: timeout,
	}
}

func (h *TripHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	query, errMsg := tripQueryFromRequest(r)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	trip, err := h.service.SearchTrip(ctx, query)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

func (h *TripHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, derr.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, codeInvalidQuery, "invalid trip query")
	case errors.Is(err, derr.ErrTripUnavailable):
		writeError(w, http.StatusNotFound, codeTripUnavailable, "no trip data available for this query")
	case errors.Is(err, derr.ErrSourceTemporary):
		writeError(w, http.StatusBadGateway, codeProviderUnavailable, "flight provider temporarily unavailable")
	default:
		h.log.Error("trip search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func tripQueryFromRequest(r *http.Request) (ports.TripQuery, string) {
	origin, errMsg := parseIATAQuery(r, "origin")
	if errMsg != "" {
		return ports.TripQuery{}, errMsg
	}
	destination, errMsg := parseIATAQuery(r, "destination")
	if errMsg != "" {
		return ports.TripQuery{}, errMsg
	}
	departDate, errMsg := parseDateQuery(r, "depart_date", true)
	if errMsg != "" {
		return ports.TripQuery{}, errMsg
	}
	returnDate, errMsg := parseDateQuery(r, "return_date", false)
	if errMsg != "" {
		return ports.TripQuery{}, errMsg
	}
	adults, errMsg := parsePositiveIntQuery(r, "adults", 1)
	if errMsg != "" {
		return ports.TripQuery{}, errMsg
	}

	return ports.TripQuery{
		Origin:      origin,
		Destination: destination,
		DepartDate:  departDate,
		ReturnDate:  returnDate,
		Type:        models.TripType(r.URL.Query().Get("trip_type")),
		Adults:      adults,
	}, ""
}
