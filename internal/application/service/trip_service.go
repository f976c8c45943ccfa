package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	derr "github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/errors"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/models"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/ports"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type TripService struct {
	log        *zap.Logger
	source     ports.TripSource
	cache      ports.TripCache
	sessions   ports.SessionStore
	bookings   ports.BookingRepository
	cacheTTL   time.Duration
	sessionTTL time.Duration
}

func NewTripService(
	log *zap.Logger,
	source ports.TripSource,
	cache ports.TripCache,
	sessions ports.SessionStore,
	bookings ports.BookingRepository,
	cacheTTL time.Duration,
	sessionTTL time.Duration,
) *TripService {
	if log == nil {
		log = zap.NewNop()
	}

	return &TripService{
		log:        log,
		source:     source,
		cache:      cache,
		sessions:   sessions,
		bookings:   bookings,
		cacheTTL:   cacheTTL,
		sessionTTL: sessionTTL,
	}
}

// SearchTrip resolves a trip query through the cache, falling back to
// the provider on a miss. ErrTripUnavailable means the provider had no
// usable data for the query; callers render an unavailable state.
func (s *TripService) SearchTrip(ctx context.Context, query ports.TripQuery) (*models.ParsedTrip, error) {
	const op = "service.SearchTrip"
	tracer := otel.Tracer("tripdesk/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.String("trip.origin", strings.ToUpper(strings.TrimSpace(query.Origin))),
		attribute.String("trip.destination", strings.ToUpper(strings.TrimSpace(query.Destination))),
		attribute.String("trip.type", string(query.Type)),
	)

	logger := s.log.With(
		zap.String("op", op),
		zap.String("origin", query.Origin),
		zap.String("destination", query.Destination),
		zap.String("depart_date", query.DepartDate),
	)

	query, err := normalizeQuery(query)
	if err != nil {
		logger.Warn("invalid trip query", zap.Error(err))
		span.SetStatus(otelcodes.Error, "invalid trip query")
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.GetByQuery(ctx, query)
		if err == nil {
			logger.Info("trip cache hit")
			span.AddEvent("trip.cache.hit")
			return cached, nil
		}
		if errors.Is(err, derr.ErrTripNotFound) {
			logger.Debug("trip cache miss")
			span.AddEvent("trip.cache.miss")
		} else {
			logger.Warn("redis cache read failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	trip, err := s.source.SearchTrip(ctx, query)
	if err != nil {
		if errors.Is(err, derr.ErrTripUnavailable) {
			logger.Info("no usable trip data for query")
			span.SetStatus(otelcodes.Error, "trip unavailable")
			return nil, derr.ErrTripUnavailable
		}
		logger.Warn("provider search failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "provider search failed")
		return nil, fmt.Errorf("%s: search trip from source: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.SetByQuery(ctx, query, trip, s.cacheTTL); err != nil {
			logger.Warn("redis cache write failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	span.SetAttributes(attribute.Int("trip.journeys_count", len(trip.Journeys)))
	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("trip normalized", zap.Int("journeys", len(trip.Journeys)))
	return trip, nil
}

// StartSession pins the trip for a booking flow and creates an empty
// selection set for it.
func (s *TripService) StartSession(ctx context.Context, query ports.TripQuery, travellers int) (ports.BookingSession, error) {
	const op = "service.StartSession"

	logger := s.log.With(zap.String("op", op))

	trip, err := s.SearchTrip(ctx, query)
	if err != nil {
		return ports.BookingSession{}, err
	}

	if travellers <= 0 {
		travellers = 1
	}

	session := ports.BookingSession{
		ID:         uuid.NewString(),
		Query:      query,
		Trip:       trip,
		Travellers: travellers,
		Selections: models.SelectionSet{},
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.sessions.Save(ctx, session, s.sessionTTL); err != nil {
		return ports.BookingSession{}, fmt.Errorf("%s: save session: %w", op, err)
	}

	logger.Info("booking session started",
		zap.String("session_id", session.ID),
		zap.Int("travellers", travellers),
	)
	return session, nil
}

func (s *TripService) GetSession(ctx context.Context, sessionID string) (ports.BookingSession, error) {
	const op = "service.GetSession"

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, derr.ErrSessionNotFound) {
			return ports.BookingSession{}, derr.ErrSessionNotFound
		}
		return ports.BookingSession{}, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}

// UpdateSelection replaces the ancillary choices for one segment key.
// The meal list is trimmed to the session's traveller count and a new
// baggage choice replaces the previous one; it never accumulates.
func (s *TripService) UpdateSelection(ctx context.Context, sessionID, key string, sel models.AncillarySelection) (ports.BookingSession, error) {
	const op = "service.UpdateSelection"

	logger := s.log.With(
		zap.String("op", op),
		zap.String("session_id", sessionID),
		zap.String("selection_key", key),
	)

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, derr.ErrSessionNotFound) {
			return ports.BookingSession{}, derr.ErrSessionNotFound
		}
		return ports.BookingSession{}, fmt.Errorf("%s: %w", op, err)
	}

	if !validSelectionKey(session.Trip, key) {
		logger.Warn("selection key does not match any journey segment")
		return ports.BookingSession{}, derr.ErrInvalidSelection
	}

	if len(sel.Meals) > session.Travellers {
		sel.Meals = sel.Meals[:session.Travellers]
	}

	if session.Selections == nil {
		session.Selections = models.SelectionSet{}
	}
	session.Selections[key] = sel

	if err := s.sessions.Save(ctx, session, s.sessionTTL); err != nil {
		return ports.BookingSession{}, fmt.Errorf("%s: save session: %w", op, err)
	}

	logger.Debug("selection updated")
	return session, nil
}

// FareSummary recomputes the payable fare from the pinned trip and the
// accumulated selections.
func (s *TripService) FareSummary(ctx context.Context, sessionID string, discount float64) (models.FareSummary, error) {
	const op = "service.FareSummary"

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, derr.ErrSessionNotFound) {
			return models.FareSummary{}, derr.ErrSessionNotFound
		}
		return models.FareSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.ComputeFareSummary(session.Trip, session.Selections, session.Travellers, discount), nil
}

// SubmitBooking finalizes the session: the fare is computed one last
// time, the booking record is persisted and the session is discarded.
func (s *TripService) SubmitBooking(ctx context.Context, sessionID, contactEmail string, discount float64) (ports.BookingRecord, error) {
	const op = "service.SubmitBooking"
	tracer := otel.Tracer("tripdesk/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.String("booking.session_id", sessionID))

	logger := s.log.With(
		zap.String("op", op),
		zap.String("session_id", sessionID),
	)

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, derr.ErrSessionNotFound) {
			span.SetStatus(otelcodes.Error, "session not found")
			return ports.BookingRecord{}, derr.ErrSessionNotFound
		}
		span.RecordError(err)
		return ports.BookingRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	record := ports.BookingRecord{
		ID:           uuid.NewString(),
		SessionID:    session.ID,
		Query:        session.Query,
		Travellers:   session.Travellers,
		ContactEmail: strings.TrimSpace(contactEmail),
		Trip:         session.Trip,
		Summary:      models.ComputeFareSummary(session.Trip, session.Selections, session.Travellers, discount),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.bookings.Save(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "booking save failed")
		return ports.BookingRecord{}, fmt.Errorf("%s: save booking: %w", op, err)
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		logger.Warn("failed to discard session after submission", zap.Error(err))
		span.RecordError(err)
	}

	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("booking submitted",
		zap.String("booking_id", record.ID),
		zap.Float64("total_fare", record.Summary.Total),
	)
	return record, nil
}

func normalizeQuery(query ports.TripQuery) (ports.TripQuery, error) {
	query.Origin = strings.ToUpper(strings.TrimSpace(query.Origin))
	query.Destination = strings.ToUpper(strings.TrimSpace(query.Destination))
	query.DepartDate = strings.TrimSpace(query.DepartDate)
	query.ReturnDate = strings.TrimSpace(query.ReturnDate)

	if query.Origin == "" || query.Destination == "" || query.DepartDate == "" {
		return ports.TripQuery{}, derr.ErrInvalidQuery
	}
	if query.Origin == query.Destination {
		return ports.TripQuery{}, derr.ErrInvalidQuery
	}

	switch query.Type {
	case "":
		if query.ReturnDate != "" {
			query.Type = models.TripRoundTrip
		} else {
			query.Type = models.TripOneWay
		}
	case models.TripOneWay, models.TripRoundTrip, models.TripMultiCity:
	default:
		return ports.TripQuery{}, derr.ErrInvalidQuery
	}

	if query.Type == models.TripRoundTrip && query.ReturnDate == "" {
		return ports.TripQuery{}, derr.ErrInvalidQuery
	}

	if query.Adults <= 0 {
		query.Adults = 1
	}

	return query, nil
}

func validSelectionKey(trip *models.ParsedTrip, key string) bool {
	kind, indexPart, found := strings.Cut(key, "|")
	if !found || trip == nil {
		return false
	}

	index, err := strconv.Atoi(indexPart)
	if err != nil || index < 0 {
		return false
	}

	for _, journey := range trip.Journeys {
		if journey.Kind == kind {
			return index < len(journey.Segments)
		}
	}
	return false
}
