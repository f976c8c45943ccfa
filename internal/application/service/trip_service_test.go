package service

import (
	"context"
	"errors"
	"testing"
	"time"

	derr "github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/errors"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/models"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/ports"
	"go.uber.org/zap"
)

type testSource struct {
	trip    *models.ParsedTrip
	err     error
	queries []ports.TripQuery
}

func (s *testSource) SearchTrip(ctx context.Context, query ports.TripQuery) (*models.ParsedTrip, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.trip, nil
}

type testCache struct {
	trip     *models.ParsedTrip
	getErr   error
	setCalls int
}

func (c *testCache) GetByQuery(ctx context.Context, query ports.TripQuery) (*models.ParsedTrip, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.trip, nil
}

func (c *testCache) SetByQuery(ctx context.Context, query ports.TripQuery, trip *models.ParsedTrip, ttl time.Duration) error {
	c.setCalls++
	return nil
}

type testSessions struct {
	sessions map[string]ports.BookingSession
	deleted  []string
}

func newTestSessions() *testSessions {
	return &testSessions{sessions: map[string]ports.BookingSession{}}
}

func (s *testSessions) Get(ctx context.Context, id string) (ports.BookingSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return ports.BookingSession{}, derr.ErrSessionNotFound
	}
	return session, nil
}

func (s *testSessions) Save(ctx context.Context, session ports.BookingSession, ttl time.Duration) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *testSessions) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	delete(s.sessions, id)
	return nil
}

type testBookings struct {
	records []ports.BookingRecord
	err     error
}

func (b *testBookings) Save(ctx context.Context, record ports.BookingRecord) error {
	if b.err != nil {
		return b.err
	}
	b.records = append(b.records, record)
	return nil
}

func oneWayTrip() *models.ParsedTrip {
	return &models.ParsedTrip{
		Type: models.TripOneWay,
		Journeys: []models.Journey{
			{
				Kind:      models.JourneyOnward,
				Segments:  []models.Segment{{Duration: 120}, {Duration: 90}},
				Stops:     1,
				BaseFare:  4000,
				Tax:       600,
				BasePrice: 4600,
			},
		},
		TotalPrice: 4600,
	}
}

func validQuery() ports.TripQuery {
	return ports.TripQuery{Origin: "DEL", Destination: "BOM", DepartDate: "2026-03-10"}
}

func newService(source *testSource, cache *testCache, sessions *testSessions, bookings *testBookings) *TripService {
	return NewTripService(zap.NewNop(), source, cache, sessions, bookings, 10*time.Minute, time.Hour)
}

func TestSearchTrip_UsesCacheHit(t *testing.T) {
	source := &testSource{trip: oneWayTrip()}
	cache := &testCache{trip: oneWayTrip()}
	svc := newService(source, cache, newTestSessions(), &testBookings{})

	got, err := svc.SearchTrip(context.Background(), validQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected trip from cache")
	}
	if len(source.queries) != 0 {
		t.Fatalf("source should not be called on cache hit, calls=%d", len(source.queries))
	}
}

func TestSearchTrip_FallsBackToSourceAndCaches(t *testing.T) {
	source := &testSource{trip: oneWayTrip()}
	cache := &testCache{getErr: derr.ErrTripNotFound}
	svc := newService(source, cache, newTestSessions(), &testBookings{})

	got, err := svc.SearchTrip(context.Background(), validQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != models.TripOneWay {
		t.Fatalf("unexpected trip type: %s", got.Type)
	}
	if len(source.queries) != 1 {
		t.Fatalf("source calls = %d, want 1", len(source.queries))
	}
	if cache.setCalls != 1 {
		t.Fatalf("cache set calls = %d, want 1", cache.setCalls)
	}
}

func TestSearchTrip_InvalidQuery(t *testing.T) {
	svc := newService(&testSource{}, nil, newTestSessions(), &testBookings{})

	cases := []ports.TripQuery{
		{},
		{Origin: "DEL", Destination: "DEL", DepartDate: "2026-03-10"},
		{Origin: "DEL", Destination: "BOM"},
		{Origin: "DEL", Destination: "BOM", DepartDate: "2026-03-10", Type: models.TripRoundTrip},
		{Origin: "DEL", Destination: "BOM", DepartDate: "2026-03-10", Type: "charter"},
	}
	for i, query := range cases {
		if _, err := svc.SearchTrip(context.Background(), query); !errors.Is(err, derr.ErrInvalidQuery) {
			t.Fatalf("case %d: error = %v, want ErrInvalidQuery", i, err)
		}
	}
}

func TestSearchTrip_UnavailablePassesThrough(t *testing.T) {
	source := &testSource{err: derr.ErrTripUnavailable}
	svc := newService(source, &testCache{getErr: derr.ErrTripNotFound}, newTestSessions(), &testBookings{})

	_, err := svc.SearchTrip(context.Background(), validQuery())
	if !errors.Is(err, derr.ErrTripUnavailable) {
		t.Fatalf("error = %v, want ErrTripUnavailable", err)
	}
}

func TestSearchTrip_InfersRoundTripFromReturnDate(t *testing.T) {
	source := &testSource{trip: oneWayTrip()}
	svc := newService(source, &testCache{getErr: derr.ErrTripNotFound}, newTestSessions(), &testBookings{})

	query := validQuery()
	query.ReturnDate = "2026-03-14"
	if _, err := svc.SearchTrip(context.Background(), query); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := source.queries[0].Type; got != models.TripRoundTrip {
		t.Fatalf("inferred type = %s, want round-trip", got)
	}
}

func TestStartSession_PinsTripAndEmptySelections(t *testing.T) {
	sessions := newTestSessions()
	svc := newService(&testSource{trip: oneWayTrip()}, &testCache{getErr: derr.ErrTripNotFound}, sessions, &testBookings{})

	session, err := svc.StartSession(context.Background(), validQuery(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected session id")
	}
	if session.Trip == nil || session.Travellers != 2 {
		t.Fatalf("unexpected session: %+v", session)
	}
	if len(session.Selections) != 0 {
		t.Fatalf("expected empty selections, got %+v", session.Selections)
	}
	if _, ok := sessions.sessions[session.ID]; !ok {
		t.Fatal("session not saved")
	}
}

func TestUpdateSelection_ReplacesBaggageAndCapsMeals(t *testing.T) {
	sessions := newTestSessions()
	svc := newService(&testSource{trip: oneWayTrip()}, &testCache{getErr: derr.ErrTripNotFound}, sessions, &testBookings{})

	session, err := svc.StartSession(context.Background(), validQuery(), 1)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	key := models.SelectionKey(models.JourneyOnward, 0)
	_, err = svc.UpdateSelection(context.Background(), session.ID, key, models.AncillarySelection{
		Baggage: &models.BaggageChoice{Code: "XBAG", Price: 1000},
	})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}

	updated, err := svc.UpdateSelection(context.Background(), session.ID, key, models.AncillarySelection{
		Baggage: &models.BaggageChoice{Code: "XBPA", Price: 2000},
		Meals: []models.MealChoice{
			{Code: "VGML", Price: 300},
			{Code: "AVML", Price: 300},
		},
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	sel := updated.Selections[key]
	if sel.Baggage == nil || sel.Baggage.Code != "XBPA" {
		t.Fatalf("baggage not replaced: %+v", sel.Baggage)
	}
	if len(sel.Meals) != 1 {
		t.Fatalf("meals = %d, want capped at traveller count 1", len(sel.Meals))
	}
}

func TestUpdateSelection_RejectsUnknownKey(t *testing.T) {
	sessions := newTestSessions()
	svc := newService(&testSource{trip: oneWayTrip()}, &testCache{getErr: derr.ErrTripNotFound}, sessions, &testBookings{})

	session, err := svc.StartSession(context.Background(), validQuery(), 1)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	cases := []string{
		"return|0",
		"onward|5",
		"onward",
		"onward|-1",
	}
	for _, key := range cases {
		if _, err := svc.UpdateSelection(context.Background(), session.ID, key, models.AncillarySelection{}); !errors.Is(err, derr.ErrInvalidSelection) {
			t.Fatalf("key %q: error = %v, want ErrInvalidSelection", key, err)
		}
	}
}

func TestFareSummary_ReflectsSelections(t *testing.T) {
	sessions := newTestSessions()
	svc := newService(&testSource{trip: oneWayTrip()}, &testCache{getErr: derr.ErrTripNotFound}, sessions, &testBookings{})

	session, err := svc.StartSession(context.Background(), validQuery(), 1)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	key := models.SelectionKey(models.JourneyOnward, 1)
	if _, err := svc.UpdateSelection(context.Background(), session.ID, key, models.AncillarySelection{
		Seats: []models.SeatChoice{{Code: "14C", Price: 450}},
	}); err != nil {
		t.Fatalf("update selection: %v", err)
	}

	summary, err := svc.FareSummary(context.Background(), session.ID, 0)
	if err != nil {
		t.Fatalf("fare summary: %v", err)
	}
	if summary.Total != 4000+600+450 {
		t.Fatalf("total = %v, want 5050", summary.Total)
	}
}

func TestSubmitBooking_PersistsAndDiscardsSession(t *testing.T) {
	sessions := newTestSessions()
	bookings := &testBookings{}
	svc := newService(&testSource{trip: oneWayTrip()}, &testCache{getErr: derr.ErrTripNotFound}, sessions, bookings)

	session, err := svc.StartSession(context.Background(), validQuery(), 1)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	record, err := svc.SubmitBooking(context.Background(), session.ID, "traveller@corp.example", 0)
	if err != nil {
		t.Fatalf("submit booking: %v", err)
	}
	if record.ID == "" || record.SessionID != session.ID {
		t.Fatalf("unexpected record: %+v", record)
	}
	if len(bookings.records) != 1 {
		t.Fatalf("bookings saved = %d, want 1", len(bookings.records))
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != session.ID {
		t.Fatalf("session not discarded: %+v", sessions.deleted)
	}
	if _, err := svc.GetSession(context.Background(), session.ID); !errors.Is(err, derr.ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func TestSubmitBooking_SessionMissing(t *testing.T) {
	svc := newService(&testSource{}, nil, newTestSessions(), &testBookings{})
	if _, err := svc.SubmitBooking(context.Background(), "nope", "x@corp.example", 0); !errors.Is(err, derr.ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
}
