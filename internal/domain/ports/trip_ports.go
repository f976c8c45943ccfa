package ports

import (
	"context"
	"time"

	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/models"
)

type TripQuery struct {
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	DepartDate  string          `json:"depart_date"`
	ReturnDate  string          `json:"return_date,omitempty"`
	Type        models.TripType `json:"type"`
	Adults      int             `json:"adults"`
}

type TripSource interface {
	SearchTrip(ctx context.Context, query TripQuery) (*models.ParsedTrip, error)
}

type TripCache interface {
	GetByQuery(ctx context.Context, query TripQuery) (*models.ParsedTrip, error)
	SetByQuery(ctx context.Context, query TripQuery, trip *models.ParsedTrip, ttl time.Duration) error
}

// BookingSession pins the trip a traveller is configuring together with
// the ancillary choices accumulated so far. It lives server-side for
// the duration of the booking flow and is removed on submission.
type BookingSession struct {
	ID         string              `json:"id"`
	Query      TripQuery           `json:"query"`
	Trip       *models.ParsedTrip  `json:"trip"`
	Travellers int                 `json:"travellers"`
	Selections models.SelectionSet `json:"selections"`
	CreatedAt  time.Time           `json:"created_at"`
}

type SessionStore interface {
	Get(ctx context.Context, id string) (BookingSession, error)
	Save(ctx context.Context, session BookingSession, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type BookingRecord struct {
	ID           string
	SessionID    string
	Query        TripQuery
	Travellers   int
	ContactEmail string
	Trip         *models.ParsedTrip
	Summary      models.FareSummary
	CreatedAt    time.Time
}

type BookingRepository interface {
	Save(ctx context.Context, record BookingRecord) error
}
