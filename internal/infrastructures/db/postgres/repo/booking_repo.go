package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Repository, error) {
	poolCfg, err := buildPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Repository{db: pool}, nil
}

func buildPoolConfig(dsn string) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx pool config: %w", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.StatementCacheCapacity = 0
	poolCfg.ConnConfig.DescriptionCacheCapacity = 0

	return poolCfg, nil
}

func (r *Repository) Close() {
	r.db.Close()
}

// Save writes the booking record created at submission time. The parsed
// trip snapshot is stored as JSON alongside the fare breakdown so the
// record is self-contained for approval review.
func (r *Repository) Save(ctx context.Context, record ports.BookingRecord) error {
	tripJSON, err := json.Marshal(record.Trip)
	if err != nil {
		return fmt.Errorf("marshal trip snapshot: %w", err)
	}

	const query = `
		INSERT INTO bookings (
			booking_id,
			session_id,
			origin,
			destination,
			trip_type,
			depart_date,
			return_date,
			travellers,
			contact_email,
			base_fare,
			tax,
			seat_total,
			meal_total,
			baggage_total,
			discount,
			total_fare,
			trip_snapshot,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = r.db.Exec(ctx, query,
		record.ID,
		record.SessionID,
		record.Query.Origin,
		record.Query.Destination,
		string(record.Query.Type),
		record.Query.DepartDate,
		record.Query.ReturnDate,
		record.Travellers,
		record.ContactEmail,
		record.Summary.BaseFare,
		record.Summary.Tax,
		record.Summary.SeatTotal,
		record.Summary.MealTotal,
		record.Summary.BaggageTotal,
		record.Summary.Discount,
		record.Summary.Total,
		tripJSON,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}
