package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"pitchprice/models"
)

// PostgresSource loads scrape batches from the collector's Postgres
// database, as an alternative to the published JSON documents.
type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(ctx context.Context, connString string) (*PostgresSource, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.MaxConns = 5
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &PostgresSource{pool: pool}, nil
}

func (s *PostgresSource) Close() {
	s.pool.Close()
}

func (s *PostgresSource) Name() string {
	return "postgres"
}

// LoadBatches reads every scrape batch with its observations, ordered by
// scrape date, plus the newest batch insertion time as the declared
// last-updated instant.
func (s *PostgresSource) LoadBatches(ctx context.Context) ([]models.ScrapeBatch, time.Time, error) {
	batchQuery := `
		SELECT id, scrape_date, created_at
		FROM scrape_batches
		ORDER BY scrape_date, created_at`

	rows, err := s.pool.Query(ctx, batchQuery)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var batches []models.ScrapeBatch
	var declared time.Time
	batchIndex := make(map[uuid.UUID]int)

	for rows.Next() {
		var id uuid.UUID
		var scrapeDate string
		var createdAt time.Time
		if err := rows.Scan(&id, &scrapeDate, &createdAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan batch: %w", err)
		}
		if createdAt.After(declared) {
			declared = createdAt
		}
		batchIndex[id] = len(batches)
		batches = append(batches, models.ScrapeBatch{ScrapeDate: scrapeDate})
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate batches: %w", err)
	}

	obsQuery := `
		SELECT o.batch_id, o.hotel_id, o.hotel_name, o.city, o.city_type,
		       o.segment, o.proximity, o.check_in_date, o.check_out_date,
		       o.rate, o.currency, o.availability_status,
		       o.scrape_timestamp, o.days_to_event
		FROM scrape_observations o
		JOIN scrape_batches b ON b.id = o.batch_id
		ORDER BY b.scrape_date, b.created_at, o.id`

	obsRows, err := s.pool.Query(ctx, obsQuery)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query observations: %w", err)
	}
	defer obsRows.Close()

	for obsRows.Next() {
		var batchID uuid.UUID
		var o models.RateObservation
		var cityType, proximity, scrapeTimestamp *string
		var rate *float64
		var daysToEvent *int

		if err := obsRows.Scan(
			&batchID, &o.HotelID, &o.HotelName, &o.City, &cityType,
			&o.Segment, &proximity, &o.CheckIn, &o.CheckOut,
			&rate, &o.Currency, &o.Availability,
			&scrapeTimestamp, &daysToEvent,
		); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan observation: %w", err)
		}

		o.CityType = models.CityTypeEventHost
		if cityType != nil && *cityType != "" {
			o.CityType = models.CityType(*cityType)
		}
		if proximity != nil {
			o.Proximity = models.Proximity(*proximity)
		}
		if rate != nil {
			o.Rate = *rate
		}
		if scrapeTimestamp != nil {
			o.ScrapeTimestamp = *scrapeTimestamp
		}
		o.DaysToEvent = daysToEvent
		if o.Availability == "" {
			o.Availability = models.AvailabilityUnknown
		}

		idx, ok := batchIndex[batchID]
		if !ok {
			continue
		}
		o.ScrapeDate = batches[idx].ScrapeDate
		batches[idx].Results = append(batches[idx].Results, o)
	}
	if err := obsRows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate observations: %w", err)
	}

	return batches, declared, nil
}
