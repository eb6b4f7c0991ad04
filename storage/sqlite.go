package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"pitchprice/models"
)

// OperationalStore is the local SQLite database for session state that
// must survive restarts: the excluded-hotel set and the dataset load log.
// Domain data never lives here.
type OperationalStore struct {
	db *sql.DB
}

func NewOperationalStore(dbPath string) (*OperationalStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &OperationalStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *OperationalStore) Close() error {
	return s.db.Close()
}

func (s *OperationalStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS excluded_hotels (
		hotel_id TEXT PRIMARY KEY,
		excluded_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS dataset_loads (
		id TEXT PRIMARY KEY,
		source TEXT,
		version TEXT,
		batches INTEGER,
		observations INTEGER,
		loaded_at DATETIME
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ExcludedHotels returns the persisted excluded-hotel ids
func (s *OperationalStore) ExcludedHotels() ([]string, error) {
	rows, err := s.db.Query(`SELECT hotel_id FROM excluded_hotels ORDER BY hotel_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetExcluded adds or removes one hotel from the persisted set
func (s *OperationalStore) SetExcluded(hotelID string, excluded bool) error {
	if excluded {
		_, err := s.db.Exec(
			`INSERT OR IGNORE INTO excluded_hotels (hotel_id, excluded_at) VALUES (?, ?)`,
			hotelID, time.Now(),
		)
		return err
	}
	_, err := s.db.Exec(`DELETE FROM excluded_hotels WHERE hotel_id = ?`, hotelID)
	return err
}

// LogLoad records one dataset load
func (s *OperationalStore) LogLoad(source, version string, batches, observations int, loadedAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO dataset_loads (id, source, version, batches, observations, loaded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), source, version, batches, observations, loadedAt,
	)
	return err
}

// RecentLoads returns the newest load records, newest first
func (s *OperationalStore) RecentLoads(limit int) ([]models.LoadRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, source, version, batches, observations, loaded_at
		 FROM dataset_loads ORDER BY loaded_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.LoadRecord
	for rows.Next() {
		var r models.LoadRecord
		if err := rows.Scan(&r.ID, &r.Source, &r.Version, &r.Batches, &r.Observations, &r.LoadedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
