package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

// SpotRepo encapsulates database operations for parking_spots.
type SpotRepo struct {
	db *sql.DB
}

// NewSpotRepo constructs a SpotRepo given a DB handle.
func NewSpotRepo(db *sql.DB) *SpotRepo { return &SpotRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// that span multiple repositories.
func (r *SpotRepo) DB() *sql.DB { return r.db }

const spotColumns = `id, spot_number, location, type, hourly_rate, status, created_at, updated_at`

func scanSpot(row interface{ Scan(...any) error }) (model.ParkingSpot, error) {
	var s model.ParkingSpot
	err := row.Scan(&s.ID, &s.SpotNumber, &s.Location, &s.Type, &s.HourlyRate, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// List returns all parking spots ordered by spot number.
func (r *SpotRepo) List(ctx context.Context) ([]model.ParkingSpot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+spotColumns+` FROM parking_spots ORDER BY spot_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var spots []model.ParkingSpot
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, err
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return spots, nil
}

// GetByID fetches a single spot.  Returns ErrSpotNotFound when the id
// does not exist.
func (r *SpotRepo) GetByID(ctx context.Context, id string) (model.ParkingSpot, error) {
	s, err := scanSpot(r.db.QueryRowContext(ctx,
		`SELECT `+spotColumns+` FROM parking_spots WHERE id = ? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.ParkingSpot{}, ErrSpotNotFound
	}
	return s, err
}

// Create provisions a new spot and returns its generated id.  Used by
// admin provisioning only.
func (r *SpotRepo) Create(ctx context.Context, spotNumber, location string, typ model.SpotType, hourlyRate int64) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO parking_spots (id, spot_number, location, type, hourly_rate, status) VALUES (?, ?, ?, ?, ?, ?)`,
		id, spotNumber, location, typ, hourlyRate, model.SpotAvailable)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateStatus changes the coarse operational status of a spot
// (e.g. a maintenance toggle).  Returns ErrSpotNotFound when no row
// was updated.
func (r *SpotRepo) UpdateStatus(ctx context.Context, id string, status model.SpotStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE parking_spots SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSpotNotFound
	}
	return nil
}
