package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

// ViolationRepo provides append and read access to violation_reports.
// Like security_logs, the table is append-only.
type ViolationRepo struct {
	db *sql.DB
}

// NewViolationRepo constructs a ViolationRepo given a DB handle.
func NewViolationRepo(db *sql.DB) *ViolationRepo { return &ViolationRepo{db: db} }

// Append inserts one violation report and fills in its generated id.
func (r *ViolationRepo) Append(ctx context.Context, v *model.ViolationReport) error {
	v.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO violation_reports (id, vehicle_number, violation_type, location, description, image_url, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.VehicleNumber, v.ViolationType, v.Location, v.Description, v.ImageURL, v.Timestamp.UTC())
	return err
}

// Recent returns the latest violation reports, newest first.
func (r *ViolationRepo) Recent(ctx context.Context, limit int) ([]model.ViolationReport, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vehicle_number, violation_type, location, description, image_url, timestamp, created_at
		 FROM violation_reports ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reports []model.ViolationReport
	for rows.Next() {
		var (
			v    model.ViolationReport
			desc sql.NullString
			img  sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.VehicleNumber, &v.ViolationType, &v.Location, &desc, &img, &v.Timestamp, &v.CreatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			v.Description = &desc.String
		}
		if img.Valid {
			v.ImageURL = &img.String
		}
		reports = append(reports, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
