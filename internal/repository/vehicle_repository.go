package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

// VehicleRepo encapsulates database operations for user_vehicles.
// Ownership is enforced here: reads and writes always filter on the
// owning user id, so a caller can never touch another user's vehicle.
type VehicleRepo struct {
	db *sql.DB
}

// NewVehicleRepo constructs a VehicleRepo given a DB handle.
func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{db: db} }

const vehicleColumns = `id, user_id, model, registration_number, vehicle_type, document_url, created_at, updated_at`

func scanVehicle(row interface{ Scan(...any) error }) (model.Vehicle, error) {
	var (
		v   model.Vehicle
		doc sql.NullString
	)
	err := row.Scan(&v.ID, &v.UserID, &v.Model, &v.RegistrationNumber, &v.VehicleType, &doc, &v.CreatedAt, &v.UpdatedAt)
	if doc.Valid {
		v.DocumentURL = &doc.String
	}
	return v, err
}

// ListByUser returns all vehicles owned by a user, newest first.
func (r *VehicleRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM user_vehicles WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var vehicles []model.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Create registers a vehicle for a user and fills in its generated id.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	v.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_vehicles (id, user_id, model, registration_number, vehicle_type, document_url)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		v.ID, v.UserID, v.Model, v.RegistrationNumber, v.VehicleType, v.DocumentURL)
	return err
}

// Update modifies a vehicle owned by the given user.  Returns
// ErrVehicleNotFound when no owned row matches.
func (r *VehicleRepo) Update(ctx context.Context, userID uint64, v model.Vehicle) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_vehicles SET model = ?, registration_number = ?, vehicle_type = ?, updated_at = NOW()
		 WHERE id = ? AND user_id = ?`,
		v.Model, v.RegistrationNumber, v.VehicleType, v.ID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

// Delete removes a vehicle owned by the given user.
func (r *VehicleRepo) Delete(ctx context.Context, userID uint64, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_vehicles WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVehicleNotFound
	}
	return nil
}
