package model

import "time"

// Vehicle is a vehicle registered by a user, stored in the
// `user_vehicles` table.  Vehicles are owned by exactly one user and
// only referenced informally by violation reports.
//
// Fields:
//  ID                 – primary key (UUID string).
//  UserID             – owning user.
//  Model              – vehicle make/model description.
//  RegistrationNumber – licence plate.
//  VehicleType        – car, bike, ev, ...
//  DocumentURL        – optional reference to an uploaded document.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Vehicle struct {
	ID                 string    // user_vehicles.id
	UserID             uint64    // user_vehicles.user_id
	Model              string    // user_vehicles.model
	RegistrationNumber string    // user_vehicles.registration_number
	VehicleType        string    // user_vehicles.vehicle_type
	DocumentURL        *string   // user_vehicles.document_url (nullable)
	CreatedAt          time.Time // user_vehicles.created_at
	UpdatedAt          time.Time // user_vehicles.updated_at
}
