package model

import "time"

// ViolationReport is an append-only record of a parking violation as
// stored in the `violation_reports` table.  Reports are independent of
// the booking lifecycle.
//
// Fields:
//  ID            – primary key (UUID string).
//  VehicleNumber – registration number of the offending vehicle.
//  ViolationType – category (unauthorized_parking, overstay, ...).
//  Location      – where the violation was observed.
//  Description   – optional free-form notes.
//  ImageURL      – optional reference to uploaded evidence.
//  Timestamp     – when the violation was observed.
//  CreatedAt     – row creation timestamp.
type ViolationReport struct {
	ID            string    // violation_reports.id
	VehicleNumber string    // violation_reports.vehicle_number
	ViolationType string    // violation_reports.violation_type
	Location      string    // violation_reports.location
	Description   *string   // violation_reports.description (nullable)
	ImageURL      *string   // violation_reports.image_url (nullable)
	Timestamp     time.Time // violation_reports.timestamp
	CreatedAt     time.Time // violation_reports.created_at
}
