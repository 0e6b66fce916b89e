package model

import "time"

// ScanAction distinguishes entry and exit events in the audit trail.
type ScanAction string

const (
	ActionEntry ScanAction = "entry"
	ActionExit  ScanAction = "exit"
)

// SecurityLog is an append-only entry/exit audit record as stored in
// the `security_logs` table.  One row is written for every approved
// scan transition; denied scans are not recorded.
//
// Fields:
//  ID         – primary key (UUID string).
//  BookingID  – booking the scan was adjudicated against.
//  SpotNumber – spot number at the time of the scan.
//  Action     – entry or exit.
//  Timestamp  – when the scan was approved.
//  CreatedAt  – row creation timestamp.
type SecurityLog struct {
	ID         string     // security_logs.id
	BookingID  string     // security_logs.booking_id
	SpotNumber string     // security_logs.spot_number
	Action     ScanAction // security_logs.action
	Timestamp  time.Time  // security_logs.timestamp
	CreatedAt  time.Time  // security_logs.created_at
}
