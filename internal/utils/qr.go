package utils

import (
	"encoding/json"
	"errors"
)

// QRPayload is the JSON credential encoded into a booking's QR code and
// parsed back at the entry/exit scanner.  This is the one wire format
// owned by this system; the field names are fixed.
type QRPayload struct {
	ID          string `json:"id"`          // booking id
	Spot        string `json:"spot"`        // spot number
	Date        string `json:"date"`        // YYYY-MM-DD
	User        uint64 `json:"user"`        // user id
	Transaction string `json:"transaction"` // external transaction id
}

// ErrMalformedQR is returned for payloads that are not valid JSON or
// are missing the booking id.
var ErrMalformedQR = errors.New("malformed qr payload")

// EncodeQR serializes a payload to the string stored verbatim in the
// booking's qr_code column.
func EncodeQR(p QRPayload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeQR parses a scanned credential.  A payload without an id is
// treated as malformed, not merely unknown.
func DecodeQR(data string) (QRPayload, error) {
	var p QRPayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return QRPayload{}, ErrMalformedQR
	}
	if p.ID == "" {
		return QRPayload{}, ErrMalformedQR
	}
	return p, nil
}
