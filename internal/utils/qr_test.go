package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRRoundTrip(t *testing.T) {
	in := QRPayload{
		ID:          "9d3c8a2e-1f00-4b7a-9c55-0a6f2a7d1e42",
		Spot:        "A-12",
		Date:        "2026-09-01",
		User:        7,
		Transaction: "UPI3F8KQ2Z1M9XB",
	}
	raw, err := EncodeQR(in)
	require.NoError(t, err)

	out, err := DecodeQR(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestQRWireFieldNames(t *testing.T) {
	raw, err := EncodeQR(QRPayload{ID: "b1", Spot: "A-01", Date: "2026-09-01", User: 7, Transaction: "TXN000000000000"})
	require.NoError(t, err)
	// The field names are a wire contract with the scanner.
	assert.JSONEq(t,
		`{"id":"b1","spot":"A-01","date":"2026-09-01","user":7,"transaction":"TXN000000000000"}`,
		raw)
}

func TestDecodeQRMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "hello"},
		{"empty", ""},
		{"json array", `[1,2,3]`},
		{"missing id", `{"spot":"A-01","date":"2026-09-01","user":7}`},
		{"empty id", `{"id":"","spot":"A-01"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeQR(tc.raw)
			assert.ErrorIs(t, err, ErrMalformedQR)
		})
	}
}

func TestDecodeQRIgnoresExtraFields(t *testing.T) {
	p, err := DecodeQR(`{"id":"b1","spot":"A-01","unexpected":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, "b1", p.ID)
}
