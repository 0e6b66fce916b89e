package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const txnSuffixChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// txnSuffixLen is the length of the random alphanumeric suffix in an
// external transaction id.
const txnSuffixLen = 12

// NewTransactionID builds an external transaction id of the form
// <METHOD><12 alphanumeric chars>, e.g. "UPI3F8KQ2Z1M9XB".  The id is
// unique enough for audit correlation; it is a reference, not a
// credential.
func NewTransactionID(method string) (string, error) {
	prefix := strings.ToUpper(strings.TrimSpace(method))
	if prefix == "" {
		prefix = "TXN"
	}
	suffix := make([]byte, txnSuffixLen)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(txnSuffixChars))))
		if err != nil {
			return "", err
		}
		suffix[i] = txnSuffixChars[n.Int64()]
	}
	return prefix + string(suffix), nil
}
