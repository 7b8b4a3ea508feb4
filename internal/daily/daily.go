// Package daily schedules a deterministic word per calendar day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index in [0, n) for the date of t,
// computed as HMAC-SHA256(salt, YYYY-MM-DD) mod n.
func WordIndex(t time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}
