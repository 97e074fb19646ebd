// Package checksum detects content changes by digest.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Tracker remembers the digest of the last content it saw. It is safe for
// concurrent use.
type Tracker struct {
	mu   sync.Mutex
	last string
}

// Remember records data as the last known content.
func (t *Tracker) Remember(data []byte) {
	sum := Sum(data)
	t.mu.Lock()
	t.last = sum
	t.mu.Unlock()
}

// Changed reports whether data differs from the last known content and
// records it.
func (t *Tracker) Changed(data []byte) bool {
	sum := Sum(data)
	t.mu.Lock()
	defer t.mu.Unlock()
	if sum == t.last {
		return false
	}
	t.last = sum
	return true
}
