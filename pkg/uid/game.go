package uid

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// GenerateMatchID returns a random 32 character hex ID.
func GenerateMatchID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GenerateRunID names a benchmark run after its start time, e.g. 20240131_154500.
func GenerateRunID(t time.Time) string {
	return t.Format("20060102_150405")
}
