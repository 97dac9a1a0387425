package utils

import "github.com/google/uuid"

// NewRequestID returns a random UUID v4 string used to tag requests and
// sessions in logs.
func NewRequestID() string {
	return uuid.NewString()
}

// ShortID returns the first block of a request ID for compact log lines.
func ShortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
