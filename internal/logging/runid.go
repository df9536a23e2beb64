package logging

import "github.com/google/uuid"

// NewRunID returns a random ID for one conversion run.
func NewRunID() string {
	return uuid.NewString()
}
