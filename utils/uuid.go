package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a fresh random identifier for entities and tokens.
func GenerateID() string {
	return uuid.NewString()
}
