package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns an uppercase GUID, the primary-key convention of every
// table in the schema.
func NewID() string {
	return strings.ToUpper(uuid.NewString())
}
