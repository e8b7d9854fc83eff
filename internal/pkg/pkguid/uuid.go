package pkguid

import "github.com/google/uuid"

// UUID generates time-ordered (version 7) UUID strings, used as correlation IDs.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string. It falls back to a random (version 4)
// UUID if the clock sequence cannot be read.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
