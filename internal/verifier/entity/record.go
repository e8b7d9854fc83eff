package entity

// EmailRecord is one address to verify.
type EmailRecord struct {
	Email string
	// Line is the 1-based CSV line the address came from, 0 for single checks.
	Line int
}
