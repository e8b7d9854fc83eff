package entity

// Job is the bookkeeping of one bulk upload. It lives for a single request.
type Job struct {
	ID        int64
	StartedAt int64
	EndedAt   int64

	// Stats help observability without storing results
	TotalRows int
	Skipped   int
	Verified  int
	Failed    int
}
