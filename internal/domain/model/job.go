package model

// Job is a single conversion request flowing through the job queue.
type Job struct {
	ID      string // unique per job
	BatchID string // batch the job belongs to
	Index   int    // position inside the batch
	Input   Rating
	Target  System

	// Reply receives exactly one JobResult. It must be buffered or drained
	// by the submitter.
	Reply chan<- JobResult
}

// JobResult is the outcome of a Job.
type JobResult struct {
	JobID  string
	Index  int
	Output Rating
	Err    error

	// LatencyMs is the time the worker spent converting, in milliseconds.
	LatencyMs float64
}
