package model

// JobState represents the lifecycle state of a download job
type JobState string

const (
	// JobStateQueued means the job is waiting for a free concurrency slot
	JobStateQueued JobState = "Queued"

	// JobStateRunning means the job was admitted and owns a process
	JobStateRunning JobState = "Running"

	// JobStateCompleted means the process exited successfully
	JobStateCompleted JobState = "Completed"

	// JobStateFailed means the process could not be started or exited with an error
	JobStateFailed JobState = "Failed"

	// JobStateCancelled means the job was cancelled by the user
	JobStateCancelled JobState = "Cancelled"
)

// String returns the string representation of JobState
func (s JobState) String() string {
	return string(s)
}

// IsActive returns true if the job occupies a concurrency slot
func (s JobState) IsActive() bool {
	return s == JobStateRunning
}

// IsTerminal returns true if the job reached a final state
func (s JobState) IsTerminal() bool {
	return s == JobStateCompleted || s == JobStateFailed || s == JobStateCancelled
}

// CanTransitionTo reports whether moving from s to next keeps the
// Queued -> Running -> terminal order.
func (s JobState) CanTransitionTo(next JobState) bool {
	switch s {
	case JobStateQueued:
		return next == JobStateRunning || next == JobStateCancelled
	case JobStateRunning:
		return next.IsTerminal()
	default:
		return false
	}
}
