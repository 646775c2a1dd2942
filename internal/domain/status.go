package domain

// Status describes the lifecycle state of a long-running backend job
// (an audit run or an ownership discovery). The set is closed; anything
// the server reports outside it is treated as idle.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusRunning       Status = "running"
	StatusPaused        Status = "paused"
	StatusQuotaExceeded Status = "quota_exceeded"
	StatusCompleted     Status = "completed"
	StatusError         Status = "error"
)

// ParseStatus maps a server-reported status string onto the closed set.
// The second return is false for unrecognized values.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusIdle, StatusRunning, StatusPaused, StatusQuotaExceeded, StatusCompleted, StatusError:
		return Status(s), true
	default:
		return StatusIdle, false
	}
}

// Label returns the human-readable form shown in status banners.
func (s Status) Label() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusPaused:
		return "Paused"
	case StatusQuotaExceeded:
		return "Quota exceeded"
	case StatusCompleted:
		return "Completed"
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Idle"
	}
}

// IsTerminal reports whether the job has finished, successfully or not.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// IsActive reports whether the job is currently making progress.
func (s Status) IsActive() bool {
	return s == StatusRunning
}

// CanResume reports whether the job is in a state a caller may resume from.
func (s Status) CanResume() bool {
	return s == StatusPaused || s == StatusQuotaExceeded
}
