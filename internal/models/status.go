package models

// Status is the lifecycle state of a goal.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusActive     Status = "active"
	StatusPaused     Status = "paused"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusActive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}
