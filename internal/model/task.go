package model

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyText = errors.New("model: task text is required")

// Displayed dates follow the server's home timezone. EAT has no DST,
// so a fixed offset is exact year-round.
var EastAfricaTime = time.FixedZone("EAT", 3*60*60)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"
	StatusArchived  Status = "ARCHIVED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusOngoing, StatusCompleted, StatusArchived:
		return true
	default:
		return false
	}
}

// Completed reports whether a server status counts as done on the
// client. Only COMPLETED does; ONGOING and ARCHIVED render as open.
func (s Status) Completed() bool {
	return s == StatusCompleted
}

// StatusForCompleted maps the client checkbox back onto the server
// enumeration. Toggling always moves between PENDING and COMPLETED.
func StatusForCompleted(completed bool) Status {
	if completed {
		return StatusCompleted
	}
	return StatusPending
}

// Task is the client's view of one todo item. DueDate has no remote
// counterpart; it lives only in local state and must be re-attached
// after every server round trip.
type Task struct {
	ID        int
	Text      string
	Completed bool
	Timestamp string
	DueDate   *time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// FormatDueDate renders the due line shown under each task.
func FormatDueDate(due *time.Time) string {
	if due == nil {
		return "No due date"
	}
	return "Due: " + due.In(EastAfricaTime).Format("Jan 2, 2006, 3:04 PM") + " EAT"
}

// IsOverdue reports whether due is strictly before now. now is a
// parameter so the predicate stays deterministic under test.
func IsOverdue(due *time.Time, now time.Time) bool {
	if due == nil {
		return false
	}
	return due.Before(now)
}

// FormatTimestamp renders a creation time the way the list shows it.
// The value is fixed at creation and never recomputed by edits.
func FormatTimestamp(t time.Time) string {
	return t.In(EastAfricaTime).Format("1/2/2006, 3:04:05 PM")
}
