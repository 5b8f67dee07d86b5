package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar format used for deadlines everywhere:
// storage, user input, and outbound messages.
const DateLayout = "2006-01-02"

// Risk tiers derived from how close a deadline is relative to the
// assignment's difficulty. Only these three values are ever stored.
const (
	RiskLow    = 1
	RiskMedium = 3
	RiskHigh   = 5
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Assignment is a tracked academic task owned by a single user.
// Risk is derived from Deadline and Difficulty at every write; it is a
// cache of a pure function, never user-supplied.
type Assignment struct {
	ID         string
	Owner      string
	Subject    string
	Deadline   time.Time // civil date, midnight, no time-of-day meaning
	Difficulty int
	Risk       int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the user-supplied fields. Owner and ID are assigned by
// the service layer and are not validated here.
func (a *Assignment) Validate() error {
	if strings.TrimSpace(a.Subject) == "" {
		return fmt.Errorf("%w: subject must not be empty", ErrValidation)
	}
	if a.Difficulty < MinDifficulty || a.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: difficulty %d outside [%d,%d]", ErrValidation, a.Difficulty, MinDifficulty, MaxDifficulty)
	}
	return nil
}

// CivilDate reduces t to its calendar date, midnight UTC. The day is
// taken from t's own location, so a local wall clock and a stored
// deadline (parsed straight into UTC) end up in the same frame and can
// be compared and subtracted as instants.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
