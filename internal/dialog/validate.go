package dialog

import (
	"strconv"
	"strings"
	"time"

	"github.com/avetisov/deadlinebot/internal/domain"
)

// parseSubject rejects empty or whitespace-only text.
func parseSubject(text string) (string, bool) {
	subject := strings.TrimSpace(text)
	return subject, subject != ""
}

// parseDeadline accepts a YYYY-MM-DD date that is today or later.
// The second result distinguishes a parse failure from a past date so
// the caller can re-prompt with the right message.
func parseDeadline(text string, today time.Time) (deadline time.Time, parsed, future bool) {
	deadline, err := time.Parse(domain.DateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, false, false
	}
	if deadline.Before(domain.CivilDate(today)) {
		return time.Time{}, true, false
	}
	return deadline, true, true
}

// parseDifficulty accepts an integer literal in [1,5].
func parseDifficulty(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < domain.MinDifficulty || n > domain.MaxDifficulty {
		return 0, false
	}
	return n, true
}

// parseIndex accepts a positive integer literal. Range checking happens
// against the live list at the moment of use, never here.
func parseIndex(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
