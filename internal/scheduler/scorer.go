package scheduler

import (
	"time"

	"github.com/avetisov/deadlinebot/internal/domain"
)

// PriorityScore is the composite urgency of an assignment: harder work
// and higher risk push it up, remaining days push it down.
func PriorityScore(a *domain.Assignment, today time.Time) int {
	return a.Difficulty*2 + a.Risk*3 - DaysLeft(a.Deadline, today)
}

// MostUrgent picks the assignment with the highest priority score.
// Ties keep the earliest candidate, so with a deadline-ascending input
// the earlier deadline wins. Returns nil for an empty list.
func MostUrgent(assignments []*domain.Assignment, today time.Time) *domain.Assignment {
	var best *domain.Assignment
	bestScore := 0
	for _, a := range assignments {
		score := PriorityScore(a, today)
		if best == nil || score > bestScore {
			best = a
			bestScore = score
		}
	}
	return best
}
