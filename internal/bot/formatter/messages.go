// Package formatter renders assignments and aggregates into the plain
// text messages the bot sends over the chat transport.
package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/avetisov/deadlinebot/internal/domain"
	"github.com/avetisov/deadlinebot/internal/scheduler"
	"github.com/avetisov/deadlinebot/internal/service"
)

// NoAssignments is the shared empty-state reply.
const NoAssignments = "📭 No assignments yet."

// AssignmentLine renders one assignment without its position number.
func AssignmentLine(a *domain.Assignment) string {
	return fmt.Sprintf("📘 %s\n   📅 %s | ⭐%d | ⚠️%d",
		a.Subject, a.Deadline.Format(domain.DateLayout), a.Difficulty, a.Risk)
}

// AssignmentList renders a numbered list, positions matching the store's
// 1-based transient indices.
func AssignmentList(assignments []*domain.Assignment) string {
	if len(assignments) == 0 {
		return NoAssignments
	}
	var b strings.Builder
	b.WriteString("📋 Your assignments:\n\n")
	for i, a := range assignments {
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, AssignmentLine(a))
	}
	return strings.TrimSpace(b.String())
}

// FilteredList renders the result of a subject filter.
func FilteredList(subject string, assignments []*domain.Assignment) string {
	if len(assignments) == 0 {
		return "📭 No assignments with that subject."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Assignments for subject: %s\n\n", subject)
	for i, a := range assignments {
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, AssignmentLine(a))
	}
	return strings.TrimSpace(b.String())
}

// StatsSummary renders the per-owner aggregate view.
func StatsSummary(st *service.Stats) string {
	if st.Total == 0 {
		return NoAssignments
	}
	return fmt.Sprintf("📊 Assignment statistics:\n- Total: %d\n- Average difficulty: %.2f\n- Average risk: %.2f",
		st.Total, st.AvgDifficulty, st.AvgRisk)
}

// Reminder renders one aggregated reminder message for an owner's
// near-due assignments.
func Reminder(assignments []*domain.Assignment, today time.Time) string {
	var b strings.Builder
	b.WriteString("⏰ Upcoming deadlines:\n\n")
	for _, a := range assignments {
		daysLeft := scheduler.DaysLeft(a.Deadline, today)
		fmt.Fprintf(&b, "- 📘 %s\n  📅 %s (%s left) | ⭐%d | ⚠️%d\n\n",
			a.Subject, a.Deadline.Format(domain.DateLayout), pluralDays(daysLeft), a.Difficulty, a.Risk)
	}
	return strings.TrimSpace(b.String())
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
