package scheduler

import (
	"time"

	"github.com/avetisov/deadlinebot/internal/domain"
)

// DaysLeft returns the whole civil days between today and the deadline.
// Negative for overdue deadlines. Both arguments are reduced to their
// calendar date in a shared frame first, so neither time-of-day nor the
// caller's time zone shifts the result.
func DaysLeft(deadline, today time.Time) int {
	d := domain.CivilDate(deadline)
	t := domain.CivilDate(today)
	return int(d.Sub(t).Hours() / 24)
}

// CalcRisk maps a deadline/difficulty pair onto a risk tier.
// Checks are strict and ordered; the first match wins, so exact
// boundaries resolve to the higher-risk branch:
//
//	daysLeft < 0            -> high (overdue)
//	daysLeft < difficulty   -> high (less lead time than the work needs)
//	daysLeft < 2*difficulty -> medium
//	otherwise               -> low
func CalcRisk(deadline time.Time, difficulty int, today time.Time) int {
	daysLeft := DaysLeft(deadline, today)

	if daysLeft < 0 {
		return domain.RiskHigh
	}
	if daysLeft < difficulty {
		return domain.RiskHigh
	}
	if daysLeft < 2*difficulty {
		return domain.RiskMedium
	}
	return domain.RiskLow
}
