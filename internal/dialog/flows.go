package dialog

import (
	"context"
	"errors"
	"strings"

	"github.com/avetisov/deadlinebot/internal/bot/formatter"
	"github.com/avetisov/deadlinebot/internal/repository"
)

// handleSubject accepts the subject for add and edit alike, then moves
// to the deadline prompt.
func (e *Engine) handleSubject(s *Session, text string) string {
	subject, ok := parseSubject(text)
	if !ok {
		return msgErrEmptySubject
	}
	s.Subject = subject
	if s.State == StateAddSubject {
		s.State = StateAddDeadline
	} else {
		s.State = StateEditDeadline
	}
	return msgPromptDeadline
}

func (e *Engine) handleDeadline(s *Session, text string) string {
	deadline, parsed, future := parseDeadline(text, e.now())
	if !parsed {
		return msgErrBadDate
	}
	if !future {
		return msgErrPastDate
	}
	s.Deadline = deadline
	if s.State == StateAddDeadline {
		s.State = StateAddDifficulty
	} else {
		s.State = StateEditDifficulty
	}
	return msgPromptDifficulty
}

// handleAddDifficulty is the commit step of the add flow.
func (e *Engine) handleAddDifficulty(ctx context.Context, owner string, s *Session, text string) string {
	difficulty, ok := parseDifficulty(text)
	if !ok {
		return msgErrBadDifficulty
	}

	if _, err := e.assignments.Create(ctx, owner, s.Subject, s.Deadline, difficulty); err != nil {
		return e.storeFailure(owner, "creating assignment", err)
	}
	e.clear(owner)
	return msgAdded
}

// handleEditIndex resolves the target assignment and captures its id.
// Non-numeric and out-of-range input both re-prompt; the number refers
// to the list shown when the flow started, re-resolved live.
func (e *Engine) handleEditIndex(ctx context.Context, owner string, s *Session, text string) string {
	pos, ok := parseIndex(text)
	if !ok {
		return msgErrBadIndex
	}
	target, err := e.assignments.GetByPosition(ctx, owner, pos)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return msgErrBadIndex
		}
		return e.storeFailure(owner, "resolving edit index", err)
	}
	s.targetID = target.ID
	s.State = StateEditSubject
	return msgPromptEditSubject
}

// handleEditDifficulty is the commit step of the edit flow, applied
// against the id captured at index resolution.
func (e *Engine) handleEditDifficulty(ctx context.Context, owner string, s *Session, text string) string {
	difficulty, ok := parseDifficulty(text)
	if !ok {
		return msgErrBadDifficulty
	}

	if _, err := e.assignments.UpdateByID(ctx, s.targetID, s.Subject, s.Deadline, difficulty); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted concurrently after the index was resolved.
			e.clear(owner)
			return msgErrTargetVanished
		}
		return e.storeFailure(owner, "updating assignment", err)
	}
	e.clear(owner)
	return msgUpdated
}

func (e *Engine) handleDeleteIndex(ctx context.Context, owner string, s *Session, text string) string {
	pos, ok := parseIndex(text)
	if !ok {
		return msgErrBadIndex
	}
	removed, err := e.assignments.DeleteByPosition(ctx, owner, pos)
	if err != nil {
		return e.storeFailure(owner, "deleting assignment", err)
	}
	if !removed {
		return msgErrBadIndex
	}
	e.clear(owner)
	return msgDeleted
}

// handleFilter commits the single-step filter flow. An empty query is
// rejected and ends the flow rather than re-prompting.
func (e *Engine) handleFilter(ctx context.Context, owner string, s *Session, text string) string {
	subject, ok := parseSubject(text)
	if !ok {
		e.clear(owner)
		return msgErrEmptyFilter
	}
	matched, err := e.assignments.FilterBySubject(ctx, owner, subject)
	if err != nil {
		return e.storeFailure(owner, "filtering assignments", err)
	}
	e.clear(owner)
	return formatter.FilteredList(subject, matched)
}

// handleQuestion relays the question to the advisory service. The flow
// ends whatever the outcome; failures arrive as the fallback message.
func (e *Engine) handleQuestion(ctx context.Context, owner string, s *Session, text string) string {
	question := strings.TrimSpace(text)
	if question == "" {
		return msgErrEmptyQuestion
	}
	e.clear(owner)
	return e.advisor.Advise(ctx, question)
}
