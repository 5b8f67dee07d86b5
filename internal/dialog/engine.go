// Package dialog implements the per-user multi-turn conversation engine.
// Each user has at most one session; every inbound message while a
// session is open advances it by exactly one step, re-prompting in place
// on invalid input without discarding fields accepted earlier.
package dialog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/avetisov/deadlinebot/internal/advisor"
	"github.com/avetisov/deadlinebot/internal/bot/formatter"
	"github.com/avetisov/deadlinebot/internal/service"
)

// Engine drives all dialog flows. The session map is guarded by a mutex;
// everything else relies on the dispatcher serializing turns per owner,
// so one owner's slow turn (an advisory call, for instance) never blocks
// another owner's.
type Engine struct {
	assignments service.AssignmentService
	advisor     *advisor.Service
	now         func() time.Time
	logger      *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewEngine creates the dialog engine. now and logger may be nil.
func NewEngine(assignments service.AssignmentService, adv *advisor.Service, now func() time.Time, logger *slog.Logger) *Engine {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		assignments: assignments,
		advisor:     adv,
		now:         now,
		logger:      logger,
		sessions:    make(map[string]*Session),
	}
}

// Active reports whether the owner has an open session.
func (e *Engine) Active(owner string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[owner]
	return ok && s.State != StateIdle
}

// StateOf returns the owner's current state, StateIdle when no session
// is open. Exposed for tests and the dispatcher's routing decision.
func (e *Engine) StateOf(owner string) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.sessions[owner]; ok {
		return s.State
	}
	return StateIdle
}

// Start opens a flow for the owner and returns the first prompt. An
// already-open session is implicitly cancelled and replaced: tapping a
// keyboard button mid-flow restarts cleanly instead of being rejected.
func (e *Engine) Start(ctx context.Context, owner string, flow Flow) string {
	e.clear(owner)

	switch flow {
	case FlowAdd:
		e.put(owner, &Session{State: StateAddSubject})
		return msgPromptSubject

	case FlowEdit:
		list, err := e.assignments.List(ctx, owner)
		if err != nil {
			return e.storeFailure(owner, "listing for edit", err)
		}
		if len(list) == 0 {
			return formatter.NoAssignments
		}
		e.put(owner, &Session{State: StateEditIndex})
		return formatter.AssignmentList(list) + "\n\n" + msgPromptEditIndex

	case FlowDelete:
		list, err := e.assignments.List(ctx, owner)
		if err != nil {
			return e.storeFailure(owner, "listing for delete", err)
		}
		if len(list) == 0 {
			return formatter.NoAssignments
		}
		e.put(owner, &Session{State: StateDeleteIndex})
		return formatter.AssignmentList(list) + "\n\n" + msgPromptDeleteIndex

	case FlowFilter:
		e.put(owner, &Session{State: StateFilterSubject})
		return msgPromptFilter

	case FlowAsk:
		e.put(owner, &Session{State: StateAskQuestion})
		return msgPromptQuestion
	}

	return msgNoFlow
}

// Cancel unconditionally ends any open flow and discards its fields.
func (e *Engine) Cancel(owner string) string {
	if !e.Active(owner) {
		return msgNoFlow
	}
	e.clear(owner)
	return msgCancelled
}

// Handle advances the owner's session by one turn and returns the reply.
// Every path either re-prompts (state unchanged) or returns to idle;
// a session is never left stuck.
func (e *Engine) Handle(ctx context.Context, owner, text string) string {
	s := e.session(owner)
	if s == nil || s.State == StateIdle {
		return msgNoFlow
	}

	switch s.State {
	case StateAddSubject, StateEditSubject:
		return e.handleSubject(s, text)
	case StateAddDeadline, StateEditDeadline:
		return e.handleDeadline(s, text)
	case StateAddDifficulty:
		return e.handleAddDifficulty(ctx, owner, s, text)
	case StateEditDifficulty:
		return e.handleEditDifficulty(ctx, owner, s, text)
	case StateEditIndex:
		return e.handleEditIndex(ctx, owner, s, text)
	case StateDeleteIndex:
		return e.handleDeleteIndex(ctx, owner, s, text)
	case StateFilterSubject:
		return e.handleFilter(ctx, owner, s, text)
	case StateAskQuestion:
		return e.handleQuestion(ctx, owner, s, text)
	}

	// Unknown state is a programming error; recover to idle.
	e.logger.Error("dialog session in unknown state", "owner", owner, "state", s.State)
	e.clear(owner)
	return msgStoreFailure
}

func (e *Engine) session(owner string) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[owner]
}

func (e *Engine) put(owner string, s *Session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sessions[owner] = s
}

func (e *Engine) clear(owner string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, owner)
}

// storeFailure aborts the flow on a persistence fault: the session is
// cleared and the user gets a generic failure message.
func (e *Engine) storeFailure(owner, op string, err error) string {
	e.logger.Error("store failure, aborting dialog", "owner", owner, "op", op, "error", err)
	e.clear(owner)
	return msgStoreFailure
}
