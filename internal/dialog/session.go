package dialog

import "time"

// State identifies the step a conversation is suspended at.
type State int

const (
	StateIdle State = iota

	StateAddSubject
	StateAddDeadline
	StateAddDifficulty

	StateEditIndex
	StateEditSubject
	StateEditDeadline
	StateEditDifficulty

	StateDeleteIndex

	StateFilterSubject

	StateAskQuestion
)

// Flow names the five multi-turn conversation families.
type Flow int

const (
	FlowAdd Flow = iota
	FlowEdit
	FlowDelete
	FlowFilter
	FlowAsk
)

// Session is one user's in-progress conversation: the suspended state
// plus the fields accepted so far. Sessions are ephemeral and process
// local; they never survive a restart.
type Session struct {
	State State

	// fields accumulated across add/edit turns
	Subject  string
	Deadline time.Time

	// edit target, captured when the index is resolved
	targetID string
}
