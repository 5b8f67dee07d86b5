// Package bot routes inbound chat messages to stateless commands or the
// dialog engine and pushes replies back through the transport.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/avetisov/deadlinebot/internal/advisor"
	"github.com/avetisov/deadlinebot/internal/bot/formatter"
	"github.com/avetisov/deadlinebot/internal/dialog"
	"github.com/avetisov/deadlinebot/internal/domain"
	"github.com/avetisov/deadlinebot/internal/scheduler"
	"github.com/avetisov/deadlinebot/internal/service"
)

const (
	msgGreeting = "👋 Hi! I'm your deadline assistant 🤖\nUse the keyboard below or type /list to get started."
	msgHint     = "I didn't get that. Use the keyboard buttons, or /cancel to stop the current flow."
	msgFailure  = "⚠️ Something went wrong. Please try again."
)

// Dispatcher is the single entry point for inbound messages. Turns are
// serialized per owner: two messages from the same user run in order,
// while different users never block each other, even through a slow
// advisory call.
type Dispatcher struct {
	assignments service.AssignmentService
	dialogs     *dialog.Engine
	advisor     *advisor.Service
	sender      Sender
	now         func() time.Time
	logger      *slog.Logger

	mu         sync.Mutex
	ownerLocks map[string]*sync.Mutex
}

// NewDispatcher wires the dispatcher. now and logger may be nil.
func NewDispatcher(assignments service.AssignmentService, dialogs *dialog.Engine, adv *advisor.Service, sender Sender, now func() time.Time, logger *slog.Logger) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		assignments: assignments,
		dialogs:     dialogs,
		advisor:     adv,
		sender:      sender,
		now:         now,
		logger:      logger,
		ownerLocks:  make(map[string]*sync.Mutex),
	}
}

// HandleMessage processes one inbound message and sends the reply.
func (d *Dispatcher) HandleMessage(ctx context.Context, owner, text string) {
	lock := d.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	reply := d.route(ctx, owner, strings.TrimSpace(text))
	if reply == "" {
		return
	}
	if err := d.sender.Send(ctx, owner, reply); err != nil {
		d.logger.Warn("sending reply failed", "owner", owner, "error", err)
	}
}

func (d *Dispatcher) ownerLock(owner string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	lock, ok := d.ownerLocks[owner]
	if !ok {
		lock = &sync.Mutex{}
		d.ownerLocks[owner] = lock
	}
	return lock
}

func (d *Dispatcher) route(ctx context.Context, owner, text string) string {
	if alias, ok := commandAliases[strings.ToLower(text)]; ok {
		text = alias
	}

	switch text {
	case "/start":
		return msgGreeting
	case "/cancel":
		return d.dialogs.Cancel(owner)
	case BtnAdd:
		return d.dialogs.Start(ctx, owner, dialog.FlowAdd)
	case BtnEdit:
		return d.dialogs.Start(ctx, owner, dialog.FlowEdit)
	case BtnDelete:
		return d.dialogs.Start(ctx, owner, dialog.FlowDelete)
	case BtnFilter:
		return d.dialogs.Start(ctx, owner, dialog.FlowFilter)
	case BtnAdvice:
		return d.dialogs.Start(ctx, owner, dialog.FlowAsk)
	case BtnList:
		return d.listReply(ctx, owner)
	case BtnStats:
		return d.statsReply(ctx, owner)
	case BtnPriority:
		return d.priorityReply(ctx, owner)
	case BtnWeekPlan:
		return d.weekPlanReply(ctx, owner)
	}

	if d.dialogs.Active(owner) {
		return d.dialogs.Handle(ctx, owner, text)
	}
	return msgHint
}

func (d *Dispatcher) listReply(ctx context.Context, owner string) string {
	list, err := d.assignments.List(ctx, owner)
	if err != nil {
		d.logger.Error("listing assignments failed", "owner", owner, "error", err)
		return msgFailure
	}
	return formatter.AssignmentList(list)
}

func (d *Dispatcher) statsReply(ctx context.Context, owner string) string {
	st, err := d.assignments.Stats(ctx, owner)
	if err != nil {
		d.logger.Error("computing stats failed", "owner", owner, "error", err)
		return msgFailure
	}
	return formatter.StatsSummary(st)
}

// priorityReply picks the most urgent assignment and asks the advisor
// for a short day plan around it.
func (d *Dispatcher) priorityReply(ctx context.Context, owner string) string {
	list, err := d.assignments.List(ctx, owner)
	if err != nil {
		d.logger.Error("listing assignments failed", "owner", owner, "error", err)
		return msgFailure
	}
	if len(list) == 0 {
		return formatter.NoAssignments
	}

	top := scheduler.MostUrgent(list, d.now())
	prompt := fmt.Sprintf(
		"The main assignment for today:\n%s\nDeadline: %s\nDifficulty: %d/5\nRisk: %d/5\n\nDraft a plan for today in 3 steps.",
		top.Subject, top.Deadline.Format(domain.DateLayout), top.Difficulty, top.Risk)

	return "📌 Priority of the day\n\n" + d.advisor.Advise(ctx, prompt)
}

// weekPlanReply serializes every assignment into one prompt and relays
// the advisor's weekly schedule.
func (d *Dispatcher) weekPlanReply(ctx context.Context, owner string) string {
	list, err := d.assignments.List(ctx, owner)
	if err != nil {
		d.logger.Error("listing assignments failed", "owner", owner, "error", err)
		return msgFailure
	}
	if len(list) == 0 {
		return formatter.NoAssignments
	}

	var b strings.Builder
	b.WriteString("Assignments:\n")
	for _, a := range list {
		fmt.Fprintf(&b, "- %s, deadline %s, difficulty %d, risk %d\n",
			a.Subject, a.Deadline.Format(domain.DateLayout), a.Difficulty, a.Risk)
	}
	prompt := fmt.Sprintf(
		"Based on these assignments, draft a week plan (Mon-Sun) that respects the deadlines and difficulty.\n\n%s",
		b.String())

	return "📅 Week plan\n\n" + d.advisor.Advise(ctx, prompt)
}
