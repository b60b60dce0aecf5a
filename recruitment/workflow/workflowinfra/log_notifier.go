package workflowinfra

import (
	"context"

	"github.com/jobgate-vn/jobgate/pkg/logx"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
)

// LogNotifier implements workflow.Notifier by writing transition events
// to the log. Used when no queue backend is configured, mostly in
// development and tests.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs one transition event
func (n *LogNotifier) Notify(ctx context.Context, event workflow.TransitionEvent) error {
	logx.Infof("Transition: kind=%s entity=%s %s->%s actor=%s",
		event.Kind, event.EntityID, event.FromState, event.ToState, event.ActorID)
	return nil
}
