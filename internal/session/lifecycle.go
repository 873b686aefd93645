package session

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// Lifecycle states of a session.
const (
	StateCollecting = "collecting"
	StateResolving  = "resolving"
	StateOver       = "over"
)

// Lifecycle events.
const (
	eventComplete = "complete"
	eventResolved = "resolved"
	eventFailed   = "failed"
	eventFinish   = "finish"
)

// newLifecycle builds the turn cycle: actions are collected, the turn is
// resolved, and collection starts again until the battle is over.
func newLifecycle(log *logrus.Entry) *fsm.FSM {
	return fsm.NewFSM(
		StateCollecting,
		fsm.Events{
			{Name: eventComplete, Src: []string{StateCollecting}, Dst: StateResolving},
			{Name: eventResolved, Src: []string{StateResolving}, Dst: StateCollecting},
			{Name: eventFailed, Src: []string{StateResolving}, Dst: StateCollecting},
			{Name: eventFinish, Src: []string{StateResolving}, Dst: StateOver},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.WithFields(logrus.Fields{"from": e.Src, "to": e.Dst}).Debug("session state changed")
			},
		},
	)
}
