package session

import (
	"strings"

	"github.com/suderio/battleround/internal/engine"
	"github.com/suderio/battleround/internal/parser"
)

// SplitCommands breaks an input line into single commands. Several actions
// may be entered on one line separated by ";".
//
//	"attack by: user.0 move: tackle; attack by: user.1 move: growl"
func SplitCommands(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// TurnInput collects the actions submitted for the turn being built.
// A later action for the same battler replaces the earlier one.
type TurnInput struct {
	actions map[engine.Battler]engine.TurnAction
}

// NewTurnInput returns an empty input buffer.
func NewTurnInput() *TurnInput {
	return &TurnInput{actions: make(map[engine.Battler]engine.TurnAction)}
}

// Add records the action of a battler.
func (in *TurnInput) Add(actor engine.Battler, action engine.TurnAction) {
	in.actions[actor] = action
}

// Actions returns the collected actions.
func (in *TurnInput) Actions() map[engine.Battler]engine.TurnAction {
	return in.actions
}

// Missing lists the required battlers that have no action yet, in order.
func (in *TurnInput) Missing(required []engine.Battler) []engine.Battler {
	var out []engine.Battler
	for _, b := range required {
		if _, ok := in.actions[b]; !ok {
			out = append(out, b)
		}
	}
	return out
}

// Commands renders the collected actions in the given battler order.
func (in *TurnInput) Commands(order []engine.Battler) []string {
	out := make([]string, 0, len(in.actions))
	for _, b := range order {
		if a, ok := in.actions[b]; ok {
			out = append(out, parser.Format(b, a))
		}
	}
	return out
}

// Reset drops everything collected.
func (in *TurnInput) Reset() {
	clear(in.actions)
}
