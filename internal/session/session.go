package session

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"

	"github.com/suderio/battleround/internal/data"
	"github.com/suderio/battleround/internal/engine"
	"github.com/suderio/battleround/internal/logger"
	"github.com/suderio/battleround/internal/parser"
	"github.com/suderio/battleround/internal/persistence"
	"github.com/suderio/battleround/internal/rules"
)

// Store defines the dependency required by Session to persist turns
type Store interface {
	WriteHeader(h *persistence.Header) error
	AppendTurn(rec *persistence.TurnRecord) error
	Load() (*persistence.Log, error)
	Close() error
}

// Session manages the loop of taking commands, resolving turns and
// persisting them.
type Session struct {
	dex      *data.Dex
	registry *rules.Registry
	store    Store
	header   *persistence.Header
	bf       *engine.Battlefield
	input    *TurnInput
	state    *fsm.FSM
	log      *logrus.Entry
}

// New starts a fresh battle. When store is not nil the header is written to
// it and every resolved turn is appended.
func New(dex *data.Dex, header *persistence.Header, store Store) (*Session, error) {
	s, err := newSession(dex, header)
	if err != nil {
		return nil, err
	}
	if store != nil {
		if err := store.WriteHeader(header); err != nil {
			return nil, fmt.Errorf("failed to write battle header: %w", err)
		}
		s.store = store
	}
	return s, nil
}

// Resume rebuilds a battle from its stored log, verifying every recorded
// turn, and continues appending to the same store.
func Resume(dex *data.Dex, store Store) (*Session, error) {
	log, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load battle log: %w", err)
	}
	s, err := NewReplayer(dex).Replay(log)
	if err != nil {
		return nil, err
	}
	s.store = store
	return s, nil
}

func newSession(dex *data.Dex, header *persistence.Header) (*Session, error) {
	reg, err := NewRegistry(dex)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rules registry: %w", err)
	}
	bf, err := BuildBattlefield(dex, reg, header)
	if err != nil {
		return nil, fmt.Errorf("failed to set up battle: %w", err)
	}
	log := logger.Component("session").WithField("battle", header.Name)
	return &Session{
		dex:      dex,
		registry: reg,
		header:   header,
		bf:       bf,
		input:    NewTurnInput(),
		state:    newLifecycle(log),
		log:      log,
	}, nil
}

// Battlefield returns the battle being played.
func (s *Session) Battlefield() *engine.Battlefield { return s.bf }

// Header returns the description the battle was built from.
func (s *Session) Header() *persistence.Header { return s.header }

// Dex returns the static data the battle uses.
func (s *Session) Dex() *data.Dex { return s.dex }

// State returns the lifecycle state: collecting, resolving or over.
func (s *Session) State() string { return s.state.Current() }

// Over reports whether the battle has ended.
func (s *Session) Over() bool { return s.state.Is(StateOver) }

// Waiting lists the battlers that still need an action this turn. Battlers
// committed to a forced action are never waiting.
func (s *Session) Waiting() []engine.Battler {
	return s.input.Missing(s.required())
}

func (s *Session) required() []engine.Battler {
	var out []engine.Battler
	for _, b := range s.bf.ActiveBattlers() {
		if _, forced := s.bf.PendingAction(b); !forced {
			out = append(out, b)
		}
	}
	return out
}

// Execute takes a raw command line from a UI client. The turn is resolved
// as soon as every battler has an action; until then the result is nil.
func (s *Session) Execute(input string) (*engine.TurnResult, error) {
	if s.Over() {
		return nil, engine.ErrBattleOver
	}
	cmds := SplitCommands(input)
	if len(cmds) == 0 {
		return nil, parser.MapError(input, nil)
	}
	// A line is queued only when every command in it is valid.
	type queued struct {
		actor  engine.Battler
		action engine.TurnAction
	}
	var batch []queued
	for _, line := range cmds {
		cmd, err := parser.Parse(line)
		if err != nil {
			return nil, err
		}
		actor, action, err := cmd.Action(s.activeIndex)
		if err != nil {
			return nil, err
		}
		if !s.waitingOn(actor) {
			return nil, fmt.Errorf("%w: %s is not waiting for an action", engine.ErrInvalidAction, actor)
		}
		batch = append(batch, queued{actor, action})
	}
	for _, q := range batch {
		s.input.Add(q.actor, q.action)
	}
	if len(s.Waiting()) > 0 {
		return nil, nil
	}
	return s.resolve()
}

// Submit resolves a turn from already built actions.
func (s *Session) Submit(actions map[engine.Battler]engine.TurnAction) (*engine.TurnResult, error) {
	s.input.Reset()
	for b, a := range actions {
		s.input.Add(b, a)
	}
	return s.resolve()
}

func (s *Session) resolve() (*engine.TurnResult, error) {
	defer s.input.Reset()

	ctx := context.Background()
	if s.Over() {
		return nil, engine.ErrBattleOver
	}
	if err := s.state.Event(ctx, eventComplete); err != nil {
		return nil, err
	}

	order := s.bf.ActiveBattlers()
	commands := s.input.Commands(order)
	res, err := s.bf.ResolveTurn(s.input.Actions())
	if err != nil {
		if ferr := s.state.Event(ctx, eventFailed); ferr != nil {
			s.log.WithError(ferr).Error("failed to leave resolving state")
			return nil, fmt.Errorf("%w (state %s: %v)", err, s.State(), ferr)
		}
		return nil, err
	}

	next := eventResolved
	if res.Outcome != engine.OutcomeOngoing {
		next = eventFinish
	}
	if err := s.state.Event(ctx, next); err != nil {
		return nil, err
	}

	if s.store != nil {
		rec, err := persistence.NewTurnRecord(res, commands)
		if err != nil {
			return nil, err
		}
		if err := s.store.AppendTurn(rec); err != nil {
			return nil, fmt.Errorf("failed to append turn %d: %w", res.Turn, err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"turn":    res.Turn,
		"effects": len(res.Effects()),
		"outcome": res.Outcome,
	}).Info("turn resolved")
	return res, nil
}

func (s *Session) waitingOn(b engine.Battler) bool {
	for _, r := range s.required() {
		if r == b {
			return true
		}
	}
	return false
}

func (s *Session) activeIndex(b engine.Battler) int {
	if side := s.bf.Side(b.Side); side != nil {
		return side.ActiveIndex(b.Slot)
	}
	return 0
}

// Close releases the store.
func (s *Session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
