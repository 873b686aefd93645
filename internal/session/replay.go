package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/suderio/battleround/internal/data"
	"github.com/suderio/battleround/internal/engine"
	"github.com/suderio/battleround/internal/parser"
	"github.com/suderio/battleround/internal/persistence"
)

// ErrDiverged is wrapped by every replay mismatch.
var ErrDiverged = errors.New("replay diverged from log")

// DivergenceError describes the first point where a replay stopped matching
// its log.
type DivergenceError struct {
	Turn   int
	Index  int
	Want   string
	Got    string
	Reason string
}

func (e *DivergenceError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("turn %d: %s", e.Turn, e.Reason)
	}
	return fmt.Sprintf("turn %d, effect %d: %s (want %s, got %s)", e.Turn, e.Index, e.Reason, e.Want, e.Got)
}

func (e *DivergenceError) Unwrap() error { return ErrDiverged }

// Replayer re-resolves stored battles and checks that every turn produces
// the recorded effects.
type Replayer struct {
	dex *data.Dex
	// OnTurn, when set, is called after each verified turn.
	OnTurn func(res *engine.TurnResult)
}

// NewReplayer creates a replayer over the given static data.
func NewReplayer(dex *data.Dex) *Replayer {
	return &Replayer{dex: dex}
}

// Replay rebuilds the battle of a log and returns a session positioned after
// its last turn. It fails on the first divergent effect.
func (r *Replayer) Replay(log *persistence.Log) (*Session, error) {
	if log == nil || log.Header == nil {
		return nil, persistence.ErrNoHeader
	}
	s, err := newSession(r.dex, log.Header)
	if err != nil {
		return nil, err
	}

	for _, rec := range log.Turns {
		actions := make(map[engine.Battler]engine.TurnAction, len(rec.Commands))
		for _, line := range rec.Commands {
			cmd, err := parser.Parse(line)
			if err != nil {
				return nil, fmt.Errorf("turn %d: %w", rec.Turn, err)
			}
			actor, action, err := cmd.Action(s.activeIndex)
			if err != nil {
				return nil, fmt.Errorf("turn %d: %w", rec.Turn, err)
			}
			actions[actor] = action
		}

		res, err := s.Submit(actions)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", rec.Turn, err)
		}
		if err := compareTurn(&rec, res); err != nil {
			return nil, err
		}
		if r.OnTurn != nil {
			r.OnTurn(res)
		}
	}
	return s, nil
}

func compareTurn(rec *persistence.TurnRecord, res *engine.TurnResult) error {
	if res.Turn != rec.Turn {
		return &DivergenceError{Turn: rec.Turn, Index: -1, Reason: fmt.Sprintf("resolved as turn %d", res.Turn)}
	}
	got, err := persistence.EncodeEffects(res.Effects())
	if err != nil {
		return err
	}
	for i := range max(len(got), len(rec.Effects)) {
		var want, have string
		if i < len(rec.Effects) {
			want = describe(rec.Effects[i])
		}
		if i < len(got) {
			have = describe(got[i])
		}
		if want != have {
			reason := "effect differs"
			if want == "" {
				reason = "unexpected extra effect"
			} else if have == "" {
				reason = "missing effect"
			}
			return &DivergenceError{Turn: rec.Turn, Index: i, Want: want, Got: have, Reason: reason}
		}
	}
	if res.Outcome != rec.Outcome {
		return &DivergenceError{Turn: rec.Turn, Index: -1, Reason: fmt.Sprintf("outcome %s, log says %s", res.Outcome, rec.Outcome)}
	}
	return nil
}

func describe(w persistence.EffectWrapper) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, w.Data); err != nil {
		return string(w.Type) + string(w.Data)
	}
	return string(w.Type) + buf.String()
}
