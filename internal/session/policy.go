package session

import (
	"github.com/suderio/battleround/internal/engine"
)

// RandomPolicy picks actions for computer-controlled battlers: a random
// move with PP left aimed at a random living foe.
type RandomPolicy struct {
	rng engine.Random
}

// NewRandomPolicy creates a policy drawing from its own random source, so
// that its choices never disturb the battle's draws.
func NewRandomPolicy(rng engine.Random) *RandomPolicy {
	return &RandomPolicy{rng: rng}
}

// Choose builds an action for every listed battler.
func (p *RandomPolicy) Choose(bf *engine.Battlefield, battlers []engine.Battler) map[engine.Battler]engine.TurnAction {
	actions := make(map[engine.Battler]engine.TurnAction, len(battlers))
	for _, b := range battlers {
		if a := p.choose(bf, b); a != nil {
			actions[b] = a
		}
	}
	return actions
}

func (p *RandomPolicy) choose(bf *engine.Battlefield, b engine.Battler) engine.TurnAction {
	c := bf.Active(b)
	if c == nil || len(c.Moves) == 0 {
		return nil
	}

	var usable []string
	for _, slot := range c.Moves {
		if slot.PP > 0 {
			usable = append(usable, slot.ID)
		}
	}
	if len(usable) == 0 {
		return engine.Attack{Move: c.Moves[0].ID}
	}
	atk := engine.Attack{Move: usable[p.rng.Intn(len(usable))]}

	var foes []engine.Battler
	for _, other := range bf.ActiveBattlers() {
		if other.Side != b.Side {
			foes = append(foes, other)
		}
	}
	if len(foes) > 1 {
		t := foes[p.rng.Intn(len(foes))]
		atk.Target = &t
	}
	return atk
}
