package engine

import (
	"sort"

	"github.com/suderio/battleround/internal/data"
)

// Ordered is one action queued for execution with its sort keys.
type Ordered struct {
	Actor    Battler
	Action   TurnAction
	Priority int
	Speed    int
}

// Order sorts entries by priority, then speed, both descending. Entries that
// tie on both keys are shuffled; nothing else is reordered.
func Order(rng Random, entries []Ordered) []Ordered {
	out := append([]Ordered(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Speed > out[j].Speed
	})

	for start := 0; start < len(out); {
		end := start + 1
		for end < len(out) && out[end].Priority == out[start].Priority && out[end].Speed == out[start].Speed {
			end++
		}
		group := out[start:end]
		for i := len(group) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			group[i], group[j] = group[j], group[i]
		}
		start = end
	}
	return out
}

// Speed returns the effective speed of an active combatant with stages,
// paralysis and held items folded in.
func (bf *Battlefield) Speed(b Battler) int {
	c := bf.Active(b)
	if c == nil {
		return 0
	}
	speed := StatMultiplier(bf.Data(b).Stage(StatSpeed)).Scale(c.Stats.Speed)
	if c.Status == StatusParalysis {
		speed /= 2
	}
	if c.HeldItem != "" {
		if it, err := bf.dex.Item(c.HeldItem); err == nil && it.Kind == data.ItemHeld && it.SpeedPercent > 0 {
			speed = PercentOf(speed, it.SpeedPercent)
		}
	}
	return speed
}

// priority returns the ordering priority of an action.
func (bf *Battlefield) priority(a TurnAction) (int, error) {
	switch act := a.(type) {
	case Flee:
		return PriorityFlee, nil
	case Swap:
		return PrioritySwap, nil
	case UseItem:
		return PriorityUseItem, nil
	case Attack:
		m, err := bf.dex.Move(act.Move)
		if err != nil {
			return 0, err
		}
		return m.Priority, nil
	}
	return 0, ErrInvalidAction
}
