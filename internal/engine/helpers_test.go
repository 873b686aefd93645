package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suderio/battleround/internal/data"
	"github.com/suderio/battleround/internal/rules"
)

var (
	user0 = Battler{Side: User, Slot: 0}
	user1 = Battler{Side: User, Slot: 1}
	opp0  = Battler{Side: Opponent, Slot: 0}
	opp1  = Battler{Side: Opponent, Slot: 1}
)

func testDex(t *testing.T) *data.Dex {
	t.Helper()
	dex, err := data.DefaultDex()
	require.NoError(t, err)
	return dex
}

func creature(t *testing.T, dex Dex, spec CreatureSpec) *Creature {
	t.Helper()
	if spec.Level == 0 {
		spec.Level = 50
	}
	c, err := NewCreature(dex, spec)
	require.NoError(t, err)
	return c
}

func party(t *testing.T, members ...*Creature) *Party {
	t.Helper()
	p, err := NewParty(members...)
	require.NoError(t, err)
	return p
}

// singleBattle sets up a one-on-one battle with CEL prerequisites enabled.
func singleBattle(t *testing.T, rng Random, user, opponent []*Creature) *Battlefield {
	t.Helper()
	return singleBattleWith(t, testDex(t), rng, user, opponent)
}

func singleBattleWith(t *testing.T, dex Dex, rng Random, user, opponent []*Creature) *Battlefield {
	t.Helper()
	reg, err := rules.NewRegistry()
	require.NoError(t, err)
	bf, err := NewBattlefield(dex, reg, rng,
		NewSingleSide(User, party(t, user...)),
		NewSingleSide(Opponent, party(t, opponent...)))
	require.NoError(t, err)
	return bf
}

func kinds(effects ActionSideEffects) []EffectKind {
	return effects.Kinds()
}

// actionOf returns the effects logged for one actor this turn.
func actionOf(t *testing.T, res *TurnResult, b Battler) ActionSideEffects {
	t.Helper()
	for _, a := range res.Actions {
		if a.Actor == b {
			return a.Effects
		}
	}
	t.Fatalf("no action resolved for %s", b)
	return nil
}
