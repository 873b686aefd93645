package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suderio/battleround/internal/data"
)

func turn(actions ...any) map[Battler]TurnAction {
	out := make(map[Battler]TurnAction)
	for i := 0; i+1 < len(actions); i += 2 {
		out[actions[i].(Battler)] = actions[i+1].(TurnAction)
	}
	return out
}

func TestSleepOnlyMoveAgainstAwakeTarget(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "gengar", Level: 20, Moves: []string{"dream-eater"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Level: 20, Moves: []string{"splash"}})
	bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "dream-eater"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)

	effects := actionOf(t, res, user0)
	require.NotEmpty(t, effects)
	assert.Equal(t, &Failed{Actor: user0, Cause: FailNatural}, effects[0])
	assert.NotContains(t, res.Effects().Kinds(), EffectBasicDamage)
	assert.Equal(t, foe.Stats.HP, foe.HP)
	assert.Empty(t, bf.Data(user0).LastMove)
}

func TestSleepOnlyMoveAgainstSleepingTarget(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "gengar", Level: 20, HP: 10, Moves: []string{"dream-eater"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Level: 20, Status: "sleep", Moves: []string{"splash"}})
	bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "dream-eater"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)

	assert.Equal(t, []EffectKind{EffectBasicDamage, EffectHealed}, actionOf(t, res, user0).Kinds())
	assert.Equal(t, []EffectKind{EffectAsleep}, actionOf(t, res, opp0).Kinds())
	assert.Less(t, foe.HP, foe.Stats.HP)
	assert.Greater(t, user.HP, 10)
}

func TestBellyDrumThreshold(t *testing.T) {
	t.Run("Fails at 1 HP", func(t *testing.T) {
		dex := testDex(t)
		user := creature(t, dex, CreatureSpec{Species: "snorlax", Level: 20, HP: 1, Moves: []string{"belly-drum"}})
		foe := creature(t, dex, CreatureSpec{Species: "pikachu", Level: 20, Moves: []string{"splash"}})
		bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

		res, err := bf.ResolveTurn(turn(user0, Attack{Move: "belly-drum"}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)

		assert.Equal(t, ActionSideEffects{&Failed{Actor: user0, Cause: FailNatural}}, actionOf(t, res, user0))
		assert.Equal(t, 1, user.HP)
		assert.Equal(t, 0, bf.Data(user0).Stage(StatAttack))
	})

	t.Run("Pays HP and maxes attack", func(t *testing.T) {
		dex := testDex(t)
		// Snorlax at level 20 has 94 HP.
		user := creature(t, dex, CreatureSpec{Species: "snorlax", Level: 20, Moves: []string{"belly-drum"}})
		foe := creature(t, dex, CreatureSpec{Species: "pikachu", Level: 20, Moves: []string{"splash"}})
		bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

		res, err := bf.ResolveTurn(turn(user0, Attack{Move: "belly-drum"}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)

		assert.Equal(t, ActionSideEffects{
			&DirectDamage{Target: user0, Cause: CauseSelfCost, Damage: 47, Remaining: 47},
			&StatMaxed{Target: user0, Stat: "attack"},
		}, actionOf(t, res, user0))
		assert.Equal(t, MaxStage, bf.Data(user0).Stage(StatAttack))
		assert.Equal(t, "belly-drum", bf.Data(user0).LastMove)
	})
}

func TestPrereqFormulaFailure(t *testing.T) {
	dex := testDex(t)
	dex.AddMove("wake-slap", data.Move{
		Name: "Wake Slap", Type: data.TypeFighting, Category: data.CategoryPhysical, Power: 70,
		Accuracy: data.Accuracy{Kind: data.AccuracyPercentage, Value: 100}, PP: 10,
		Target: data.TargetOpponent, Effect: "damage",
		Prereq: []data.Prereq{{Name: "target_asleep", Formula: "target.status == 'sleep'"}},
	})
	user := creature(t, dex, CreatureSpec{Species: "machop", Moves: []string{"wake-slap"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
	bf := singleBattleWith(t, dex, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

	m, err := dex.Move("wake-slap")
	require.NoError(t, err)
	check, err := bf.EvaluateFailure(user0, m, opp0)
	require.NoError(t, err)
	assert.True(t, check.Terminal())
	assert.Equal(t, ActionSideEffects{&Failed{Actor: user0, Cause: FailPrereq}}, check.Effects())

	foe.Status = StatusSleep
	check, err = bf.EvaluateFailure(user0, m, opp0)
	require.NoError(t, err)
	ok, decided := check.Value()
	assert.True(t, decided)
	assert.True(t, ok)
}

func TestProtectionCounter(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "pikachu", Moves: []string{"protect", "tackle"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
	rng := &ScriptedRandom{}
	bf := singleBattle(t, rng, []*Creature{user}, []*Creature{foe})

	protect := turn(user0, Attack{Move: "protect"}, opp0, Attack{Move: "splash"})
	tackle := turn(user0, Attack{Move: "tackle"}, opp0, Attack{Move: "splash"})

	steps := []struct {
		name    string
		actions map[Battler]TurnAction
		ints    []int
		first   EffectKind
		count   uint8
	}{
		{"First use always works", protect, nil, EffectStartProtection, 1},
		{"Second use passes a 1/3 roll", protect, []int{0}, EffectStartProtection, 2},
		{"Third use passes a 1/9 roll", protect, []int{0}, EffectStartProtection, 3},
		{"Other move resets", tackle, nil, EffectBasicDamage, 0},
		{"Counts again from one", protect, nil, EffectStartProtection, 1},
		{"Failed roll resets", protect, []int{2}, EffectFailed, 0},
	}
	for _, step := range steps {
		rng.Ints = step.ints
		res, err := bf.ResolveTurn(step.actions)
		require.NoError(t, err, step.name)
		effects := actionOf(t, res, user0)
		require.NotEmpty(t, effects, step.name)
		assert.Equal(t, step.first, effects[0].Kind(), step.name)
		assert.Equal(t, step.count, bf.Data(user0).ProtectCount, step.name)
	}
}

func TestProtectBlocksAttacks(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "pikachu", Moves: []string{"protect"}})
	foe := creature(t, dex, CreatureSpec{Species: "machop", Moves: []string{"jump-kick"}})
	bf := singleBattle(t, &ScriptedRandom{Floats: []float64{0}}, []*Creature{user}, []*Creature{foe})

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "protect"}, opp0, Attack{Move: "jump-kick"}))
	require.NoError(t, err)

	assert.Equal(t, user.Stats.HP, user.HP)
	// Machop at level 50 has 130 HP and crashes for half of it.
	assert.Equal(t, ActionSideEffects{
		&IsProtected{Target: user0},
		&DirectDamage{Target: opp0, Cause: CauseCrash, Damage: 65, Remaining: 65},
	}, actionOf(t, res, opp0))
	assert.False(t, bf.Data(user0).Protected, "protection lasts one turn")
}

func TestRecoilOnMiss(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "machop", Moves: []string{"jump-kick"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
	bf := singleBattle(t, &ScriptedRandom{Floats: []float64{0.99}}, []*Creature{user}, []*Creature{foe})

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "jump-kick"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)

	assert.Equal(t, ActionSideEffects{
		&Missed{Actor: user0, Target: opp0},
		&DirectDamage{Target: user0, Cause: CauseCrash, Damage: 65, Remaining: 65},
	}, actionOf(t, res, user0))
	assert.Equal(t, foe.Stats.HP, foe.HP)
	assert.Equal(t, 9, user.MoveSlot("jump-kick").PP)
}

func TestRageEndsOnOtherMove(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "machop", Moves: []string{"rage", "swords-dance"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"tackle", "splash"}})
	bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "rage"}, opp0, Attack{Move: "tackle"}))
	require.NoError(t, err)
	assert.Equal(t, []EffectKind{EffectBasicDamage, EffectRageStart}, actionOf(t, res, user0).Kinds())
	assert.Equal(t, []EffectKind{EffectBasicDamage, EffectRageBuilding}, actionOf(t, res, opp0).Kinds())
	assert.Equal(t, 1, bf.Data(user0).Stage(StatAttack))

	res, err = bf.ResolveTurn(turn(user0, Attack{Move: "rage"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.NotContains(t, actionOf(t, res, user0).Kinds(), EffectRageEnd)
	assert.Equal(t, uint8(2), bf.Data(user0).RepeatCount)

	res, err = bf.ResolveTurn(turn(user0, Attack{Move: "swords-dance"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, []EffectKind{EffectStatChanged, EffectRageEnd}, actionOf(t, res, user0).Kinds())
	assert.False(t, bf.Data(user0).Enraged)
}

func TestChargeMove(t *testing.T) {
	t.Run("Charges then fires", func(t *testing.T) {
		dex := testDex(t)
		user := creature(t, dex, CreatureSpec{Species: "bulbasaur", Moves: []string{"solar-beam"}})
		foe := creature(t, dex, CreatureSpec{Species: "squirtle", Moves: []string{"splash"}})
		bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

		res, err := bf.ResolveTurn(turn(user0, Attack{Move: "solar-beam"}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
		assert.Equal(t, ActionSideEffects{&Charging{Actor: user0, Move: "solar-beam"}}, actionOf(t, res, user0))

		pending, ok := bf.PendingAction(user0)
		require.True(t, ok)
		assert.Equal(t, Attack{Move: "solar-beam"}, pending)

		// The forced action replaces whatever is submitted.
		res, err = bf.ResolveTurn(turn(opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
		assert.Equal(t, EffectBasicDamage, actionOf(t, res, user0)[0].Kind())
		assert.Equal(t, 9, user.MoveSlot("solar-beam").PP)
		_, ok = bf.PendingAction(user0)
		assert.False(t, ok)
	})

	t.Run("Fires at once in sun", func(t *testing.T) {
		dex := testDex(t)
		user := creature(t, dex, CreatureSpec{Species: "bulbasaur", Moves: []string{"solar-beam"}})
		foe := creature(t, dex, CreatureSpec{Species: "squirtle", Moves: []string{"splash"}})
		bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})
		bf.Field().SetWeather(WeatherSun, 5)

		res, err := bf.ResolveTurn(turn(user0, Attack{Move: "solar-beam"}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
		assert.Equal(t, EffectBasicDamage, actionOf(t, res, user0)[0].Kind())
	})
}

func TestFaintAndReplacement(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "raichu", Moves: []string{"thunderbolt"}})
	karp := creature(t, dex, CreatureSpec{Species: "magikarp", Level: 5, Moves: []string{"splash"}})
	turtle := creature(t, dex, CreatureSpec{Species: "squirtle", Level: 5, Moves: []string{"splash"}})
	bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{karp, turtle})

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "thunderbolt"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)

	require.Len(t, res.Actions, 1, "the fainted magikarp does not act")
	assert.Equal(t, []EffectKind{EffectBasicDamage, EffectSuperEffective, EffectFainted}, actionOf(t, res, user0).Kinds())
	assert.Equal(t, ActionSideEffects{&SentOut{Target: opp0, Index: 1, Species: "Squirtle"}}, res.Replacements)
	assert.Equal(t, OutcomeOngoing, res.Outcome)
	assert.Same(t, turtle, bf.Active(opp0))

	res, err = bf.ResolveTurn(turn(user0, Attack{Move: "thunderbolt"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, OutcomeUserWon, res.Outcome)
	assert.Nil(t, bf.Active(opp0))

	_, err = bf.ResolveTurn(turn(user0, Attack{Move: "thunderbolt"}))
	assert.ErrorIs(t, err, ErrBattleOver)
}

func TestSwapWithSpikes(t *testing.T) {
	dex := testDex(t)
	lead := creature(t, dex, CreatureSpec{Species: "pikachu", Moves: []string{"tackle"}})
	bench := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"tackle"}})
	foe := creature(t, dex, CreatureSpec{Species: "geodude", Moves: []string{"spikes"}})
	bf := singleBattle(t, &ScriptedRandom{}, []*Creature{lead, bench}, []*Creature{foe})

	bf.Data(user0).ApplyStage(StatAttack, 2)
	res, err := bf.ResolveTurn(turn(user0, Swap{PartyIndex: 1}, opp0, Attack{Move: "spikes"}))
	require.NoError(t, err)

	assert.Equal(t, ActionSideEffects{
		&Withdrawn{Target: user0, Index: 0},
		&SentOut{Target: user0, Index: 1, Species: "Snorlax"},
	}, actionOf(t, res, user0))
	assert.Equal(t, ActionSideEffects{&HazardSet{Side: User, Layers: 1}}, actionOf(t, res, opp0))
	assert.Equal(t, 0, bf.Data(user0).Stage(StatAttack), "battle data resets on switch")

	res, err = bf.ResolveTurn(turn(user0, Swap{PartyIndex: 0}, opp0, Attack{Move: "spikes"}))
	require.NoError(t, err)
	// Pikachu at level 50 has 95 HP; one layer deals 1/8.
	assert.Equal(t, ActionSideEffects{
		&Withdrawn{Target: user0, Index: 1},
		&SentOut{Target: user0, Index: 0, Species: "Pikachu"},
		&DirectDamage{Target: user0, Cause: CauseSpikes, Damage: 11, Remaining: 84},
	}, actionOf(t, res, user0))
}

func TestBindingTrapsAndHurts(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "squirtle", Moves: []string{"wrap"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
	other := creature(t, dex, CreatureSpec{Species: "pidgey", Moves: []string{"splash"}})
	bf := singleBattle(t, &ScriptedRandom{Floats: []float64{0}, Ints: []int{23, 15, 0}}, []*Creature{user}, []*Creature{foe, other})

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "wrap"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, []EffectKind{EffectBasicDamage, EffectBound}, actionOf(t, res, user0).Kinds())
	// Snorlax at level 50 has 220 HP.
	assert.Contains(t, res.Residual, SideEffect(&DirectDamage{Target: opp0, Cause: CauseBind, Damage: 13, Remaining: foe.HP}))
	// Two turns bound, one already spent.
	assert.Equal(t, uint8(1), bf.Data(opp0).Bound.Remaining)

	res, err = bf.ResolveTurn(turn(user0, Attack{Move: "wrap"}, opp0, Swap{PartyIndex: 1}))
	require.NoError(t, err)
	assert.Equal(t, ActionSideEffects{&Failed{Actor: opp0, Cause: FailTrapped}}, actionOf(t, res, opp0))
	assert.Contains(t, res.Residual.Kinds(), EffectBindEnded)
	assert.Nil(t, bf.Data(opp0).Bound)
}

func TestItems(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "pikachu", HP: 50, Status: "poison", Moves: []string{"tackle"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
	bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

	res, err := bf.ResolveTurn(turn(user0, UseItem{Item: "potion", PartySlot: 0}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, ActionSideEffects{&ItemUsed{Actor: user0, Item: "potion", PartySlot: 0, Amount: 20}}, actionOf(t, res, user0))

	res, err = bf.ResolveTurn(turn(user0, UseItem{Item: "full-heal", PartySlot: 0}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, ActionSideEffects{&ItemUsed{Actor: user0, Item: "full-heal", PartySlot: 0, Cured: StatusPoison}}, actionOf(t, res, user0))
	assert.Equal(t, StatusNone, user.Status)

	res, err = bf.ResolveTurn(turn(user0, UseItem{Item: "full-heal", PartySlot: 0}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, ActionSideEffects{&Failed{Actor: user0, Cause: FailNatural}}, actionOf(t, res, user0))

	res, err = bf.ResolveTurn(turn(user0, UseItem{Item: "x-speed", PartySlot: 0}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, []EffectKind{EffectItemUsed, EffectStatChanged}, actionOf(t, res, user0).Kinds())
	assert.Equal(t, 1, bf.Data(user0).Stage(StatSpeed))
}

func TestFlee(t *testing.T) {
	t.Run("Faster side escapes", func(t *testing.T) {
		dex := testDex(t)
		user := creature(t, dex, CreatureSpec{Species: "pikachu", Moves: []string{"tackle"}})
		foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"tackle"}})
		bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

		res, err := bf.ResolveTurn(turn(user0, Flee{}, opp0, Attack{Move: "tackle"}))
		require.NoError(t, err)
		assert.Equal(t, OutcomeFled, res.Outcome)
		require.Len(t, res.Actions, 1, "nothing resolves after an escape")
		assert.Equal(t, ActionSideEffects{&Fled{Side: User}}, res.Actions[0].Effects)
	})

	t.Run("Slower side needs luck", func(t *testing.T) {
		dex := testDex(t)
		user := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
		foe := creature(t, dex, CreatureSpec{Species: "pikachu", Moves: []string{"splash"}})
		rng := &ScriptedRandom{}
		bf := singleBattle(t, rng, []*Creature{user}, []*Creature{foe})

		// 35*128/95 = 47; an exhausted script rolls 255.
		res, err := bf.ResolveTurn(turn(user0, Flee{}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
		assert.Equal(t, ActionSideEffects{&FleeFailed{Side: User}}, actionOf(t, res, user0))
		assert.Equal(t, 1, bf.Side(User).FleeAttempts())

		// 47 + 30 = 77 beats a roll of 76.
		rng.Ints = []int{76}
		res, err = bf.ResolveTurn(turn(user0, Flee{}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
		assert.Equal(t, OutcomeFled, res.Outcome)
	})
}

func TestResolveTurnRejectsBadInput(t *testing.T) {
	dex := testDex(t)
	dex.AddMove("transform", data.Move{Name: "Transform", Type: data.TypeNormal, Category: data.CategoryStatus,
		Accuracy: data.Accuracy{Kind: data.AccuracyAlways}, PP: 10, Target: data.TargetOpponent, Effect: "transform"})
	user := creature(t, dex, CreatureSpec{Species: "pikachu", Moves: []string{"tackle", "transform"}})
	bench := creature(t, dex, CreatureSpec{Species: "snorlax", HP: 1, Moves: []string{"tackle"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
	bf := singleBattleWith(t, dex, &ScriptedRandom{}, []*Creature{user, bench}, []*Creature{foe})

	far := Battler{Side: Opponent, Slot: 3}
	tests := []struct {
		name    string
		actions map[Battler]TurnAction
		err     error
	}{
		{"Missing action", turn(user0, Attack{Move: "tackle"}), ErrMissingAction},
		{"Unknown move", turn(user0, Attack{Move: "hyper-beam-9000"}, opp0, Attack{Move: "splash"}), data.ErrUnknownID},
		{"Move not known", turn(user0, Attack{Move: "thunder"}, opp0, Attack{Move: "splash"}), ErrInvalidAction},
		{"Unsupported effect", turn(user0, Attack{Move: "transform"}, opp0, Attack{Move: "splash"}), ErrUnsupportedMove},
		{"Bad target", turn(user0, Attack{Move: "tackle", Target: &far}, opp0, Attack{Move: "splash"}), ErrInvalidAction},
		{"Inactive actor", turn(user0, Attack{Move: "tackle"}, opp0, Attack{Move: "splash"}, user1, Flee{}), ErrInvalidAction},
		{"Swap to active", turn(user0, Swap{PartyIndex: 0}, opp0, Attack{Move: "splash"}), ErrInvalidAction},
		{"Swap to empty", turn(user0, Swap{PartyIndex: 4}, opp0, Attack{Move: "splash"}), ErrInvalidAction},
		{"Held item", turn(user0, UseItem{Item: "quick-scarf"}, opp0, Attack{Move: "splash"}), ErrInvalidAction},
		{"Unknown item", turn(user0, UseItem{Item: "rare-candy"}, opp0, Attack{Move: "splash"}), data.ErrUnknownID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bf.ResolveTurn(tt.actions)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 0, bf.Turn(), "rejected turns change nothing")
			assert.Equal(t, foe.Stats.HP, foe.HP)
		})
	}
}

func TestDoubleBattleSpreadMove(t *testing.T) {
	dex := testDex(t)
	a := creature(t, dex, CreatureSpec{Species: "pikachu", Moves: []string{"growl"}})
	b := creature(t, dex, CreatureSpec{Species: "raichu", Moves: []string{"splash"}})
	x := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
	y := creature(t, dex, CreatureSpec{Species: "lapras", Moves: []string{"splash"}})

	user, err := NewSide(FormatDouble, User, party(t, a, b))
	require.NoError(t, err)
	opp, err := NewSide(FormatDouble, Opponent, party(t, x, y))
	require.NoError(t, err)
	bf, err := NewBattlefield(dex, nil, &ScriptedRandom{}, user, opp)
	require.NoError(t, err)

	assert.Equal(t, []Battler{user0, user1, opp0, opp1}, bf.ActiveBattlers())

	res, err := bf.ResolveTurn(turn(
		user0, Attack{Move: "growl"}, user1, Attack{Move: "splash"},
		opp0, Attack{Move: "splash"}, opp1, Attack{Move: "splash"},
	))
	require.NoError(t, err)
	assert.Equal(t, ActionSideEffects{
		&StatChanged{Target: opp0, Stat: "attack", Delta: -1},
		&StatChanged{Target: opp1, Stat: "attack", Delta: -1},
	}, actionOf(t, res, user0))
}

func TestTagSideSlotsDrawFromOwnParty(t *testing.T) {
	dex := testDex(t)
	mk := func(species string, hp int) *Creature {
		return creature(t, dex, CreatureSpec{Species: species, HP: hp, Moves: []string{"tackle"}})
	}
	first := party(t, mk("pikachu", 0), mk("raichu", 0))
	second := party(t, mk("snorlax", 0), mk("lapras", 0))

	side, err := NewSide(FormatTag, User, first, second)
	require.NoError(t, err)
	assert.Equal(t, 2, side.Slots())
	assert.Same(t, first, side.Party(0))
	assert.Same(t, second, side.Party(1))
	assert.Equal(t, "pikachu", side.Active(0).Species)
	assert.Equal(t, "snorlax", side.Active(1).Species)

	idx, ok := side.NextReplacement(1)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "lapras", second.Get(idx).Species)

	_, err = NewSide(FormatTag, User, first)
	assert.Error(t, err)
}

func TestDoubleSideNeverDoublesUp(t *testing.T) {
	dex := testDex(t)
	mk := func(species string) *Creature {
		return creature(t, dex, CreatureSpec{Species: species, Moves: []string{"tackle"}})
	}
	p := party(t, mk("pikachu"), mk("raichu"), mk("snorlax"))
	side := NewDoubleSide(User, p)

	assert.Equal(t, 0, side.ActiveIndex(0))
	assert.Equal(t, 1, side.ActiveIndex(1))
	assert.Error(t, side.SwapIn(0, 1), "raichu is already out in slot 1")

	idx, ok := side.NextReplacement(0)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
}
