package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirrorMove(t *testing.T) {
	t.Run("Copies the target's last move", func(t *testing.T) {
		dex := testDex(t)
		user := creature(t, dex, CreatureSpec{Species: "pidgey", Moves: []string{"mirror-move"}})
		foe := creature(t, dex, CreatureSpec{Species: "raichu", Moves: []string{"tackle"}})
		bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

		res, err := bf.ResolveTurn(turn(user0, Attack{Move: "mirror-move"}, opp0, Attack{Move: "tackle"}))
		require.NoError(t, err)
		assert.Equal(t, []EffectKind{EffectBasicDamage}, actionOf(t, res, user0).Kinds())
		assert.Equal(t, "tackle", bf.Data(user0).LastMove, "the proxy is recorded")
		assert.Empty(t, bf.Data(user0).Proxy)
	})

	t.Run("Fails without a last move", func(t *testing.T) {
		dex := testDex(t)
		user := creature(t, dex, CreatureSpec{Species: "pidgey", Moves: []string{"mirror-move"}})
		foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"tackle"}})
		bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

		res, err := bf.ResolveTurn(turn(user0, Attack{Move: "mirror-move"}, opp0, Attack{Move: "tackle"}))
		require.NoError(t, err)
		assert.Equal(t, ActionSideEffects{&Failed{Actor: user0, Cause: FailNatural}}, actionOf(t, res, user0))
	})

	t.Run("Copied move checks a sleeping target", func(t *testing.T) {
		dex := testDex(t)
		user := creature(t, dex, CreatureSpec{Species: "pidgey", Moves: []string{"mirror-move"}})
		foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
		bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})
		bf.Data(opp0).LastMove = "dream-eater"

		res, err := bf.ResolveTurn(turn(user0, Attack{Move: "mirror-move"}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
		assert.Equal(t, ActionSideEffects{&Failed{Actor: user0, Cause: FailNatural}}, actionOf(t, res, user0))
		assert.Equal(t, foe.Stats.HP, foe.HP)
		assert.Empty(t, bf.Data(user0).LastMove)
	})

	t.Run("Copied move checks its HP cost", func(t *testing.T) {
		dex := testDex(t)
		user := creature(t, dex, CreatureSpec{Species: "pidgey", HP: 1, Moves: []string{"mirror-move"}})
		foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
		bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})
		bf.Data(opp0).LastMove = "belly-drum"

		res, err := bf.ResolveTurn(turn(user0, Attack{Move: "mirror-move"}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
		assert.Equal(t, ActionSideEffects{&Failed{Actor: user0, Cause: FailNatural}}, actionOf(t, res, user0))
		assert.Equal(t, 1, user.HP)
		assert.Equal(t, 0, bf.Data(user0).Stage(StatAttack))
		assert.Equal(t, OutcomeOngoing, res.Outcome)
	})

	t.Run("Copied move that cannot hit clears the last move", func(t *testing.T) {
		dex := testDex(t)
		user := creature(t, dex, CreatureSpec{Species: "pidgey", Level: 10, Moves: []string{"mirror-move"}})
		foe := creature(t, dex, CreatureSpec{Species: "snorlax", Level: 60, Moves: []string{"splash"}})
		bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})
		bf.Data(user0).ApplyStage(StatSpeed, MaxStage)
		bf.Data(user0).LastMove, bf.Data(user0).RepeatCount = "tackle", 2
		bf.Data(opp0).LastMove = "fissure"

		res, err := bf.ResolveTurn(turn(user0, Attack{Move: "mirror-move"}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
		assert.Equal(t, ActionSideEffects{&Failed{Actor: user0, Cause: FailNatural}}, actionOf(t, res, user0))
		assert.Empty(t, bf.Data(user0).LastMove)
		assert.Zero(t, bf.Data(user0).RepeatCount)
		assert.Empty(t, bf.Data(user0).Proxy)
	})

	t.Run("Copied move that misses crashes", func(t *testing.T) {
		dex := testDex(t)
		user := creature(t, dex, CreatureSpec{Species: "pidgey", Moves: []string{"mirror-move"}})
		foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
		bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})
		bf.Data(opp0).LastMove = "jump-kick"

		res, err := bf.ResolveTurn(turn(user0, Attack{Move: "mirror-move"}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
		assert.Equal(t, []EffectKind{EffectMissed, EffectDirectDamage}, actionOf(t, res, user0).Kinds())
		assert.Equal(t, user.Stats.HP-FractionOf(user.Stats.HP, 2), user.HP)
		assert.Equal(t, foe.Stats.HP, foe.HP)
		assert.Empty(t, bf.Data(user0).LastMove)
	})
}

func TestLockOnEndsWhenTargetLeaves(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "machop", Moves: []string{"lock-on", "fissure"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
	bench := creature(t, dex, CreatureSpec{Species: "magikarp", Moves: []string{"splash"}})
	bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe, bench})

	_, err := bf.ResolveTurn(turn(user0, Attack{Move: "lock-on"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	require.NotNil(t, bf.Data(user0).LockOn)

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "fissure"}, opp0, Swap{PartyIndex: 1}))
	require.NoError(t, err)
	assert.Equal(t, []EffectKind{EffectMissed}, actionOf(t, res, user0).Kinds())
	assert.False(t, bench.Fainted())
	assert.Equal(t, bench.Stats.HP, bench.HP)
	assert.Nil(t, bf.Data(user0).LockOn)
}

func TestThrashLocksIn(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "machop", Moves: []string{"thrash", "tackle"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"splash"}})
	bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "thrash"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, []EffectKind{EffectBasicDamage}, actionOf(t, res, user0).Kinds())
	require.NotNil(t, bf.Data(user0).Forced)
	assert.Equal(t, uint8(2), bf.Data(user0).Forced.Remaining)

	for i := 0; i < 2; i++ {
		res, err = bf.ResolveTurn(turn(user0, Attack{Move: "tackle"}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
		assert.Equal(t, []EffectKind{EffectLocked, EffectBasicDamage}, actionOf(t, res, user0).Kinds())
	}
	assert.Nil(t, bf.Data(user0).Forced)
	assert.Equal(t, 9, user.MoveSlot("thrash").PP)
	assert.Equal(t, uint8(3), bf.Data(user0).RepeatCount)
}

func TestLockOnThenOHKO(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "machop", Moves: []string{"lock-on", "fissure"}})
	foe := creature(t, dex, CreatureSpec{Species: "snorlax", Moves: []string{"double-team"}})
	bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "lock-on"}, opp0, Attack{Move: "double-team"}))
	require.NoError(t, err)
	assert.Equal(t, ActionSideEffects{&LockedOn{Actor: user0, Target: opp0}}, actionOf(t, res, user0))
	require.NotNil(t, bf.Data(user0).LockOn)

	res, err = bf.ResolveTurn(turn(user0, Attack{Move: "fissure"}, opp0, Attack{Move: "double-team"}))
	require.NoError(t, err)
	assert.Equal(t, []EffectKind{EffectBasicDamage, EffectFainted}, actionOf(t, res, user0).Kinds())
	assert.True(t, foe.Fainted())
	assert.Nil(t, bf.Data(user0).LockOn, "lock-on is used up")
	assert.Equal(t, OutcomeUserWon, res.Outcome)
}

func TestWeatherLifecycle(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "geodude", Moves: []string{"sandstorm", "splash"}})
	foe := creature(t, dex, CreatureSpec{Species: "lapras", Moves: []string{"splash"}})
	bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "sandstorm"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, ActionSideEffects{&WeatherStarted{Weather: WeatherSandstorm, Turns: DefaultWeatherTurns}}, actionOf(t, res, user0))
	// Lapras at level 50 has 190 HP; geodude is immune.
	assert.Equal(t, ActionSideEffects{
		&WeatherContinues{Weather: WeatherSandstorm},
		&DirectDamage{Target: opp0, Cause: CauseWeather, Damage: 11, Remaining: 179},
	}, res.Residual)
	assert.Equal(t, user.Stats.HP, user.HP)

	for i := 0; i < 3; i++ {
		_, err = bf.ResolveTurn(turn(user0, Attack{Move: "splash"}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
	}
	res, err = bf.ResolveTurn(turn(user0, Attack{Move: "splash"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, ActionSideEffects{&WeatherEnded{Weather: WeatherSandstorm}}, res.Residual)
	assert.Equal(t, WeatherNone, bf.Field().Weather)
}

func TestToxicEscalates(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "snorlax", Status: "toxic", Moves: []string{"splash"}})
	foe := creature(t, dex, CreatureSpec{Species: "pikachu", Moves: []string{"splash"}})
	bf := singleBattle(t, &ScriptedRandom{}, []*Creature{user}, []*Creature{foe})

	// Snorlax at level 50 has 220 HP: 13, then 27, then 41.
	for _, want := range []int{13, 27, 41} {
		before := user.HP
		res, err := bf.ResolveTurn(turn(user0, Attack{Move: "splash"}, opp0, Attack{Move: "splash"}))
		require.NoError(t, err)
		assert.Equal(t, ActionSideEffects{
			&DirectDamage{Target: user0, Cause: CausePoison, Damage: want, Remaining: before - want},
		}, res.Residual)
	}
}

func TestStatusMoves(t *testing.T) {
	dex := testDex(t)
	user := creature(t, dex, CreatureSpec{Species: "pikachu", Moves: []string{"thunder-wave", "will-o-wisp"}})
	foe := creature(t, dex, CreatureSpec{Species: "geodude", Moves: []string{"splash"}})
	other := creature(t, dex, CreatureSpec{Species: "charmander", Moves: []string{"splash"}})
	bf := singleBattle(t, &ScriptedRandom{Floats: []float64{0, 0}}, []*Creature{user}, []*Creature{foe, other})

	res, err := bf.ResolveTurn(turn(user0, Attack{Move: "thunder-wave"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, ActionSideEffects{&NoEffect{Target: opp0}}, actionOf(t, res, user0), "ground types ignore electric moves")

	res, err = bf.ResolveTurn(turn(user0, Attack{Move: "will-o-wisp"}, opp0, Attack{Move: "splash"}))
	require.NoError(t, err)
	assert.Equal(t, ActionSideEffects{&StatusInflicted{Target: opp0, Status: StatusBurn}}, actionOf(t, res, user0))
	assert.Equal(t, StatusBurn, foe.Status)
}
