package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/battleround/internal/engine"
)

func testHeader() *Header {
	return &Header{
		Name:   "gym",
		Format: engine.FormatSingle,
		Seed:   42,
		User: []Team{{Trainer: "red", Party: []engine.CreatureSpec{
			{Species: "pikachu", Level: 50, Moves: []string{"thunderbolt"}},
		}}},
		Opponent: []Team{{Party: []engine.CreatureSpec{
			{Species: "geodude", Level: 48, Moves: []string{"tackle", "defense-curl"}, Status: "burn"},
		}}},
	}
}

func TestStoreAppendLoad(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.jsonl")

	store, err := NewStore(logPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.WriteHeader(testHeader()))

	user := engine.Battler{Side: engine.User}
	foe := engine.Battler{Side: engine.Opponent}
	effects, err := EncodeEffects(engine.ActionSideEffects{
		&engine.BasicDamage{Target: foe, Damage: 30, Remaining: 70},
		&engine.StatChanged{Target: user, Stat: "attack", Delta: 2},
		&engine.Missed{Actor: foe, Target: user},
		&engine.Fainted{Target: foe},
	})
	require.NoError(t, err)

	require.NoError(t, store.AppendTurn(&TurnRecord{
		Turn:     1,
		Commands: []string{"attack by: user.0 move: tackle"},
		Effects:  effects,
		Outcome:  engine.OutcomeUserWon,
	}))

	// Read it back
	log, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, log.Header)
	assert.Equal(t, "gym", log.Header.Name)
	assert.Equal(t, engine.FormatSingle, log.Header.Format)
	assert.Equal(t, uint64(42), log.Header.Seed)
	assert.Equal(t, "burn", log.Header.Opponent[0].Party[0].Status)

	require.Len(t, log.Turns, 1)
	rec := log.Turns[0]
	assert.Equal(t, engine.OutcomeUserWon, rec.Outcome)
	assert.Equal(t, []string{"attack by: user.0 move: tackle"}, rec.Commands)

	decoded, err := DecodeEffects(rec.Effects)
	require.NoError(t, err)
	require.Len(t, decoded, 4)

	dmg, ok := decoded[0].(*engine.BasicDamage)
	require.True(t, ok, "expected first effect to be BasicDamage")
	assert.Equal(t, foe, dmg.Target)
	assert.Equal(t, 30, dmg.Damage)

	stat, ok := decoded[1].(*engine.StatChanged)
	require.True(t, ok)
	assert.Equal(t, 2, stat.Delta)

	assert.Equal(t, []engine.EffectKind{
		engine.EffectBasicDamage, engine.EffectStatChanged, engine.EffectMissed, engine.EffectFainted,
	}, decoded.Kinds())
}

func TestStoreHeaderRules(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.jsonl")

	store, err := NewStore(logPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoHeader)

	require.NoError(t, store.WriteHeader(testHeader()))
	assert.Error(t, store.WriteHeader(testHeader()), "a second header must be rejected")
}

func TestStoreRejectsUnknownRecords(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.jsonl")
	require.NoError(t, os.WriteFile(logPath, []byte(`{"type":"Mystery","data":{}}`+"\n"), 0644))

	store, err := NewStore(logPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load()
	assert.ErrorContains(t, err, "unknown record type")
}

func TestDecodeUnknownEffect(t *testing.T) {
	_, err := DecodeEffects([]EffectWrapper{{Type: "Teleported", Data: []byte(`{}`)}})
	assert.Error(t, err)
}

func TestBattleManager(t *testing.T) {
	m := NewBattleManager(filepath.Join(t.TempDir(), "battles"))

	names, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, name := range []string{"rematch", "first"} {
		s, err := m.Create(name)
		require.NoError(t, err)
		require.NoError(t, s.Close())
	}

	_, err = m.Create("first")
	assert.Error(t, err, "existing battles are not overwritten")

	names, err = m.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "rematch"}, names)

	s, err := m.Load("first")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = m.Load("missing")
	assert.Error(t, err)
}
