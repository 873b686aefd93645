package engine

import (
	"fmt"

	"github.com/suderio/battleround/internal/data"
)

// ohkoBase is the hit chance of a one-hit-knockout move at equal levels.
const ohkoBase = 30

// EvaluateAccuracy decides whether move, used by attacker, connects with
// defender. A terminal check means the move failed outright.
func (bf *Battlefield) EvaluateAccuracy(attacker, defender Battler, move *data.Move) (ActionCheck[bool], error) {
	atk, def := bf.Active(attacker), bf.Active(defender)
	if atk == nil || def == nil {
		return ActionCheck[bool]{}, fmt.Errorf("%w: accuracy check between %s and %s", ErrInvalidAction, attacker, defender)
	}
	atkData, defData := bf.Data(attacker), bf.Data(defender)

	if bf.sureHit(attacker, defender, move) {
		return Proceed(true), nil
	}

	switch move.Accuracy.Kind {
	case data.AccuracyAlways:
		return Proceed(true), nil

	case data.AccuracyPercentage:
		base := move.Accuracy.Value
		if v, ok := move.WeatherAccuracy[string(bf.field.Weather)]; ok && bf.field.Weather != WeatherNone {
			base = v
		}
		stage := atkData.Stage(StatAccuracy) - defData.Stage(StatEvasion)
		p := Fraction{base, 100}.Mul(AccuracyMultiplier(stage))
		if p.AtLeastOne() {
			return Proceed(true), nil
		}
		return Proceed(chance(bf.rng, p.Float())), nil

	case data.AccuracyVariable:
		if atk.Level < def.Level {
			return Terminate[bool](&Failed{Actor: attacker, Cause: FailNatural}), nil
		}
		base := move.Accuracy.Value
		if base <= 0 {
			base = ohkoBase
		}
		p := Fraction{atk.Level - def.Level + base, 100}
		if p.AtLeastOne() {
			return Proceed(true), nil
		}
		return Proceed(chance(bf.rng, p.Float())), nil
	}

	return ActionCheck[bool]{}, fmt.Errorf("%w: %s has accuracy kind %q", ErrUnsupportedMove, move.ID, move.Accuracy.Kind)
}

// sureHit checks the unconditional-hit overrides in priority order.
func (bf *Battlefield) sureHit(attacker, defender Battler, move *data.Move) bool {
	atkData := bf.Data(attacker)
	switch {
	case atkData.LockOn != nil && *atkData.LockOn == defender:
		return true
	case move.SureHitType != "" && bf.Active(attacker).HasType(move.SureHitType):
		return true
	case move.SureHitWeather != "" && bf.field.Weather != WeatherNone && string(bf.field.Weather) == move.SureHitWeather:
		return true
	case bf.Data(defender).Minimized && move.Has(data.FlagHitsMinimized):
		return true
	}
	return false
}

func supportedAccuracy(k data.AccuracyKind) bool {
	switch k {
	case data.AccuracyAlways, data.AccuracyPercentage, data.AccuracyVariable:
		return true
	}
	return false
}
