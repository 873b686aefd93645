package engine

import (
	"fmt"

	"github.com/suderio/battleround/internal/data"
	"github.com/suderio/battleround/internal/rules"
)

// maxProtectExponent caps the decay of consecutive protection at 1/3^6.
const maxProtectExponent = 6

// PrereqChecker evaluates data-driven move preconditions.
type PrereqChecker interface {
	Check(formula string, context map[string]any) (bool, error)
}

// failureGuard is one independent "can this be attempted" rule.
type failureGuard func(bf *Battlefield, attacker, defender Battler, move *data.Move) (ActionCheck[bool], error)

var failureGuards = []failureGuard{
	sleepingTargetGuard,
	selfCostGuard,
	protectionDecayGuard,
	mirrorSourceGuard,
	prereqGuard,
}

// EvaluateFailure runs the precondition guards before accuracy. False means
// the move is attempted but has no effect.
func (bf *Battlefield) EvaluateFailure(attacker Battler, move *data.Move, defender Battler) (ActionCheck[bool], error) {
	for _, guard := range failureGuards {
		check, err := guard(bf, attacker, defender, move)
		if err != nil {
			return ActionCheck[bool]{}, err
		}
		if ok, decided := check.Value(); !decided || !ok {
			return check, nil
		}
	}
	return Proceed(true), nil
}

func sleepingTargetGuard(bf *Battlefield, _, defender Battler, move *data.Move) (ActionCheck[bool], error) {
	if !move.Has(data.FlagSleepingTarget) {
		return Proceed(true), nil
	}
	target := bf.Active(defender)
	return Proceed(target != nil && target.Status == StatusSleep), nil
}

func selfCostGuard(bf *Battlefield, attacker, _ Battler, move *data.Move) (ActionCheck[bool], error) {
	if move.SelfCost <= 0 {
		return Proceed(true), nil
	}
	c := bf.Active(attacker)
	return Proceed(c.HP > selfCost(c, move)), nil
}

func protectionDecayGuard(bf *Battlefield, attacker, _ Battler, move *data.Move) (ActionCheck[bool], error) {
	n := int(bf.Data(attacker).ProtectCount)
	if !move.Has(data.FlagProtection) || n == 0 {
		return Proceed(true), nil
	}
	odds := 1
	for i := 0; i < min(n, maxProtectExponent); i++ {
		odds *= 3
	}
	return Proceed(bf.rng.Intn(odds) == 0), nil
}

func mirrorSourceGuard(bf *Battlefield, _, defender Battler, move *data.Move) (ActionCheck[bool], error) {
	if move.Effect != effectMirrorMove {
		return Proceed(true), nil
	}
	last := bf.Data(defender).LastMove
	if last == "" {
		return Proceed(false), nil
	}
	mirrored, err := bf.dex.Move(last)
	if err != nil {
		return ActionCheck[bool]{}, err
	}
	return Proceed(!mirrored.Has(data.FlagNoMirror)), nil
}

func prereqGuard(bf *Battlefield, attacker, defender Battler, move *data.Move) (ActionCheck[bool], error) {
	if len(move.Prereq) == 0 || bf.rules == nil {
		return Proceed(true), nil
	}
	ctx := rules.BuildEvalContext(bf.subject(attacker), bf.subject(defender), rules.FieldView{
		Weather: string(bf.field.Weather),
		Terrain: string(bf.field.Terrain),
		Turn:    bf.turn,
	})
	for _, p := range move.Prereq {
		ok, err := bf.rules.Check(p.Formula, ctx)
		if err != nil {
			return ActionCheck[bool]{}, fmt.Errorf("move %s prereq %s: %w", move.ID, p.Name, err)
		}
		if !ok {
			return Terminate[bool](&Failed{Actor: attacker, Cause: FailPrereq}), nil
		}
	}
	return Proceed(true), nil
}

// subject exposes a combatant to precondition formulas.
func (bf *Battlefield) subject(b Battler) *rules.Subject {
	c := bf.Active(b)
	if c == nil {
		return nil
	}
	d := bf.Data(b)
	return &rules.Subject{
		Name:   c.Nickname,
		Level:  c.Level,
		HP:     c.HP,
		MaxHP:  c.Stats.HP,
		Status: string(c.Status),
		Types:  c.Types,
		Stages: d.Stages(),
		Flags: map[string]bool{
			"minimized": d.Minimized,
			"enraged":   d.Enraged,
			"protected": d.Protected,
			"bound":     d.Bound != nil,
			"locked":    d.Forced != nil,
		},
	}
}

// selfCost is the HP a move charges its user.
func selfCost(c *Creature, move *data.Move) int {
	return max(PercentOf(c.Stats.HP, move.SelfCost), 1)
}
