package engine

import (
	"fmt"

	"github.com/suderio/battleround/internal/data"
)

// Move effect identifiers from the move data.
const (
	effectDamage     = "damage"
	effectOHKO       = "ohko"
	effectDrain      = "drain"
	effectStage      = "stage"
	effectStatus     = "status"
	effectProtect    = "protect"
	effectEndure     = "endure"
	effectRage       = "rage"
	effectLockOn     = "lock-on"
	effectMinimize   = "minimize"
	effectBellyDrum  = "belly-drum"
	effectWeather    = "weather"
	effectThrash     = "thrash"
	effectCharge     = "charge"
	effectBind       = "bind"
	effectMirrorMove = "mirror-move"
	effectSpikes     = "spikes"
	effectSplash     = "splash"
)

// moveContext is one application of a move against one target.
type moveContext struct {
	actor  Battler
	target Battler
	move   *data.Move
	log    *ActionSideEffects
	// continuing is set on the later turns of a forced action.
	continuing bool
	// interrupted is set by a proxy move whose copied move did not go through.
	interrupted *interruption
}

type moveHandler func(bf *Battlefield, mc *moveContext) error

// handlerFor returns the resolver for a move effect.
func handlerFor(effect string) (moveHandler, bool) {
	switch effect {
	case effectDamage, effectCharge:
		return damageMove, true
	case effectOHKO:
		return ohkoMove, true
	case effectDrain:
		return drainMove, true
	case effectStage:
		return stageMove, true
	case effectStatus:
		return statusMove, true
	case effectProtect:
		return protectMove, true
	case effectEndure:
		return endureMove, true
	case effectRage:
		return rageMove, true
	case effectLockOn:
		return lockOnMove, true
	case effectMinimize:
		return minimizeMove, true
	case effectBellyDrum:
		return bellyDrumMove, true
	case effectWeather:
		return weatherMove, true
	case effectThrash:
		return thrashMove, true
	case effectBind:
		return bindMove, true
	case effectMirrorMove:
		return mirrorMove, true
	case effectSpikes:
		return spikesMove, true
	case effectSplash:
		return splashMove, true
	}
	return nil, false
}

// SupportsMove reports whether the engine can resolve a move definition.
func SupportsMove(m *data.Move) error {
	if _, ok := handlerFor(m.Effect); !ok {
		return fmt.Errorf("%w: %s has effect %q", ErrUnsupportedMove, m.ID, m.Effect)
	}
	if !supportedAccuracy(m.Accuracy.Kind) {
		return fmt.Errorf("%w: %s has accuracy kind %q", ErrUnsupportedMove, m.ID, m.Accuracy.Kind)
	}
	return nil
}

func damageMove(bf *Battlefield, mc *moveContext) error {
	if _, ok := bf.hit(mc); !ok {
		return nil
	}
	return bf.secondary(mc)
}

// secondary applies a damaging move's chance-based ailment and stage changes.
func (bf *Battlefield) secondary(mc *moveContext) error {
	if a := mc.move.Ailment; a != nil && !bf.Active(mc.target).Fainted() {
		s, err := ParseStatus(a.Status)
		if err != nil {
			return err
		}
		if a.Chance > 0 && percentChance(bf.rng, a.Chance) {
			bf.inflictStatus(mc.target, s, false, mc.log)
		}
	}
	return bf.applyStatChanges(mc, mc.move.StatChanges)
}

func ohkoMove(bf *Battlefield, mc *moveContext) error {
	target := bf.Active(mc.target)
	if data.Effectiveness(mc.move.Type, target.Types) == 0 {
		*mc.log = append(*mc.log, &NoEffect{Target: mc.target})
		return nil
	}
	bf.dealDamage(mc.target, target.HP, mc.log)
	bf.checkFaint(mc.target, mc.log)
	return nil
}

func drainMove(bf *Battlefield, mc *moveContext) error {
	dealt, ok := bf.hit(mc)
	if !ok || dealt == 0 {
		return nil
	}
	user := bf.Active(mc.actor)
	if user.Fainted() {
		return nil
	}
	if healed := user.heal(max(PercentOf(dealt, mc.move.Drain), 1)); healed > 0 {
		*mc.log = append(*mc.log, &Healed{Target: mc.actor, Amount: healed, Remaining: user.HP})
	}
	return nil
}

func stageMove(bf *Battlefield, mc *moveContext) error {
	return bf.applyStatChanges(mc, mc.move.StatChanges)
}

func statusMove(bf *Battlefield, mc *moveContext) error {
	if mc.move.Ailment == nil {
		return fmt.Errorf("%w: %s has no ailment", ErrUnsupportedMove, mc.move.ID)
	}
	s, err := ParseStatus(mc.move.Ailment.Status)
	if err != nil {
		return err
	}
	if data.Effectiveness(mc.move.Type, bf.Active(mc.target).Types) == 0 {
		*mc.log = append(*mc.log, &NoEffect{Target: mc.target})
		return nil
	}
	bf.inflictStatus(mc.target, s, true, mc.log)
	return nil
}

func protectMove(bf *Battlefield, mc *moveContext) error {
	bf.Data(mc.actor).Protected = true
	*mc.log = append(*mc.log, &StartProtection{Target: mc.actor})
	return nil
}

func endureMove(bf *Battlefield, mc *moveContext) error {
	bf.Data(mc.actor).Enduring = true
	*mc.log = append(*mc.log, &Endured{Target: mc.actor})
	return nil
}

func rageMove(bf *Battlefield, mc *moveContext) error {
	bf.hit(mc)
	d := bf.Data(mc.actor)
	if !d.Enraged && !bf.Active(mc.actor).Fainted() {
		d.Enraged = true
		*mc.log = append(*mc.log, &RageStart{Target: mc.actor})
	}
	return nil
}

func lockOnMove(bf *Battlefield, mc *moveContext) error {
	target := mc.target
	bf.Data(mc.actor).LockOn = &target
	*mc.log = append(*mc.log, &LockedOn{Actor: mc.actor, Target: mc.target})
	return nil
}

func minimizeMove(bf *Battlefield, mc *moveContext) error {
	bf.Data(mc.actor).Minimized = true
	*mc.log = append(*mc.log, &Minimized{Target: mc.actor})
	return bf.applyStatChanges(mc, mc.move.StatChanges)
}

// bellyDrumMove pays the HP cost and maximizes the boosted stats.
func bellyDrumMove(bf *Battlefield, mc *moveContext) error {
	user := bf.Active(mc.actor)
	bf.directDamage(mc.actor, CauseSelfCost, selfCost(user, mc.move), mc.log)
	for _, sc := range mc.move.StatChanges {
		stat, err := ParseStat(sc.Stat)
		if err != nil {
			return err
		}
		bf.Data(mc.actor).ApplyStage(stat, MaxStage-MinStage)
		*mc.log = append(*mc.log, &StatMaxed{Target: mc.actor, Stat: stat.String()})
	}
	return nil
}

func weatherMove(bf *Battlefield, mc *moveContext) error {
	w, err := ParseWeather(mc.move.Weather)
	if err != nil {
		return err
	}
	if bf.field.Weather == w {
		*mc.log = append(*mc.log, &Failed{Actor: mc.actor, Cause: FailNatural})
		return nil
	}
	bf.field.SetWeather(w, DefaultWeatherTurns)
	*mc.log = append(*mc.log, &WeatherStarted{Weather: w, Turns: DefaultWeatherTurns})
	return nil
}

// thrashMove commits the user to the move for a few more turns.
func thrashMove(bf *Battlefield, mc *moveContext) error {
	d := bf.Data(mc.actor)
	if !mc.continuing && d.Forced == nil {
		turns := between(bf.rng, max(mc.move.MinTurns, 1), max(mc.move.MaxTurns, 1))
		if turns > 1 {
			target := mc.target
			d.Forced = &ForcedAction{Move: mc.move.ID, Target: &target, Remaining: uint8(turns - 1)}
		}
	}
	return damageMove(bf, mc)
}

func bindMove(bf *Battlefield, mc *moveContext) error {
	if _, ok := bf.hit(mc); !ok {
		return nil
	}
	target, d := bf.Active(mc.target), bf.Data(mc.target)
	if target.Fainted() || d.Bound != nil {
		return nil
	}
	turns := between(bf.rng, max(mc.move.MinTurns, 1), max(mc.move.MaxTurns, 1))
	d.Bound = &Binding{Source: mc.actor, Move: mc.move.ID, Remaining: uint8(turns)}
	*mc.log = append(*mc.log, &Bound{Target: mc.target, Move: mc.move.ID})
	return nil
}

// mirrorMove uses the target's last move as a proxy. The copied move runs
// its own failure and accuracy checks.
func mirrorMove(bf *Battlefield, mc *moveContext) error {
	mirrored, err := bf.dex.Move(bf.Data(mc.target).LastMove)
	if err != nil {
		return err
	}
	h, ok := handlerFor(mirrored.Effect)
	if !ok {
		return fmt.Errorf("%w: %s has effect %q", ErrUnsupportedMove, mirrored.ID, mirrored.Effect)
	}
	bf.Data(mc.actor).Proxy = mirrored.ID

	target := mc.target
	switch mirrored.Target {
	case data.TargetSelf, data.TargetField, data.TargetOpposingSide:
		target = mc.actor
	}
	check, err := bf.EvaluateFailure(mc.actor, mirrored, target)
	if err != nil {
		return err
	}
	if ok, decided := check.Value(); !decided || !ok {
		if decided {
			*mc.log = append(*mc.log, &Failed{Actor: mc.actor, Cause: FailNatural})
		} else {
			*mc.log = append(*mc.log, check.Effects()...)
		}
		mc.interrupted = &interruption{move: mirrored, reason: interruptFailed}
		return nil
	}
	if target != mc.actor {
		acc, err := bf.EvaluateAccuracy(mc.actor, target, mirrored)
		if err != nil {
			return err
		}
		hit, decided := acc.Value()
		if !decided {
			*mc.log = append(*mc.log, acc.Effects()...)
			mc.interrupted = &interruption{move: mirrored, reason: interruptFailed}
			return nil
		}
		if !hit {
			*mc.log = append(*mc.log, &Missed{Actor: mc.actor, Target: target})
			mc.interrupted = &interruption{move: mirrored, reason: interruptMissed}
			return nil
		}
	}
	return h(bf, &moveContext{actor: mc.actor, target: target, move: mirrored, log: mc.log})
}

func spikesMove(bf *Battlefield, mc *moveContext) error {
	side := mc.actor.Side.Opposite()
	if !bf.field.AddSpikes(side) {
		*mc.log = append(*mc.log, &Failed{Actor: mc.actor, Cause: FailNatural})
		return nil
	}
	*mc.log = append(*mc.log, &HazardSet{Side: side, Layers: bf.field.Spikes(side)})
	return nil
}

func splashMove(*Battlefield, *moveContext) error {
	return nil
}
