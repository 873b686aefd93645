package engine

import (
	"github.com/suderio/battleround/internal/data"
)

const (
	critOdds      = 24
	minDamageRoll = 85
	maxDamageRoll = 100
)

// hit deals a move's damage to the target and reports the damage dealt and
// whether the move could affect the target at all.
func (bf *Battlefield) hit(mc *moveContext) (int, bool) {
	target := bf.Active(mc.target)
	eff := data.Effectiveness(mc.move.Type, target.Types)
	if eff == 0 {
		*mc.log = append(*mc.log, &NoEffect{Target: mc.target})
		return 0, false
	}

	dmg, crit := bf.calcDamage(mc, eff)
	if crit {
		*mc.log = append(*mc.log, &CriticalHit{Target: mc.target})
	}
	dealt := bf.dealDamage(mc.target, dmg, mc.log)
	switch {
	case eff > 4:
		*mc.log = append(*mc.log, &SuperEffective{Target: mc.target})
	case eff < 4:
		*mc.log = append(*mc.log, &NotVeryEffective{Target: mc.target})
	}
	bf.checkFaint(mc.target, mc.log)
	return dealt, true
}

// calcDamage applies the standard formula. eff is the type multiplier
// numerator over 4.
func (bf *Battlefield) calcDamage(mc *moveContext, eff int) (int, bool) {
	atk, def := bf.Active(mc.actor), bf.Active(mc.target)
	atkData, defData := bf.Data(mc.actor), bf.Data(mc.target)

	atkStat, defStat := StatAttack, StatDefense
	a, d := atk.Stats.Attack, def.Stats.Defense
	if mc.move.Category == data.CategorySpecial {
		atkStat, defStat = StatSpAttack, StatSpDefense
		a, d = atk.Stats.SpAttack, def.Stats.SpDefense
	}

	crit := bf.rng.Intn(critOdds) == 0
	atkStage, defStage := atkData.Stage(atkStat), defData.Stage(defStat)
	if crit {
		atkStage, defStage = max(atkStage, 0), min(defStage, 0)
	}
	a = max(StatMultiplier(atkStage).Scale(a), 1)
	d = max(StatMultiplier(defStage).Scale(d), 1)

	power := mc.move.Power
	if defData.Minimized && mc.move.Has(data.FlagHitsMinimized) {
		power *= 2
	}

	dmg := ((2*atk.Level/5+2)*power*a/d)/50 + 2
	if crit {
		dmg = dmg * 3 / 2
	}
	dmg = PercentOf(dmg, between(bf.rng, minDamageRoll, maxDamageRoll))
	if atk.HasType(mc.move.Type) {
		dmg = dmg * 3 / 2
	}
	dmg = dmg * eff / 4
	if atk.Status == StatusBurn && mc.move.Category == data.CategoryPhysical {
		dmg /= 2
	}
	return max(dmg, 1), crit
}

// dealDamage lowers the target's HP from a hit, honouring Endure and
// building rage. It returns the HP actually lost.
func (bf *Battlefield) dealDamage(target Battler, dmg int, log *ActionSideEffects) int {
	c, d := bf.Active(target), bf.Data(target)
	endured := false
	if d.Enduring && dmg >= c.HP {
		dmg = c.HP - 1
		endured = true
	}
	lost := c.damage(dmg)
	*log = append(*log, &BasicDamage{Target: target, Damage: lost, Remaining: c.HP})
	if endured {
		*log = append(*log, &Endured{Target: target, Hit: true})
	}
	if d.Enraged && !c.Fainted() && lost > 0 {
		if d.ApplyStage(StatAttack, 1) != 0 {
			*log = append(*log, &RageBuilding{Target: target})
		}
	}
	return lost
}

// directDamage applies non-hit damage such as crash or residual damage.
func (bf *Battlefield) directDamage(target Battler, cause DamageCause, dmg int, log *ActionSideEffects) {
	c := bf.Active(target)
	lost := c.damage(dmg)
	*log = append(*log, &DirectDamage{Target: target, Cause: cause, Damage: lost, Remaining: c.HP})
	bf.checkFaint(target, log)
}

// checkFaint logs a faint once, releasing anything the combatant held.
func (bf *Battlefield) checkFaint(b Battler, log *ActionSideEffects) {
	c := bf.Active(b)
	if c == nil || !c.Fainted() || bf.fainted[b] {
		return
	}
	bf.fainted[b] = true
	*log = append(*log, &Fainted{Target: b})
	bf.releaseBinds(b, log)
}

// releaseBinds frees every combatant bound by source.
func (bf *Battlefield) releaseBinds(source Battler, log *ActionSideEffects) {
	for _, b := range bf.ActiveBattlers() {
		d := bf.Data(b)
		if d.Bound != nil && d.Bound.Source == source {
			*log = append(*log, &BindEnded{Target: b, Move: d.Bound.Move})
			d.Bound = nil
		}
	}
}

// releaseLockOns drops every lock-on aimed at a position whose occupant left.
func (bf *Battlefield) releaseLockOns(target Battler) {
	for _, b := range bf.ActiveBattlers() {
		if d := bf.Data(b); d.LockOn != nil && *d.LockOn == target {
			d.LockOn = nil
		}
	}
}

// statusImmune reports whether a creature's types prevent a status.
func statusImmune(c *Creature, s Status) bool {
	switch s {
	case StatusPoison, StatusToxic:
		return c.HasType(data.TypePoison) || c.HasType(data.TypeSteel)
	case StatusBurn:
		return c.HasType(data.TypeFire)
	case StatusParalysis:
		return c.HasType(data.TypeElectric)
	case StatusFreeze:
		return c.HasType(data.TypeIce)
	}
	return false
}

// inflictStatus gives a major status. Primary status moves log why they
// failed; secondary effects fail silently.
func (bf *Battlefield) inflictStatus(target Battler, s Status, primary bool, log *ActionSideEffects) {
	c := bf.Active(target)
	if c == nil || c.Fainted() {
		return
	}
	if c.Status != StatusNone {
		if primary {
			*log = append(*log, &AlreadyHasStatus{Target: target, Status: c.Status})
		}
		return
	}
	if statusImmune(c, s) || (s == StatusFreeze && bf.field.Weather == WeatherSun) {
		if primary {
			*log = append(*log, &NoEffect{Target: target})
		}
		return
	}
	c.Status = s
	switch s {
	case StatusSleep:
		c.SleepTurns = between(bf.rng, 1, 3)
	case StatusToxic:
		c.ToxicCount = 1
	}
	*log = append(*log, &StatusInflicted{Target: target, Status: s})
}

// applyStatChanges applies a move's stage changes. Chance-gated changes
// only roll for secondary effects.
func (bf *Battlefield) applyStatChanges(mc *moveContext, changes []data.StatChange) error {
	for _, sc := range changes {
		stat, err := ParseStat(sc.Stat)
		if err != nil {
			return err
		}
		who := mc.target
		if sc.Self {
			who = mc.actor
		}
		if bf.Active(who) == nil || bf.Active(who).Fainted() {
			continue
		}
		if sc.Chance > 0 && !percentChance(bf.rng, sc.Chance) {
			continue
		}
		bf.changeStage(who, stat, sc.Stages, mc.log)
	}
	return nil
}

// changeStage moves a stage and logs the result.
func (bf *Battlefield) changeStage(who Battler, stat Stat, stages int, log *ActionSideEffects) {
	applied := bf.Data(who).ApplyStage(stat, stages)
	switch {
	case applied != 0:
		*log = append(*log, &StatChanged{Target: who, Stat: stat.String(), Delta: applied})
	case stages > 0:
		*log = append(*log, &StatMaxed{Target: who, Stat: stat.String()})
	default:
		*log = append(*log, &StatMinned{Target: who, Stat: stat.String()})
	}
}
