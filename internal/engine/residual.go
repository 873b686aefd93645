package engine

import "github.com/suderio/battleround/internal/data"

const maxToxicCount = 15

// residual applies end-of-turn effects: the weather countdown, then weather,
// status and binding damage for each combatant in speed order.
func (bf *Battlefield) residual() ActionSideEffects {
	log := ActionSideEffects{}
	if w := bf.field.Weather; w != WeatherNone {
		if bf.field.tickWeather() {
			log = append(log, &WeatherEnded{Weather: w})
		} else {
			log = append(log, &WeatherContinues{Weather: w})
		}
	}
	bf.field.tickTerrain()

	var entries []Ordered
	for _, b := range bf.ActiveBattlers() {
		entries = append(entries, Ordered{Actor: b, Speed: bf.Speed(b)})
	}
	for _, e := range Order(bf.rng, entries) {
		bf.weatherDamage(e.Actor, &log)
		bf.statusDamage(e.Actor, &log)
		bf.bindDamage(e.Actor, &log)
	}
	return log
}

func (bf *Battlefield) weatherDamage(b Battler, log *ActionSideEffects) {
	c := bf.Active(b)
	if c == nil || c.Fainted() {
		return
	}
	var immune bool
	switch bf.field.Weather {
	case WeatherSandstorm:
		immune = c.HasType(data.TypeRock) || c.HasType(data.TypeGround) || c.HasType(data.TypeSteel)
	case WeatherHail:
		immune = c.HasType(data.TypeIce)
	default:
		return
	}
	if !immune {
		bf.directDamage(b, CauseWeather, FractionOf(c.Stats.HP, 16), log)
	}
}

func (bf *Battlefield) statusDamage(b Battler, log *ActionSideEffects) {
	c := bf.Active(b)
	if c == nil || c.Fainted() {
		return
	}
	switch c.Status {
	case StatusPoison:
		bf.directDamage(b, CausePoison, FractionOf(c.Stats.HP, 8), log)
	case StatusToxic:
		bf.directDamage(b, CausePoison, FractionOf(c.Stats.HP*c.ToxicCount, 16), log)
		c.ToxicCount = min(c.ToxicCount+1, maxToxicCount)
	case StatusBurn:
		bf.directDamage(b, CauseBurn, FractionOf(c.Stats.HP, 8), log)
	}
}

// bindDamage hurts a bound combatant and counts the binding down.
func (bf *Battlefield) bindDamage(b Battler, log *ActionSideEffects) {
	c, d := bf.Active(b), bf.Data(b)
	if c == nil || c.Fainted() || d.Bound == nil {
		return
	}
	bf.directDamage(b, CauseBind, FractionOf(c.Stats.HP, 16), log)
	if d.Bound == nil {
		return
	}
	d.Bound.Remaining = decSaturating(d.Bound.Remaining)
	if d.Bound.Remaining == 0 {
		*log = append(*log, &BindEnded{Target: b, Move: d.Bound.Move})
		d.Bound = nil
	}
}

// replaceFainted sends in the next available party member for every
// fainted active creature. Slots with no replacement are vacated.
func (bf *Battlefield) replaceFainted() ActionSideEffects {
	log := ActionSideEffects{}
	for _, side := range bf.sides {
		for slot := 0; slot < side.Slots(); slot++ {
			b := Battler{Side: side.ID(), Slot: slot}
			for {
				c := side.Active(slot)
				if c == nil || !c.Fainted() {
					break
				}
				idx, ok := side.NextReplacement(slot)
				if !ok {
					side.vacate(slot)
					break
				}
				if err := bf.switchIn(b, idx, false, &log); err != nil {
					side.vacate(slot)
					break
				}
			}
		}
	}
	return log
}

// endTurn clears the flags that only last for the turn.
func (bf *Battlefield) endTurn() {
	for _, side := range bf.sides {
		for slot := 0; slot < side.Slots(); slot++ {
			d := side.Data(slot)
			d.Protected = false
			d.Enduring = false
		}
	}
}
