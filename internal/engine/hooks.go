package engine

import "github.com/suderio/battleround/internal/data"

// interruptReason says why an attack did not go through.
type interruptReason int

const (
	interruptMissed interruptReason = iota
	interruptBlocked
	interruptNoTarget
	interruptFailed
	interruptCannotAct
)

// interruption records which move was interrupted and why.
type interruption struct {
	move   *data.Move
	reason interruptReason
}

// crashes reports whether a recoil-on-miss move hurts its user.
func (r interruptReason) crashes() bool {
	return r == interruptMissed || r == interruptBlocked || r == interruptNoTarget
}

// onInterrupt runs when an attack is blocked, misses, fails or cannot be
// used. It is the only place that clears the last move and resets the
// protection counter on failure.
func (bf *Battlefield) onInterrupt(actor Battler, move *data.Move, reason interruptReason, log *ActionSideEffects) {
	c, d := bf.Active(actor), bf.Data(actor)

	if move.Has(data.FlagRecoilOnMiss) && reason.crashes() {
		lost := c.damage(FractionOf(c.Stats.HP, 2))
		*log = append(*log, &DirectDamage{Target: actor, Cause: CauseCrash, Damage: lost, Remaining: c.HP})
		bf.checkFaint(actor, log)
	}
	if d.Forced != nil && d.Forced.Move == move.ID {
		d.Forced = nil
	}
	d.LastMove = ""
	d.RepeatCount = 0
	d.Proxy = ""
	if move.Has(data.FlagProtection) {
		d.ProtectCount = 0
	}
}

// onSuccess runs once an attack affected at least one target.
func (bf *Battlefield) onSuccess(actor Battler, move *data.Move, log *ActionSideEffects) {
	d := bf.Data(actor)

	used := move.ID
	if d.Proxy != "" {
		used = d.Proxy
		d.Proxy = ""
	}
	if used == d.LastMove {
		d.RepeatCount = incSaturating(d.RepeatCount)
	} else {
		d.LastMove = used
		d.RepeatCount = 1
	}

	if d.Enraged && !move.Has(data.FlagRage) {
		d.Enraged = false
		*log = append(*log, &RageEnd{Target: actor})
	}

	if move.Has(data.FlagProtection) {
		d.ProtectCount = incSaturating(d.ProtectCount)
	} else {
		d.ProtectCount = 0
	}
}
