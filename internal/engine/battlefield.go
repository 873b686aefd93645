package engine

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/suderio/battleround/internal/data"
	"github.com/suderio/battleround/internal/logger"
)

var (
	// ErrUnsupportedMove signals a move whose rules the engine does not model.
	ErrUnsupportedMove = errors.New("unsupported move")
	// ErrInvalidAction rejects an action that cannot be submitted this turn.
	ErrInvalidAction = errors.New("invalid action")
	// ErrMissingAction is returned when an active combatant has no action.
	ErrMissingAction = errors.New("missing action")
	// ErrBattleOver rejects turns submitted after the battle ended.
	ErrBattleOver = errors.New("battle is over")
)

const (
	thawChance          = 20
	fullParalysisChance = 25
)

// Dex is the read-only static data lookup.
type Dex interface {
	Move(id string) (*data.Move, error)
	Species(id string) (*data.Species, error)
	Item(id string) (*data.Item, error)
}

// Outcome is the state of the battle after a turn.
type Outcome string

const (
	OutcomeOngoing     Outcome = "ongoing"
	OutcomeUserWon     Outcome = "user-won"
	OutcomeOpponentWon Outcome = "opponent-won"
	OutcomeDraw        Outcome = "draw"
	OutcomeFled        Outcome = "fled"
)

// ActionOutcome is the effect log of one resolved action.
type ActionOutcome struct {
	Actor   Battler
	Action  TurnAction
	Effects ActionSideEffects
}

// TurnResult is everything that happened in one turn, in order.
type TurnResult struct {
	Turn         int
	Actions      []ActionOutcome
	Residual     ActionSideEffects
	Replacements ActionSideEffects
	Outcome      Outcome
}

// Effects flattens the turn into a single log.
func (r *TurnResult) Effects() ActionSideEffects {
	var all ActionSideEffects
	for _, a := range r.Actions {
		all = append(all, a.Effects...)
	}
	all = append(all, r.Residual...)
	return append(all, r.Replacements...)
}

// Battlefield owns the whole state of one battle and resolves it one turn
// at a time.
type Battlefield struct {
	dex   Dex
	rules PrereqChecker
	rng   Random
	field *Field
	sides [2]Side

	turn    int
	outcome Outcome
	// fainted records faints already logged, so each is logged once.
	fainted map[Battler]bool
	log     *logrus.Entry
}

// NewBattlefield sets up a battle between two sides. rules may be nil when
// no move carries data-driven preconditions.
func NewBattlefield(dex Dex, rules PrereqChecker, rng Random, user, opponent Side) (*Battlefield, error) {
	if user == nil || opponent == nil {
		return nil, fmt.Errorf("battlefield needs two sides")
	}
	if user.ID() != User || opponent.ID() != Opponent {
		return nil, fmt.Errorf("sides must be %s and %s", User, Opponent)
	}
	if dex == nil || rng == nil {
		return nil, fmt.Errorf("battlefield needs a dex and a random source")
	}
	bf := &Battlefield{
		dex:     dex,
		rules:   rules,
		rng:     rng,
		field:   NewField(),
		sides:   [2]Side{user, opponent},
		outcome: OutcomeOngoing,
		fainted: make(map[Battler]bool),
		log:     logger.Component("battlefield"),
	}
	if user.Defeated() || opponent.Defeated() {
		return nil, fmt.Errorf("both sides need a creature able to battle")
	}
	return bf, nil
}

// Field returns the shared field state.
func (bf *Battlefield) Field() *Field { return bf.field }

// Side returns one side of the battle.
func (bf *Battlefield) Side(id SideID) Side { return bf.sides[id] }

// Turn returns the number of turns resolved so far.
func (bf *Battlefield) Turn() int { return bf.turn }

// Outcome returns the current battle outcome.
func (bf *Battlefield) Outcome() Outcome { return bf.outcome }

func (bf *Battlefield) side(id SideID) Side {
	if id != User && id != Opponent {
		return nil
	}
	return bf.sides[id]
}

// Active returns the creature at a battler position, or nil.
func (bf *Battlefield) Active(b Battler) *Creature {
	if s := bf.side(b.Side); s != nil {
		return s.Active(b.Slot)
	}
	return nil
}

// Data returns the battle data at a battler position, or nil.
func (bf *Battlefield) Data(b Battler) *BattleData {
	if s := bf.side(b.Side); s != nil {
		return s.Data(b.Slot)
	}
	return nil
}

func (bf *Battlefield) alive(b Battler) bool {
	c := bf.Active(b)
	return c != nil && !c.Fainted()
}

// ActiveBattlers lists the living active combatants, user side first.
func (bf *Battlefield) ActiveBattlers() []Battler {
	var out []Battler
	for _, s := range bf.sides {
		for slot := 0; slot < s.Slots(); slot++ {
			if b := (Battler{Side: s.ID(), Slot: slot}); bf.alive(b) {
				out = append(out, b)
			}
		}
	}
	return out
}

func (bf *Battlefield) livingOn(side SideID) []Battler {
	var out []Battler
	for _, b := range bf.ActiveBattlers() {
		if b.Side == side {
			out = append(out, b)
		}
	}
	return out
}

// PendingAction returns the action a combatant is forced to take this turn,
// if any.
func (bf *Battlefield) PendingAction(b Battler) (TurnAction, bool) {
	d := bf.Data(b)
	if d == nil || d.Forced == nil {
		return nil, false
	}
	return Attack{Move: d.Forced.Move, Target: d.Forced.Target}, true
}

// ResolveTurn resolves one turn. Every living active combatant needs an
// action unless it is committed to a forced one. Invalid input and
// unsupported moves are rejected before any state changes.
func (bf *Battlefield) ResolveTurn(actions map[Battler]TurnAction) (*TurnResult, error) {
	if bf.outcome != OutcomeOngoing {
		return nil, ErrBattleOver
	}
	queue, err := bf.plan(actions)
	if err != nil {
		return nil, err
	}

	bf.turn++
	clear(bf.fainted)
	res := &TurnResult{Turn: bf.turn}

	for _, entry := range Order(bf.rng, queue) {
		if !bf.alive(entry.Actor) {
			continue
		}
		effects, err := bf.execute(entry.Actor, entry.Action)
		if err != nil {
			return nil, fmt.Errorf("turn %d, %s: %w", bf.turn, entry.Actor, err)
		}
		res.Actions = append(res.Actions, ActionOutcome{Actor: entry.Actor, Action: entry.Action, Effects: effects})
		bf.log.WithFields(logrus.Fields{
			"turn":    bf.turn,
			"actor":   entry.Actor.String(),
			"action":  entry.Action.String(),
			"effects": len(effects),
		}).Debug("action resolved")
		if bf.outcome == OutcomeFled {
			break
		}
	}

	if bf.outcome != OutcomeFled {
		res.Residual = bf.residual()
		res.Replacements = bf.replaceFainted()
		bf.endTurn()
		bf.outcome = bf.decideOutcome()
	}
	res.Outcome = bf.outcome
	bf.log.WithFields(logrus.Fields{"turn": bf.turn, "outcome": bf.outcome}).Debug("turn resolved")
	return res, nil
}

// plan validates the submitted actions and builds the ordering queue.
func (bf *Battlefield) plan(actions map[Battler]TurnAction) ([]Ordered, error) {
	for b := range actions {
		if !bf.alive(b) {
			return nil, fmt.Errorf("%w: %s is not an active combatant", ErrInvalidAction, b)
		}
	}
	var queue []Ordered
	for _, b := range bf.ActiveBattlers() {
		a, ok := bf.PendingAction(b)
		if !ok {
			a, ok = actions[b]
		}
		if !ok || a == nil {
			return nil, fmt.Errorf("%w for %s", ErrMissingAction, b)
		}
		if err := bf.validate(b, a); err != nil {
			return nil, err
		}
		prio, err := bf.priority(a)
		if err != nil {
			return nil, err
		}
		queue = append(queue, Ordered{Actor: b, Action: a, Priority: prio, Speed: bf.Speed(b)})
	}
	return queue, nil
}

func (bf *Battlefield) validate(b Battler, a TurnAction) error {
	side := bf.side(b.Side)
	party := side.Party(b.Slot)
	switch act := a.(type) {
	case Attack:
		m, err := bf.dex.Move(act.Move)
		if err != nil {
			return err
		}
		if _, forced := bf.PendingAction(b); !forced && bf.Active(b).MoveSlot(m.ID) == nil {
			return fmt.Errorf("%w: %s does not know %s", ErrInvalidAction, b, m.ID)
		}
		if err := SupportsMove(m); err != nil {
			return err
		}
		if t := act.Target; t != nil {
			if ts := bf.side(t.Side); ts == nil || t.Slot < 0 || t.Slot >= ts.Slots() {
				return fmt.Errorf("%w: %s targets unknown position %s", ErrInvalidAction, b, t)
			}
		}
	case UseItem:
		it, err := bf.dex.Item(act.Item)
		if err != nil {
			return err
		}
		if it.Kind == data.ItemHeld {
			return fmt.Errorf("%w: %s is a held item", ErrInvalidAction, it.ID)
		}
		if party.Get(act.PartySlot) == nil {
			return fmt.Errorf("%w: %s has no party member %d", ErrInvalidAction, b, act.PartySlot)
		}
	case Swap:
		c := party.Get(act.PartyIndex)
		if c == nil || c.Fainted() || act.PartyIndex == side.ActiveIndex(b.Slot) {
			return fmt.Errorf("%w: %s cannot swap to party member %d", ErrInvalidAction, b, act.PartyIndex)
		}
	case Flee:
	default:
		return fmt.Errorf("%w: %T", ErrInvalidAction, a)
	}
	return nil
}

func (bf *Battlefield) execute(actor Battler, a TurnAction) (ActionSideEffects, error) {
	log := ActionSideEffects{}
	var err error
	switch act := a.(type) {
	case Attack:
		err = bf.executeAttack(actor, act, &log)
	case Swap:
		bf.executeSwap(actor, act, &log)
	case UseItem:
		err = bf.executeItem(actor, act, &log)
	case Flee:
		bf.executeFlee(actor, &log)
	}
	return log, err
}

// executeAttack runs the attack pipeline: ability to act, PP and charge,
// targeting, failure, accuracy, protection, the move itself and the hooks.
func (bf *Battlefield) executeAttack(actor Battler, a Attack, log *ActionSideEffects) error {
	move, err := bf.dex.Move(a.Move)
	if err != nil {
		return err
	}
	c, d := bf.Active(actor), bf.Data(actor)
	continuing := d.Forced != nil && d.Forced.Move == move.ID

	if !bf.canAct(actor, log) {
		bf.onInterrupt(actor, move, interruptCannotAct, log)
		return nil
	}

	switch {
	case continuing && d.Forced.Charging:
		d.Forced = nil
	case continuing:
		*log = append(*log, &Locked{Actor: actor, Move: move.ID})
		d.Forced.Remaining--
		if d.Forced.Remaining == 0 {
			d.Forced = nil
		}
	default:
		slot := c.MoveSlot(move.ID)
		if slot == nil || slot.PP <= 0 {
			*log = append(*log, &Failed{Actor: actor, Cause: FailNoPP})
			bf.onInterrupt(actor, move, interruptFailed, log)
			return nil
		}
		slot.PP--
		if move.Effect == effectCharge && !(move.Has(data.FlagChargeSkipInSun) && bf.field.Weather == WeatherSun) {
			d.Forced = &ForcedAction{Move: move.ID, Target: a.Target, Remaining: 1, Charging: true}
			*log = append(*log, &Charging{Actor: actor, Move: move.ID})
			return nil
		}
	}
	defer func() {
		if move.Effect != effectLockOn {
			d.LockOn = nil
		}
	}()

	targets := bf.targets(actor, move, a.Target)
	if len(targets) == 0 {
		*log = append(*log, &NoTarget{Actor: actor})
		bf.onInterrupt(actor, move, interruptNoTarget, log)
		return nil
	}

	check, err := bf.EvaluateFailure(actor, move, targets[0])
	if err != nil {
		return err
	}
	ok, decided := check.Value()
	if !decided || !ok {
		if decided {
			*log = append(*log, &Failed{Actor: actor, Cause: FailNatural})
		} else {
			*log = append(*log, check.Effects()...)
		}
		bf.onInterrupt(actor, move, interruptFailed, log)
		return nil
	}

	h, _ := handlerFor(move.Effect)
	affected := false
	reason, interrupted := interruptMissed, move
	for _, t := range targets {
		if t != actor {
			if !bf.alive(t) {
				continue
			}
			acc, err := bf.EvaluateAccuracy(actor, t, move)
			if err != nil {
				return err
			}
			hit, decided := acc.Value()
			if !decided {
				*log = append(*log, acc.Effects()...)
				reason = interruptFailed
				continue
			}
			if !hit {
				*log = append(*log, &Missed{Actor: actor, Target: t})
				continue
			}
			if bf.Data(t).Protected && !move.Has(data.FlagBypassProtect) {
				*log = append(*log, &IsProtected{Target: t})
				reason = interruptBlocked
				continue
			}
		}
		mc := &moveContext{actor: actor, target: t, move: move, log: log, continuing: continuing}
		if err := h(bf, mc); err != nil {
			return err
		}
		if mc.interrupted != nil {
			reason, interrupted = mc.interrupted.reason, mc.interrupted.move
			continue
		}
		affected = true
	}

	if affected {
		bf.onSuccess(actor, move, log)
	} else {
		bf.onInterrupt(actor, interrupted, reason, log)
	}
	return nil
}

// targets resolves who a move affects. Self, field and side moves resolve
// to the user. A fainted or missing chosen target falls back to the first
// living opponent.
func (bf *Battlefield) targets(actor Battler, move *data.Move, chosen *Battler) []Battler {
	switch move.Target {
	case data.TargetSelf, data.TargetField, data.TargetOpposingSide:
		return []Battler{actor}
	case data.TargetAllOpponents:
		return bf.livingOn(actor.Side.Opposite())
	}
	if chosen != nil && *chosen != actor && bf.alive(*chosen) {
		return []Battler{*chosen}
	}
	foes := bf.livingOn(actor.Side.Opposite())
	if len(foes) == 0 {
		return nil
	}
	return foes[:1]
}

// canAct applies sleep, freeze and paralysis before a move is used.
func (bf *Battlefield) canAct(actor Battler, log *ActionSideEffects) bool {
	c := bf.Active(actor)
	switch c.Status {
	case StatusSleep:
		c.SleepTurns--
		if c.SleepTurns <= 0 {
			c.Status, c.SleepTurns = StatusNone, 0
			*log = append(*log, &WokeUp{Target: actor})
			return true
		}
		*log = append(*log, &Asleep{Target: actor})
		return false
	case StatusFreeze:
		if percentChance(bf.rng, thawChance) {
			c.Status = StatusNone
			*log = append(*log, &Thawed{Target: actor})
			return true
		}
		*log = append(*log, &Frozen{Target: actor})
		return false
	case StatusParalysis:
		if percentChance(bf.rng, fullParalysisChance) {
			*log = append(*log, &FullyParalyzed{Target: actor})
			return false
		}
	}
	return true
}

func (bf *Battlefield) executeSwap(actor Battler, s Swap, log *ActionSideEffects) {
	if bf.Data(actor).Bound != nil {
		*log = append(*log, &Failed{Actor: actor, Cause: FailTrapped})
		return
	}
	if err := bf.switchIn(actor, s.PartyIndex, true, log); err != nil {
		*log = append(*log, &Failed{Actor: actor, Cause: FailNatural})
	}
}

// switchIn puts a party member into a slot and applies entry hazards.
func (bf *Battlefield) switchIn(b Battler, index int, withdraw bool, log *ActionSideEffects) error {
	side := bf.side(b.Side)
	old := side.ActiveIndex(b.Slot)
	if err := side.SwapIn(b.Slot, index); err != nil {
		return err
	}
	if withdraw {
		*log = append(*log, &Withdrawn{Target: b, Index: old})
	}
	bf.releaseBinds(b, log)
	bf.releaseLockOns(b)
	delete(bf.fainted, b)

	c := side.Active(b.Slot)
	*log = append(*log, &SentOut{Target: b, Index: index, Species: c.Nickname})
	if dmg := bf.field.spikesDamage(b.Side, c); dmg > 0 {
		bf.directDamage(b, CauseSpikes, dmg, log)
	}
	return nil
}

func (bf *Battlefield) executeItem(actor Battler, u UseItem, log *ActionSideEffects) error {
	it, err := bf.dex.Item(u.Item)
	if err != nil {
		return err
	}
	member := bf.side(actor.Side).Party(actor.Slot).Get(u.PartySlot)
	used := &ItemUsed{Actor: actor, Item: it.ID, PartySlot: u.PartySlot}

	switch it.Kind {
	case data.ItemHeal:
		if member.Fainted() || member.HP == member.Stats.HP {
			*log = append(*log, &Failed{Actor: actor, Cause: FailNatural})
			return nil
		}
		used.Amount = member.heal(it.Amount)
		*log = append(*log, used)
	case data.ItemCure:
		if member.Fainted() || member.Status == StatusNone {
			*log = append(*log, &Failed{Actor: actor, Cause: FailNatural})
			return nil
		}
		used.Cured = member.Status
		member.Status, member.SleepTurns, member.ToxicCount = StatusNone, 0, 0
		*log = append(*log, used)
	case data.ItemStage:
		stat, err := ParseStat(it.Stat)
		if err != nil {
			return err
		}
		*log = append(*log, used)
		bf.changeStage(actor, stat, it.Stages, log)
	default:
		return fmt.Errorf("%w: item %s of kind %q", ErrInvalidAction, it.ID, it.Kind)
	}
	return nil
}

// executeFlee rolls an escape: a faster user always escapes, otherwise the
// odds grow with the speed ratio and with every failed attempt.
func (bf *Battlefield) executeFlee(actor Battler, log *ActionSideEffects) {
	if bf.Data(actor).Bound != nil {
		*log = append(*log, &Failed{Actor: actor, Cause: FailTrapped})
		return
	}
	side := bf.side(actor.Side)
	speed, fastest := bf.Speed(actor), 0
	for _, foe := range bf.livingOn(actor.Side.Opposite()) {
		fastest = max(fastest, bf.Speed(foe))
	}
	escaped := speed >= fastest
	if !escaped {
		odds := speed*128/max(fastest, 1) + 30*side.FleeAttempts()
		escaped = odds > 255 || bf.rng.Intn(256) < odds
	}
	side.recordFleeAttempt()
	if escaped {
		bf.outcome = OutcomeFled
		*log = append(*log, &Fled{Side: actor.Side})
		return
	}
	*log = append(*log, &FleeFailed{Side: actor.Side})
}

func (bf *Battlefield) decideOutcome() Outcome {
	user, opp := bf.sides[User].Defeated(), bf.sides[Opponent].Defeated()
	switch {
	case user && opp:
		return OutcomeDraw
	case user:
		return OutcomeOpponentWon
	case opp:
		return OutcomeUserWon
	}
	return OutcomeOngoing
}
