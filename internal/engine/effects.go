package engine

import (
	"fmt"
	"strings"
)

// EffectKind tags an entry of the effect log.
type EffectKind string

const (
	EffectBasicDamage      EffectKind = "BasicDamage"
	EffectDirectDamage     EffectKind = "DirectDamage"
	EffectHealed           EffectKind = "Healed"
	EffectStatChanged      EffectKind = "StatChanged"
	EffectStatMaxed        EffectKind = "StatMaxed"
	EffectStatMinned       EffectKind = "StatMinned"
	EffectStatusInflicted  EffectKind = "StatusInflicted"
	EffectStatusCured      EffectKind = "StatusCured"
	EffectAlreadyHasStatus EffectKind = "AlreadyHasStatus"
	EffectFailed           EffectKind = "Failed"
	EffectMissed           EffectKind = "Missed"
	EffectNoTarget         EffectKind = "NoTarget"
	EffectStartProtection  EffectKind = "StartProtection"
	EffectIsProtected      EffectKind = "IsProtected"
	EffectEndured          EffectKind = "Endured"
	EffectRageStart        EffectKind = "RageStart"
	EffectRageBuilding     EffectKind = "RageBuilding"
	EffectRageEnd          EffectKind = "RageEnd"
	EffectLockedOn         EffectKind = "LockedOn"
	EffectMinimized        EffectKind = "Minimized"
	EffectCharging         EffectKind = "Charging"
	EffectLocked           EffectKind = "Locked"
	EffectBound            EffectKind = "Bound"
	EffectBindEnded        EffectKind = "BindEnded"
	EffectAsleep           EffectKind = "Asleep"
	EffectWokeUp           EffectKind = "WokeUp"
	EffectFrozen           EffectKind = "Frozen"
	EffectThawed           EffectKind = "Thawed"
	EffectFullyParalyzed   EffectKind = "FullyParalyzed"
	EffectWeatherStarted   EffectKind = "WeatherStarted"
	EffectWeatherContinues EffectKind = "WeatherContinues"
	EffectWeatherEnded     EffectKind = "WeatherEnded"
	EffectHazardSet        EffectKind = "HazardSet"
	EffectSentOut          EffectKind = "SentOut"
	EffectWithdrawn        EffectKind = "Withdrawn"
	EffectItemUsed         EffectKind = "ItemUsed"
	EffectFled             EffectKind = "Fled"
	EffectFleeFailed       EffectKind = "FleeFailed"
	EffectFainted          EffectKind = "Fainted"
	EffectSuperEffective   EffectKind = "SuperEffective"
	EffectNotVeryEffective EffectKind = "NotVeryEffective"
	EffectNoEffect         EffectKind = "NoEffect"
	EffectCriticalHit      EffectKind = "CriticalHit"
)

// SideEffect is one observable outcome of resolving an action.
type SideEffect interface {
	Kind() EffectKind
	Message() string
}

// ActionSideEffects is the ordered, append-only effect log of one action.
// An empty log means the action was processed with no observable effect.
type ActionSideEffects []SideEffect

// Kinds lists the kinds of the log in order.
func (l ActionSideEffects) Kinds() []EffectKind {
	out := make([]EffectKind, len(l))
	for i, e := range l {
		out[i] = e.Kind()
	}
	return out
}

func (l ActionSideEffects) String() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Message()
	}
	return strings.Join(msgs, "\n")
}

// FailCause explains why an attempted move had no effect.
type FailCause string

const (
	FailNatural FailCause = "natural"
	FailPrereq  FailCause = "prereq"
	FailNoPP    FailCause = "no-pp"
	FailTrapped FailCause = "trapped"
	FailNoItem  FailCause = "no-item"
)

// DamageCause names the source of damage that is not a direct hit.
type DamageCause string

const (
	CauseCrash    DamageCause = "crash"
	CauseSelfCost DamageCause = "self-cost"
	CauseWeather  DamageCause = "weather"
	CausePoison   DamageCause = "poison"
	CauseBurn     DamageCause = "burn"
	CauseBind     DamageCause = "bind"
	CauseSpikes   DamageCause = "spikes"
)

// BasicDamage is damage dealt by a move hit.
type BasicDamage struct {
	Target    Battler `json:"target"`
	Damage    int     `json:"damage"`
	Remaining int     `json:"remaining"`
}

func (e *BasicDamage) Kind() EffectKind { return EffectBasicDamage }
func (e *BasicDamage) Message() string {
	return fmt.Sprintf("%s took %d damage (%d HP left).", e.Target, e.Damage, e.Remaining)
}

// DirectDamage is damage not dealt by a hit: crash, costs, residuals.
type DirectDamage struct {
	Target    Battler     `json:"target"`
	Cause     DamageCause `json:"cause"`
	Damage    int         `json:"damage"`
	Remaining int         `json:"remaining"`
}

func (e *DirectDamage) Kind() EffectKind { return EffectDirectDamage }
func (e *DirectDamage) Message() string {
	return fmt.Sprintf("%s lost %d HP to %s (%d HP left).", e.Target, e.Damage, e.Cause, e.Remaining)
}

// Healed restores HP.
type Healed struct {
	Target    Battler `json:"target"`
	Amount    int     `json:"amount"`
	Remaining int     `json:"remaining"`
}

func (e *Healed) Kind() EffectKind { return EffectHealed }
func (e *Healed) Message() string {
	return fmt.Sprintf("%s restored %d HP (%d HP left).", e.Target, e.Amount, e.Remaining)
}

// StatChanged moves a stat stage by Delta.
type StatChanged struct {
	Target Battler `json:"target"`
	Stat   string  `json:"stat"`
	Delta  int     `json:"delta"`
}

func (e *StatChanged) Kind() EffectKind { return EffectStatChanged }
func (e *StatChanged) Message() string {
	verb := "rose"
	if e.Delta < 0 {
		verb = "fell"
	}
	return fmt.Sprintf("%s's %s %s by %d.", e.Target, e.Stat, verb, abs(e.Delta))
}

// StatMaxed is a stat reaching +6, or already being there.
type StatMaxed struct {
	Target Battler `json:"target"`
	Stat   string  `json:"stat"`
}

func (e *StatMaxed) Kind() EffectKind { return EffectStatMaxed }
func (e *StatMaxed) Message() string {
	return fmt.Sprintf("%s's %s is maxed out!", e.Target, e.Stat)
}

// StatMinned is a stat already sitting at -6.
type StatMinned struct {
	Target Battler `json:"target"`
	Stat   string  `json:"stat"`
}

func (e *StatMinned) Kind() EffectKind { return EffectStatMinned }
func (e *StatMinned) Message() string {
	return fmt.Sprintf("%s's %s won't go any lower!", e.Target, e.Stat)
}

// StatusInflicted gives a major status.
type StatusInflicted struct {
	Target Battler `json:"target"`
	Status Status  `json:"status"`
}

func (e *StatusInflicted) Kind() EffectKind { return EffectStatusInflicted }
func (e *StatusInflicted) Message() string {
	return fmt.Sprintf("%s is afflicted with %s.", e.Target, e.Status)
}

// StatusCured removes a major status.
type StatusCured struct {
	Target Battler `json:"target"`
	Status Status  `json:"status"`
}

func (e *StatusCured) Kind() EffectKind { return EffectStatusCured }
func (e *StatusCured) Message() string {
	return fmt.Sprintf("%s was cured of %s.", e.Target, e.Status)
}

// AlreadyHasStatus is a status move hitting a creature that cannot take it.
type AlreadyHasStatus struct {
	Target Battler `json:"target"`
	Status Status  `json:"status"`
}

func (e *AlreadyHasStatus) Kind() EffectKind { return EffectAlreadyHasStatus }
func (e *AlreadyHasStatus) Message() string {
	return fmt.Sprintf("%s is already affected by %s.", e.Target, e.Status)
}

// Failed is an attempted action that had no effect.
type Failed struct {
	Actor Battler   `json:"actor"`
	Cause FailCause `json:"cause"`
}

func (e *Failed) Kind() EffectKind { return EffectFailed }
func (e *Failed) Message() string {
	return fmt.Sprintf("%s's action failed (%s).", e.Actor, e.Cause)
}

// Missed is a move that did not connect.
type Missed struct {
	Actor  Battler `json:"actor"`
	Target Battler `json:"target"`
}

func (e *Missed) Kind() EffectKind { return EffectMissed }
func (e *Missed) Message() string {
	return fmt.Sprintf("%s's attack missed %s.", e.Actor, e.Target)
}

// NoTarget is a move with nobody left to hit.
type NoTarget struct {
	Actor Battler `json:"actor"`
}

func (e *NoTarget) Kind() EffectKind { return EffectNoTarget }
func (e *NoTarget) Message() string  { return fmt.Sprintf("%s has no target.", e.Actor) }

// StartProtection shields a combatant for the rest of the turn.
type StartProtection struct {
	Target Battler `json:"target"`
}

func (e *StartProtection) Kind() EffectKind { return EffectStartProtection }
func (e *StartProtection) Message() string {
	return fmt.Sprintf("%s protected itself.", e.Target)
}

// IsProtected is a move blocked by protection.
type IsProtected struct {
	Target Battler `json:"target"`
}

func (e *IsProtected) Kind() EffectKind { return EffectIsProtected }
func (e *IsProtected) Message() string {
	return fmt.Sprintf("%s protected itself from the attack.", e.Target)
}

// Endured marks a combatant that will survive hits with 1 HP.
type Endured struct {
	Target Battler `json:"target"`
	// Hit is set when the endurance actually saved the combatant.
	Hit bool `json:"hit"`
}

func (e *Endured) Kind() EffectKind { return EffectEndured }
func (e *Endured) Message() string {
	if e.Hit {
		return fmt.Sprintf("%s endured the hit!", e.Target)
	}
	return fmt.Sprintf("%s braced itself.", e.Target)
}

// RageStart puts the user into a rage.
type RageStart struct {
	Target Battler `json:"target"`
}

func (e *RageStart) Kind() EffectKind { return EffectRageStart }
func (e *RageStart) Message() string  { return fmt.Sprintf("%s flew into a rage.", e.Target) }

// RageBuilding is an enraged combatant's attack rising after being hit.
type RageBuilding struct {
	Target Battler `json:"target"`
}

func (e *RageBuilding) Kind() EffectKind { return EffectRageBuilding }
func (e *RageBuilding) Message() string {
	return fmt.Sprintf("%s's rage is building.", e.Target)
}

// RageEnd ends a rage.
type RageEnd struct {
	Target Battler `json:"target"`
}

func (e *RageEnd) Kind() EffectKind { return EffectRageEnd }
func (e *RageEnd) Message() string  { return fmt.Sprintf("%s calmed down.", e.Target) }

// LockedOn makes the next move against Target always hit.
type LockedOn struct {
	Actor  Battler `json:"actor"`
	Target Battler `json:"target"`
}

func (e *LockedOn) Kind() EffectKind { return EffectLockedOn }
func (e *LockedOn) Message() string {
	return fmt.Sprintf("%s took aim at %s.", e.Actor, e.Target)
}

// Minimized shrinks a combatant.
type Minimized struct {
	Target Battler `json:"target"`
}

func (e *Minimized) Kind() EffectKind { return EffectMinimized }
func (e *Minimized) Message() string  { return fmt.Sprintf("%s shrank.", e.Target) }

// Charging is the first turn of a two-turn move.
type Charging struct {
	Actor Battler `json:"actor"`
	Move  string  `json:"move"`
}

func (e *Charging) Kind() EffectKind { return EffectCharging }
func (e *Charging) Message() string {
	return fmt.Sprintf("%s is charging %s.", e.Actor, e.Move)
}

// Locked is a combatant committed to repeating a move.
type Locked struct {
	Actor Battler `json:"actor"`
	Move  string  `json:"move"`
}

func (e *Locked) Kind() EffectKind { return EffectLocked }
func (e *Locked) Message() string {
	return fmt.Sprintf("%s is locked into %s.", e.Actor, e.Move)
}

// Bound traps a combatant.
type Bound struct {
	Target Battler `json:"target"`
	Move   string  `json:"move"`
}

func (e *Bound) Kind() EffectKind { return EffectBound }
func (e *Bound) Message() string {
	return fmt.Sprintf("%s was trapped by %s.", e.Target, e.Move)
}

// BindEnded frees a trapped combatant.
type BindEnded struct {
	Target Battler `json:"target"`
	Move   string  `json:"move"`
}

func (e *BindEnded) Kind() EffectKind { return EffectBindEnded }
func (e *BindEnded) Message() string {
	return fmt.Sprintf("%s was freed from %s.", e.Target, e.Move)
}

// Asleep is a sleeping combatant unable to act.
type Asleep struct {
	Target Battler `json:"target"`
}

func (e *Asleep) Kind() EffectKind { return EffectAsleep }
func (e *Asleep) Message() string  { return fmt.Sprintf("%s is fast asleep.", e.Target) }

// WokeUp ends sleep.
type WokeUp struct {
	Target Battler `json:"target"`
}

func (e *WokeUp) Kind() EffectKind { return EffectWokeUp }
func (e *WokeUp) Message() string  { return fmt.Sprintf("%s woke up.", e.Target) }

// Frozen is a frozen combatant unable to act.
type Frozen struct {
	Target Battler `json:"target"`
}

func (e *Frozen) Kind() EffectKind { return EffectFrozen }
func (e *Frozen) Message() string  { return fmt.Sprintf("%s is frozen solid.", e.Target) }

// Thawed ends freeze.
type Thawed struct {
	Target Battler `json:"target"`
}

func (e *Thawed) Kind() EffectKind { return EffectThawed }
func (e *Thawed) Message() string  { return fmt.Sprintf("%s thawed out.", e.Target) }

// FullyParalyzed is a paralyzed combatant losing its turn.
type FullyParalyzed struct {
	Target Battler `json:"target"`
}

func (e *FullyParalyzed) Kind() EffectKind { return EffectFullyParalyzed }
func (e *FullyParalyzed) Message() string {
	return fmt.Sprintf("%s is fully paralyzed.", e.Target)
}

// WeatherStarted begins a weather condition.
type WeatherStarted struct {
	Weather Weather `json:"weather"`
	Turns   int     `json:"turns"`
}

func (e *WeatherStarted) Kind() EffectKind { return EffectWeatherStarted }
func (e *WeatherStarted) Message() string  { return fmt.Sprintf("The weather became %s.", e.Weather) }

// WeatherContinues is the end-of-turn weather reminder.
type WeatherContinues struct {
	Weather Weather `json:"weather"`
}

func (e *WeatherContinues) Kind() EffectKind { return EffectWeatherContinues }
func (e *WeatherContinues) Message() string {
	return fmt.Sprintf("The %s continues.", e.Weather)
}

// WeatherEnded clears the weather.
type WeatherEnded struct {
	Weather Weather `json:"weather"`
}

func (e *WeatherEnded) Kind() EffectKind { return EffectWeatherEnded }
func (e *WeatherEnded) Message() string  { return fmt.Sprintf("The %s stopped.", e.Weather) }

// HazardSet lays entry hazards on a side.
type HazardSet struct {
	Side   SideID `json:"side"`
	Layers int    `json:"layers"`
}

func (e *HazardSet) Kind() EffectKind { return EffectHazardSet }
func (e *HazardSet) Message() string {
	return fmt.Sprintf("Spikes were scattered around the %s side (%d layers).", e.Side, e.Layers)
}

// SentOut puts a party member into a slot.
type SentOut struct {
	Target  Battler `json:"target"`
	Index   int     `json:"index"`
	Species string  `json:"species"`
}

func (e *SentOut) Kind() EffectKind { return EffectSentOut }
func (e *SentOut) Message() string {
	return fmt.Sprintf("%s sent out %s.", e.Target, e.Species)
}

// Withdrawn takes a party member out of a slot.
type Withdrawn struct {
	Target Battler `json:"target"`
	Index  int     `json:"index"`
}

func (e *Withdrawn) Kind() EffectKind { return EffectWithdrawn }
func (e *Withdrawn) Message() string {
	return fmt.Sprintf("%s withdrew party member %d.", e.Target, e.Index)
}

// ItemUsed applies an item from the bag. Amount and Cured describe what a
// healing or curing item did to the party member.
type ItemUsed struct {
	Actor     Battler `json:"actor"`
	Item      string  `json:"item"`
	PartySlot int     `json:"party_slot"`
	Amount    int     `json:"amount,omitempty"`
	Cured     Status  `json:"cured,omitempty"`
}

func (e *ItemUsed) Kind() EffectKind { return EffectItemUsed }
func (e *ItemUsed) Message() string {
	switch {
	case e.Amount > 0:
		return fmt.Sprintf("%s used %s: party member %d restored %d HP.", e.Actor, e.Item, e.PartySlot, e.Amount)
	case e.Cured != StatusNone:
		return fmt.Sprintf("%s used %s: party member %d was cured of %s.", e.Actor, e.Item, e.PartySlot, e.Cured)
	}
	return fmt.Sprintf("%s used %s.", e.Actor, e.Item)
}

// Fled ends the battle by escape.
type Fled struct {
	Side SideID `json:"side"`
}

func (e *Fled) Kind() EffectKind { return EffectFled }
func (e *Fled) Message() string  { return fmt.Sprintf("The %s side got away safely.", e.Side) }

// FleeFailed is an escape attempt that did not work.
type FleeFailed struct {
	Side SideID `json:"side"`
}

func (e *FleeFailed) Kind() EffectKind { return EffectFleeFailed }
func (e *FleeFailed) Message() string  { return fmt.Sprintf("The %s side couldn't escape.", e.Side) }

// Fainted is a combatant reaching 0 HP.
type Fainted struct {
	Target Battler `json:"target"`
}

func (e *Fainted) Kind() EffectKind { return EffectFainted }
func (e *Fainted) Message() string  { return fmt.Sprintf("%s fainted!", e.Target) }

// SuperEffective is a hit with a favourable type matchup.
type SuperEffective struct {
	Target Battler `json:"target"`
}

func (e *SuperEffective) Kind() EffectKind { return EffectSuperEffective }
func (e *SuperEffective) Message() string  { return "It's super effective!" }

// NotVeryEffective is a hit with an unfavourable type matchup.
type NotVeryEffective struct {
	Target Battler `json:"target"`
}

func (e *NotVeryEffective) Kind() EffectKind { return EffectNotVeryEffective }
func (e *NotVeryEffective) Message() string  { return "It's not very effective..." }

// NoEffect is a hit against an immune type.
type NoEffect struct {
	Target Battler `json:"target"`
}

func (e *NoEffect) Kind() EffectKind { return EffectNoEffect }
func (e *NoEffect) Message() string  { return fmt.Sprintf("It doesn't affect %s.", e.Target) }

// CriticalHit is a hit that landed critically.
type CriticalHit struct {
	Target Battler `json:"target"`
}

func (e *CriticalHit) Kind() EffectKind { return EffectCriticalHit }
func (e *CriticalHit) Message() string  { return "A critical hit!" }

// NewEffect returns an empty effect of the given kind, for decoding logs.
func NewEffect(kind EffectKind) (SideEffect, error) {
	switch kind {
	case EffectBasicDamage:
		return &BasicDamage{}, nil
	case EffectDirectDamage:
		return &DirectDamage{}, nil
	case EffectHealed:
		return &Healed{}, nil
	case EffectStatChanged:
		return &StatChanged{}, nil
	case EffectStatMaxed:
		return &StatMaxed{}, nil
	case EffectStatMinned:
		return &StatMinned{}, nil
	case EffectStatusInflicted:
		return &StatusInflicted{}, nil
	case EffectStatusCured:
		return &StatusCured{}, nil
	case EffectAlreadyHasStatus:
		return &AlreadyHasStatus{}, nil
	case EffectFailed:
		return &Failed{}, nil
	case EffectMissed:
		return &Missed{}, nil
	case EffectNoTarget:
		return &NoTarget{}, nil
	case EffectStartProtection:
		return &StartProtection{}, nil
	case EffectIsProtected:
		return &IsProtected{}, nil
	case EffectEndured:
		return &Endured{}, nil
	case EffectRageStart:
		return &RageStart{}, nil
	case EffectRageBuilding:
		return &RageBuilding{}, nil
	case EffectRageEnd:
		return &RageEnd{}, nil
	case EffectLockedOn:
		return &LockedOn{}, nil
	case EffectMinimized:
		return &Minimized{}, nil
	case EffectCharging:
		return &Charging{}, nil
	case EffectLocked:
		return &Locked{}, nil
	case EffectBound:
		return &Bound{}, nil
	case EffectBindEnded:
		return &BindEnded{}, nil
	case EffectAsleep:
		return &Asleep{}, nil
	case EffectWokeUp:
		return &WokeUp{}, nil
	case EffectFrozen:
		return &Frozen{}, nil
	case EffectThawed:
		return &Thawed{}, nil
	case EffectFullyParalyzed:
		return &FullyParalyzed{}, nil
	case EffectWeatherStarted:
		return &WeatherStarted{}, nil
	case EffectWeatherContinues:
		return &WeatherContinues{}, nil
	case EffectWeatherEnded:
		return &WeatherEnded{}, nil
	case EffectHazardSet:
		return &HazardSet{}, nil
	case EffectSentOut:
		return &SentOut{}, nil
	case EffectWithdrawn:
		return &Withdrawn{}, nil
	case EffectItemUsed:
		return &ItemUsed{}, nil
	case EffectFled:
		return &Fled{}, nil
	case EffectFleeFailed:
		return &FleeFailed{}, nil
	case EffectFainted:
		return &Fainted{}, nil
	case EffectSuperEffective:
		return &SuperEffective{}, nil
	case EffectNotVeryEffective:
		return &NotVeryEffective{}, nil
	case EffectNoEffect:
		return &NoEffect{}, nil
	case EffectCriticalHit:
		return &CriticalHit{}, nil
	}
	return nil, fmt.Errorf("unknown effect kind %q", kind)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
