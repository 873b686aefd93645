package engine

// ForcedAction is a multi-turn committed move that replaces the actor's
// chosen action until it completes or is interrupted.
type ForcedAction struct {
	Move      string   `json:"move"`
	Target    *Battler `json:"target,omitempty"`
	Remaining uint8    `json:"remaining"`
	// Charging marks the first turn of a two-turn move.
	Charging bool `json:"charging"`
}

// Binding is a trapping move holding the combatant in place.
type Binding struct {
	Source    Battler `json:"source"`
	Move      string  `json:"move"`
	Remaining uint8   `json:"remaining"`
}

// BattleData is the volatile state of one active combatant. It is created
// fresh on switch-in and reset when the combatant leaves the field.
type BattleData struct {
	stages [statCount]int

	Minimized bool
	Enraged   bool
	Protected bool
	Enduring  bool
	LockOn    *Battler
	// Proxy is recorded as the last move used instead of the selected one.
	Proxy string

	ProtectCount uint8
	LastMove     string
	RepeatCount  uint8

	Forced *ForcedAction
	Bound  *Binding
}

// NewBattleData returns default battle state.
func NewBattleData() *BattleData {
	return &BattleData{}
}

// Reset restores the defaults, as on switch-out or faint.
func (d *BattleData) Reset() {
	*d = BattleData{}
}

// Stage returns the current stage of a stat.
func (d *BattleData) Stage(s Stat) int {
	return d.stages[s]
}

// ApplyStage moves a stat stage by delta within [-6, +6] and returns the
// change actually applied.
func (d *BattleData) ApplyStage(s Stat, delta int) int {
	before := d.stages[s]
	d.stages[s] = Clamp(before+delta, MinStage, MaxStage)
	return d.stages[s] - before
}

// Stages returns a copy of all stages keyed by stat name.
func (d *BattleData) Stages() map[string]int {
	out := make(map[string]int, statCount)
	for i := Stat(0); i < statCount; i++ {
		out[i.String()] = d.stages[i]
	}
	return out
}
