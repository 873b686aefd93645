package data

// AccuracyKind selects the rule used to decide whether a move connects.
type AccuracyKind string

const (
	AccuracyAlways     AccuracyKind = "always"
	AccuracyPercentage AccuracyKind = "percentage"
	// AccuracyVariable is the one-hit-knockout rule: level difference instead of stages.
	AccuracyVariable AccuracyKind = "variable"
)

// Accuracy is the base accuracy of a move.
type Accuracy struct {
	Kind  AccuracyKind `yaml:"kind"`
	Value int          `yaml:"value,omitempty"`
}

// Category is the damage class of a move.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// TargetKind describes who a move may affect.
type TargetKind string

const (
	TargetOpponent     TargetKind = "opponent"
	TargetSelf         TargetKind = "self"
	TargetAllOpponents TargetKind = "all-opponents"
	TargetField        TargetKind = "field"
	TargetOpposingSide TargetKind = "opposing-side"
)

// Move flags. A move may carry any number of them.
const (
	FlagProtection      = "protection"
	FlagRage            = "rage"
	FlagRecoilOnMiss    = "recoil-on-miss"
	FlagMultiTurn       = "multi-turn"
	FlagSleepingTarget  = "requires-sleeping-target"
	FlagHitsMinimized   = "hits-minimized"
	FlagBypassProtect   = "bypass-protect"
	FlagNoMirror        = "no-mirror"
	FlagChargeSkipInSun = "charge-skip-in-sun"
)

// StatChange is a stage modification applied by a move.
type StatChange struct {
	Stat   string `yaml:"stat"`
	Stages int    `yaml:"stages"`
	Self   bool   `yaml:"self,omitempty"`
	Chance int    `yaml:"chance,omitempty"` // 0 means always
}

// Ailment is a major status a move may inflict.
type Ailment struct {
	Status string `yaml:"status"`
	Chance int    `yaml:"chance,omitempty"` // 0 means always
}

// Prereq is a data-driven precondition expressed as a CEL formula.
// A false result makes the move fail without effect.
type Prereq struct {
	Name    string `yaml:"name"`
	Formula string `yaml:"formula"`
}

// Move is the immutable definition of a move.
type Move struct {
	ID              string         `yaml:"-"`
	Name            string         `yaml:"name"`
	Type            string         `yaml:"type"`
	Category        Category       `yaml:"category"`
	Power           int            `yaml:"power,omitempty"`
	Accuracy        Accuracy       `yaml:"accuracy"`
	PP              int            `yaml:"pp"`
	Priority        int            `yaml:"priority,omitempty"`
	Target          TargetKind     `yaml:"target"`
	Effect          string         `yaml:"effect"`
	Flags           []string       `yaml:"flags,omitempty"`
	StatChanges     []StatChange   `yaml:"stat_changes,omitempty"`
	Ailment         *Ailment       `yaml:"ailment,omitempty"`
	SureHitType     string         `yaml:"sure_hit_type,omitempty"`
	SureHitWeather  string         `yaml:"sure_hit_weather,omitempty"`
	WeatherAccuracy map[string]int `yaml:"weather_accuracy,omitempty"`
	Weather         string         `yaml:"weather,omitempty"`
	Drain           int            `yaml:"drain,omitempty"`     // percent of damage dealt restored to the user
	SelfCost        int            `yaml:"self_cost,omitempty"` // percent of max HP paid by the user
	MinTurns        int            `yaml:"min_turns,omitempty"`
	MaxTurns        int            `yaml:"max_turns,omitempty"`
	Prereq          []Prereq       `yaml:"prereq,omitempty"`
}

// Has reports whether the move carries the given flag.
func (m *Move) Has(flag string) bool {
	for _, f := range m.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// BaseStats holds the six permanent stats of a species.
type BaseStats struct {
	HP        int `yaml:"hp"`
	Attack    int `yaml:"attack"`
	Defense   int `yaml:"defense"`
	SpAttack  int `yaml:"special_attack"`
	SpDefense int `yaml:"special_defense"`
	Speed     int `yaml:"speed"`
}

// Species is the immutable definition of a creature species.
type Species struct {
	ID    string    `yaml:"-"`
	Name  string    `yaml:"name"`
	Types []string  `yaml:"types"`
	Base  BaseStats `yaml:"base_stats"`
}

// ItemKind selects how an item is applied when used in battle.
type ItemKind string

const (
	ItemHeal  ItemKind = "heal"
	ItemCure  ItemKind = "cure"
	ItemStage ItemKind = "stage"
	ItemHeld  ItemKind = "held"
)

// Item is the immutable definition of an item.
type Item struct {
	ID     string   `yaml:"-"`
	Name   string   `yaml:"name"`
	Kind   ItemKind `yaml:"kind"`
	Amount int      `yaml:"amount"`
	Stat   string   `yaml:"stat"`
	Stages int      `yaml:"stages"`
	// SpeedPercent scales the holder's effective speed; 0 means unchanged.
	SpeedPercent int `yaml:"speed_percent"`
}
