package engine

import "fmt"

// Stat is a stat that carries a battle stage.
type Stat int

const (
	StatAttack Stat = iota
	StatDefense
	StatSpAttack
	StatSpDefense
	StatSpeed
	StatAccuracy
	StatEvasion
	statCount
)

const (
	MinStage = -6
	MaxStage = 6
)

var statNames = [statCount]string{
	"attack", "defense", "special-attack", "special-defense", "speed", "accuracy", "evasion",
}

func (s Stat) String() string {
	if s < 0 || s >= statCount {
		return fmt.Sprintf("stat(%d)", int(s))
	}
	return statNames[s]
}

// ParseStat converts a stat name into a Stat.
func ParseStat(name string) (Stat, error) {
	for i, n := range statNames {
		if n == name {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stat %q", name)
}

// accuracyStages maps a net accuracy/evasion stage (index 0 is -6) to its
// exact multiplier.
var accuracyStages = [13]Fraction{
	{3, 9}, {3, 8}, {3, 7}, {3, 6}, {3, 5}, {3, 4},
	{3, 3},
	{4, 3}, {5, 3}, {6, 3}, {7, 3}, {8, 3}, {9, 3},
}

// AccuracyMultiplier returns the multiplier for a net accuracy stage.
// Stages beyond [-6, +6] behave as the nearest bound.
func AccuracyMultiplier(stage int) Fraction {
	return accuracyStages[Clamp(stage, MinStage, MaxStage)-MinStage]
}

// StatMultiplier returns the multiplier for attack, defense, special and
// speed stages: (2+s)/2 when raised, 2/(2-s) when lowered.
func StatMultiplier(stage int) Fraction {
	stage = Clamp(stage, MinStage, MaxStage)
	if stage >= 0 {
		return Fraction{2 + stage, 2}
	}
	return Fraction{2, 2 - stage}
}
