package rules

// Subject is the read-only view of one combatant exposed to formulas.
type Subject struct {
	Name   string
	Level  int
	HP     int
	MaxHP  int
	Status string
	Types  []string
	Stages map[string]int
	// Flags holds volatile state such as "minimized" or "enraged".
	Flags map[string]bool
}

// FieldView is the read-only view of the field exposed to formulas.
type FieldView struct {
	Weather string
	Terrain string
	Turn    int
}
