package data

import "strings"

// Elemental types known to the type chart.
const (
	TypeNormal   = "normal"
	TypeFire     = "fire"
	TypeWater    = "water"
	TypeElectric = "electric"
	TypeGrass    = "grass"
	TypeIce      = "ice"
	TypeFighting = "fighting"
	TypePoison   = "poison"
	TypeGround   = "ground"
	TypeFlying   = "flying"
	TypePsychic  = "psychic"
	TypeBug      = "bug"
	TypeRock     = "rock"
	TypeGhost    = "ghost"
	TypeDragon   = "dragon"
	TypeDark     = "dark"
	TypeSteel    = "steel"
	TypeFairy    = "fairy"
)

// matchup lists, for one attacking type, the defending types it is strong,
// weak or useless against.
type matchup struct {
	strong []string
	weak   []string
	immune []string
}

var typeChart = map[string]matchup{
	TypeNormal:   {weak: []string{TypeRock, TypeSteel}, immune: []string{TypeGhost}},
	TypeFire:     {strong: []string{TypeGrass, TypeIce, TypeBug, TypeSteel}, weak: []string{TypeFire, TypeWater, TypeRock, TypeDragon}},
	TypeWater:    {strong: []string{TypeFire, TypeGround, TypeRock}, weak: []string{TypeWater, TypeGrass, TypeDragon}},
	TypeElectric: {strong: []string{TypeWater, TypeFlying}, weak: []string{TypeElectric, TypeGrass, TypeDragon}, immune: []string{TypeGround}},
	TypeGrass:    {strong: []string{TypeWater, TypeGround, TypeRock}, weak: []string{TypeFire, TypeGrass, TypePoison, TypeFlying, TypeBug, TypeDragon, TypeSteel}},
	TypeIce:      {strong: []string{TypeGrass, TypeGround, TypeFlying, TypeDragon}, weak: []string{TypeFire, TypeWater, TypeIce, TypeSteel}},
	TypeFighting: {strong: []string{TypeNormal, TypeIce, TypeRock, TypeDark, TypeSteel}, weak: []string{TypePoison, TypeFlying, TypePsychic, TypeBug, TypeFairy}, immune: []string{TypeGhost}},
	TypePoison:   {strong: []string{TypeGrass, TypeFairy}, weak: []string{TypePoison, TypeGround, TypeRock, TypeGhost}, immune: []string{TypeSteel}},
	TypeGround:   {strong: []string{TypeFire, TypeElectric, TypePoison, TypeRock, TypeSteel}, weak: []string{TypeGrass, TypeBug}, immune: []string{TypeFlying}},
	TypeFlying:   {strong: []string{TypeGrass, TypeFighting, TypeBug}, weak: []string{TypeElectric, TypeRock, TypeSteel}},
	TypePsychic:  {strong: []string{TypeFighting, TypePoison}, weak: []string{TypePsychic, TypeSteel}, immune: []string{TypeDark}},
	TypeBug:      {strong: []string{TypeGrass, TypePsychic, TypeDark}, weak: []string{TypeFire, TypeFighting, TypePoison, TypeFlying, TypeGhost, TypeSteel, TypeFairy}},
	TypeRock:     {strong: []string{TypeFire, TypeIce, TypeFlying, TypeBug}, weak: []string{TypeFighting, TypeGround, TypeSteel}},
	TypeGhost:    {strong: []string{TypePsychic, TypeGhost}, weak: []string{TypeDark}, immune: []string{TypeNormal}},
	TypeDragon:   {strong: []string{TypeDragon}, weak: []string{TypeSteel}, immune: []string{TypeFairy}},
	TypeDark:     {strong: []string{TypePsychic, TypeGhost}, weak: []string{TypeFighting, TypeDark, TypeFairy}},
	TypeSteel:    {strong: []string{TypeIce, TypeRock, TypeFairy}, weak: []string{TypeFire, TypeWater, TypeElectric, TypeSteel}},
	TypeFairy:    {strong: []string{TypeFighting, TypeDragon, TypeDark}, weak: []string{TypeFire, TypePoison, TypeSteel}},
}

// IsKnownType reports whether the type chart has an entry for t.
func IsKnownType(t string) bool {
	_, ok := typeChart[strings.ToLower(t)]
	return ok
}

// Effectiveness returns the damage multiplier of an attacking type against a
// set of defending types, as a numerator over 4 (0, 1, 2, 4, 8 or 16).
// A neutral hit returns 4.
func Effectiveness(attacking string, defending []string) int {
	m, ok := typeChart[strings.ToLower(attacking)]
	if !ok {
		return 4
	}
	mult := 4
	for _, d := range defending {
		d = strings.ToLower(d)
		switch {
		case contains(m.immune, d):
			return 0
		case contains(m.strong, d):
			mult *= 2
		case contains(m.weak, d):
			mult /= 2
		}
	}
	return mult
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
