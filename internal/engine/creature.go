package engine

import (
	"fmt"
	"strings"

	"github.com/suderio/battleround/internal/data"
)

// Status is a major, persistent status condition.
type Status string

const (
	StatusNone      Status = ""
	StatusSleep     Status = "sleep"
	StatusPoison    Status = "poison"
	StatusToxic     Status = "toxic"
	StatusBurn      Status = "burn"
	StatusParalysis Status = "paralysis"
	StatusFreeze    Status = "freeze"
)

// ParseStatus converts a status name from the data tables.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(s)); st {
	case StatusSleep, StatusPoison, StatusToxic, StatusBurn, StatusParalysis, StatusFreeze:
		return st, nil
	}
	return StatusNone, fmt.Errorf("unknown status %q", s)
}

// Stats holds computed permanent stats.
type Stats struct {
	HP        int `json:"hp" yaml:"hp"`
	Attack    int `json:"attack" yaml:"attack"`
	Defense   int `json:"defense" yaml:"defense"`
	SpAttack  int `json:"special_attack" yaml:"special_attack"`
	SpDefense int `json:"special_defense" yaml:"special_defense"`
	Speed     int `json:"speed" yaml:"speed"`
}

// MoveSlot is one known move with its remaining PP.
type MoveSlot struct {
	ID    string `json:"id"`
	PP    int    `json:"pp"`
	MaxPP int    `json:"max_pp"`
}

// Creature is a combatant that persists across switches.
type Creature struct {
	Species  string     `json:"species"`
	Nickname string     `json:"nickname"`
	Level    int        `json:"level"`
	Types    []string   `json:"types"`
	Stats    Stats      `json:"stats"`
	HP       int        `json:"hp"`
	Status   Status     `json:"status"`
	Moves    []MoveSlot `json:"moves"`
	HeldItem string     `json:"held_item"`

	// SleepTurns counts the move attempts left before waking up.
	SleepTurns int `json:"sleep_turns"`
	// ToxicCount is the current badly-poisoned multiplier.
	ToxicCount int `json:"toxic_count"`
}

// CreatureSpec describes a creature to build from the static data.
type CreatureSpec struct {
	Species  string   `yaml:"species" json:"species"`
	Nickname string   `yaml:"nickname" json:"nickname,omitempty"`
	Level    int      `yaml:"level" json:"level"`
	Moves    []string `yaml:"moves" json:"moves"`
	Item     string   `yaml:"item" json:"item,omitempty"`
	HP       int      `yaml:"hp" json:"hp,omitempty"` // 0 means full
	Status   string   `yaml:"status" json:"status,omitempty"`
}

// NewCreature builds a creature with stats computed from species and level.
func NewCreature(dex Dex, spec CreatureSpec) (*Creature, error) {
	sp, err := dex.Species(spec.Species)
	if err != nil {
		return nil, err
	}
	if spec.Level < 1 || spec.Level > 100 {
		return nil, fmt.Errorf("creature %s: level %d out of range", spec.Species, spec.Level)
	}
	if len(spec.Moves) == 0 || len(spec.Moves) > 4 {
		return nil, fmt.Errorf("creature %s: must know 1 to 4 moves, got %d", spec.Species, len(spec.Moves))
	}

	c := &Creature{
		Species:  sp.ID,
		Nickname: spec.Nickname,
		Level:    spec.Level,
		Types:    append([]string(nil), sp.Types...),
		Stats:    computeStats(sp.Base, spec.Level),
		HeldItem: spec.Item,
	}
	if c.Nickname == "" {
		c.Nickname = sp.Name
	}
	for _, id := range spec.Moves {
		m, err := dex.Move(id)
		if err != nil {
			return nil, err
		}
		c.Moves = append(c.Moves, MoveSlot{ID: m.ID, PP: m.PP, MaxPP: m.PP})
	}
	if spec.Item != "" {
		if _, err := dex.Item(spec.Item); err != nil {
			return nil, err
		}
	}

	c.HP = c.Stats.HP
	if spec.HP > 0 {
		c.HP = Clamp(spec.HP, 1, c.Stats.HP)
	}
	if spec.Status != "" {
		st, err := ParseStatus(spec.Status)
		if err != nil {
			return nil, err
		}
		c.Status = st
		switch st {
		case StatusSleep:
			c.SleepTurns = 3
		case StatusToxic:
			c.ToxicCount = 1
		}
	}
	return c, nil
}

func computeStats(b data.BaseStats, level int) Stats {
	other := func(base int) int { return 2*base*level/100 + 5 }
	return Stats{
		HP:        2*b.HP*level/100 + level + 10,
		Attack:    other(b.Attack),
		Defense:   other(b.Defense),
		SpAttack:  other(b.SpAttack),
		SpDefense: other(b.SpDefense),
		Speed:     other(b.Speed),
	}
}

// Fainted reports whether the creature has no HP left.
func (c *Creature) Fainted() bool {
	return c.HP <= 0
}

// HasType reports whether the creature has the given elemental type.
func (c *Creature) HasType(t string) bool {
	for _, own := range c.Types {
		if strings.EqualFold(own, t) {
			return true
		}
	}
	return false
}

// MoveSlot returns the slot for a known move, or nil.
func (c *Creature) MoveSlot(id string) *MoveSlot {
	for i := range c.Moves {
		if c.Moves[i].ID == id {
			return &c.Moves[i]
		}
	}
	return nil
}

// damage lowers HP by n and returns the HP actually lost.
func (c *Creature) damage(n int) int {
	if n > c.HP {
		n = c.HP
	}
	if n < 0 {
		n = 0
	}
	c.HP -= n
	return n
}

// heal raises HP by n up to the maximum and returns the HP actually restored.
func (c *Creature) heal(n int) int {
	if c.HP+n > c.Stats.HP {
		n = c.Stats.HP - c.HP
	}
	if n < 0 {
		n = 0
	}
	c.HP += n
	return n
}

// PartySize is the fixed capacity of a party.
const PartySize = 6

// Party is an ordered, fixed-capacity team. Empty slots are nil and only
// trail the occupied ones.
type Party struct {
	members [PartySize]*Creature
	size    int
}

// NewParty builds a party from 1 to 6 creatures.
func NewParty(members ...*Creature) (*Party, error) {
	if len(members) == 0 || len(members) > PartySize {
		return nil, fmt.Errorf("party must hold 1 to %d creatures, got %d", PartySize, len(members))
	}
	p := &Party{size: len(members)}
	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("party slot %d is empty", i)
		}
		p.members[i] = m
	}
	return p, nil
}

// Len returns the number of occupied slots.
func (p *Party) Len() int {
	return p.size
}

// Get returns the creature at index i, or nil for an empty or invalid slot.
func (p *Party) Get(i int) *Creature {
	if i < 0 || i >= PartySize {
		return nil
	}
	return p.members[i]
}

// Members returns the occupied slots in order.
func (p *Party) Members() []*Creature {
	return append([]*Creature(nil), p.members[:p.size]...)
}

// AllFainted reports whether every member has fainted.
func (p *Party) AllFainted() bool {
	for _, m := range p.members[:p.size] {
		if !m.Fainted() {
			return false
		}
	}
	return true
}
