package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// SideID identifies one of the two sides of a battle.
type SideID int

const (
	User SideID = iota
	Opponent
)

// Opposite returns the other side.
func (s SideID) Opposite() SideID {
	if s == User {
		return Opponent
	}
	return User
}

func (s SideID) String() string {
	if s == User {
		return "user"
	}
	return "opponent"
}

// MarshalText encodes the side by name.
func (s SideID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a side name.
func (s *SideID) UnmarshalText(b []byte) error {
	id, err := ParseSideID(string(b))
	if err != nil {
		return err
	}
	*s = id
	return nil
}

// ParseSideID converts "user" or "opponent" into a SideID.
func ParseSideID(s string) (SideID, error) {
	switch strings.ToLower(s) {
	case "user":
		return User, nil
	case "opponent":
		return Opponent, nil
	}
	return User, fmt.Errorf("unknown side %q", s)
}

// Battler locates one active combatant: a side and a slot within it.
// It is a plain value and is used as a map key.
type Battler struct {
	Side SideID `json:"side"`
	Slot int    `json:"slot"`
}

func (b Battler) String() string {
	return fmt.Sprintf("%s.%d", b.Side, b.Slot)
}

// ParseBattler parses the "side.slot" form produced by String.
func ParseBattler(s string) (Battler, error) {
	side, slot, ok := strings.Cut(s, ".")
	if !ok {
		return Battler{}, fmt.Errorf("invalid battler %q, expected side.slot", s)
	}
	id, err := ParseSideID(side)
	if err != nil {
		return Battler{}, err
	}
	n, err := strconv.Atoi(slot)
	if err != nil || n < 0 {
		return Battler{}, fmt.Errorf("invalid slot in battler %q", s)
	}
	return Battler{Side: id, Slot: n}, nil
}
