package engine

import "fmt"

// Side is one half of a battle. The variants differ only in how many slots
// are active and which party feeds each slot, so turn resolution never
// special-cases the format.
type Side interface {
	ID() SideID
	// Slots is the number of active positions.
	Slots() int
	// Party returns the party that supplies the given slot.
	Party(slot int) *Party
	// ActiveIndex returns the party index active in the slot, or -1.
	ActiveIndex(slot int) int
	// Active returns the creature in the slot, or nil.
	Active(slot int) *Creature
	// Data returns the battle data of the slot.
	Data(slot int) *BattleData
	// SwapIn makes the party member at index active in the slot and resets
	// the slot's battle data.
	SwapIn(slot, index int) error
	// NextReplacement returns the first living, inactive party member that
	// can fill the slot.
	NextReplacement(slot int) (int, bool)
	// Defeated reports whether every creature available to the side fainted.
	Defeated() bool
	// FleeAttempts counts failed escape attempts this battle.
	FleeAttempts() int
	recordFleeAttempt()
	vacate(slot int)
}

type slotState struct {
	party  *Party
	active int
	data   BattleData
}

// sideBase implements Side over a slice of slots.
type sideBase struct {
	id    SideID
	slots []slotState
	flees int
}

func (s *sideBase) ID() SideID { return s.id }
func (s *sideBase) Slots() int { return len(s.slots) }

func (s *sideBase) slot(i int) *slotState {
	if i < 0 || i >= len(s.slots) {
		return nil
	}
	return &s.slots[i]
}

func (s *sideBase) Party(slot int) *Party {
	if st := s.slot(slot); st != nil {
		return st.party
	}
	return nil
}

func (s *sideBase) ActiveIndex(slot int) int {
	if st := s.slot(slot); st != nil {
		return st.active
	}
	return -1
}

func (s *sideBase) Active(slot int) *Creature {
	st := s.slot(slot)
	if st == nil || st.active < 0 {
		return nil
	}
	return st.party.Get(st.active)
}

func (s *sideBase) Data(slot int) *BattleData {
	if st := s.slot(slot); st != nil {
		return &st.data
	}
	return nil
}

// inUse reports whether another slot sharing the party holds index.
func (s *sideBase) inUse(party *Party, index, except int) bool {
	for i := range s.slots {
		if i != except && s.slots[i].party == party && s.slots[i].active == index {
			return true
		}
	}
	return false
}

func (s *sideBase) SwapIn(slot, index int) error {
	st := s.slot(slot)
	if st == nil {
		return fmt.Errorf("%s has no slot %d", s.id, slot)
	}
	c := st.party.Get(index)
	switch {
	case c == nil:
		return fmt.Errorf("%s party has no member %d", s.id, index)
	case c.Fainted():
		return fmt.Errorf("%s party member %d has fainted", s.id, index)
	case index == st.active || s.inUse(st.party, index, slot):
		return fmt.Errorf("%s party member %d is already active", s.id, index)
	}
	st.active = index
	st.data.Reset()
	return nil
}

func (s *sideBase) NextReplacement(slot int) (int, bool) {
	st := s.slot(slot)
	if st == nil {
		return -1, false
	}
	for i, c := range st.party.Members() {
		if i != st.active && !c.Fainted() && !s.inUse(st.party, i, slot) {
			return i, true
		}
	}
	return -1, false
}

func (s *sideBase) Defeated() bool {
	for i := range s.slots {
		if !s.slots[i].party.AllFainted() {
			return false
		}
	}
	return true
}

func (s *sideBase) FleeAttempts() int  { return s.flees }
func (s *sideBase) recordFleeAttempt() { s.flees++ }

// vacate clears a slot whose creature fainted with no replacement left.
func (s *sideBase) vacate(slot int) {
	if st := s.slot(slot); st != nil {
		st.active = -1
		st.data.Reset()
	}
}

// fill activates the first living members of party across the given slots.
func (s *sideBase) fill(party *Party, slots ...int) {
	next := 0
	members := party.Members()
	for _, slot := range slots {
		s.slots[slot] = slotState{party: party, active: -1}
		for next < len(members) && members[next].Fainted() {
			next++
		}
		if next < len(members) {
			s.slots[slot].active = next
			next++
		}
	}
}

// SingleSide has one active slot.
type SingleSide struct{ sideBase }

// NewSingleSide builds a side for a one-on-one battle.
func NewSingleSide(id SideID, party *Party) *SingleSide {
	s := &SingleSide{sideBase{id: id, slots: make([]slotState, 1)}}
	s.fill(party, 0)
	return s
}

// DoubleSide has two active slots fed by one party.
type DoubleSide struct{ sideBase }

// NewDoubleSide builds a side for a two-on-two battle with one trainer.
func NewDoubleSide(id SideID, party *Party) *DoubleSide {
	s := &DoubleSide{sideBase{id: id, slots: make([]slotState, 2)}}
	s.fill(party, 0, 1)
	return s
}

// TagSide has two active slots, each fed by its own trainer's party.
type TagSide struct{ sideBase }

// NewTagSide builds a side for a tag battle; slot 0 draws from first and
// slot 1 from second.
func NewTagSide(id SideID, first, second *Party) *TagSide {
	s := &TagSide{sideBase{id: id, slots: make([]slotState, 2)}}
	s.fill(first, 0)
	s.fill(second, 1)
	return s
}

// Format is the battle format: how many slots each side fields and from how
// many parties.
type Format string

const (
	FormatSingle Format = "single"
	FormatDouble Format = "double"
	FormatTag    Format = "tag"
)

// ParseFormat converts a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatSingle, FormatDouble, FormatTag:
		return f, nil
	}
	return "", fmt.Errorf("unknown battle format %q", s)
}

// PartiesPerSide is how many parties a side of the format needs.
func (f Format) PartiesPerSide() int {
	if f == FormatTag {
		return 2
	}
	return 1
}

// NewSide builds the side variant for a format.
func NewSide(format Format, id SideID, parties ...*Party) (Side, error) {
	if len(parties) != format.PartiesPerSide() {
		return nil, fmt.Errorf("%s battle needs %d parties per side, got %d", format, format.PartiesPerSide(), len(parties))
	}
	switch format {
	case FormatSingle:
		return NewSingleSide(id, parties[0]), nil
	case FormatDouble:
		return NewDoubleSide(id, parties[0]), nil
	case FormatTag:
		return NewTagSide(id, parties[0], parties[1]), nil
	}
	return nil, fmt.Errorf("unknown battle format %q", format)
}
