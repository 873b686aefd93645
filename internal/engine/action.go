package engine

import "fmt"

// Fixed priorities of the non-attack actions. Attacks use the move priority.
const (
	PriorityFlee    = 8
	PrioritySwap    = 7
	PriorityUseItem = 6
)

// TurnAction is what one active combatant attempts this turn.
type TurnAction interface {
	isTurnAction()
	String() string
}

// Attack uses a known move. A nil Target lets the move pick its default.
type Attack struct {
	Move   string   `json:"move"`
	Target *Battler `json:"target,omitempty"`
}

// UseItem applies an item to a member of the actor's party.
type UseItem struct {
	Item      string `json:"item"`
	PartySlot int    `json:"party_slot"`
}

// Swap replaces the actor with another party member.
type Swap struct {
	PartyIndex int `json:"party_index"`
}

// Flee tries to end the battle by escaping.
type Flee struct{}

func (Attack) isTurnAction()  {}
func (UseItem) isTurnAction() {}
func (Swap) isTurnAction()    {}
func (Flee) isTurnAction()    {}

func (a Attack) String() string {
	if a.Target != nil {
		return fmt.Sprintf("attack %s -> %s", a.Move, a.Target)
	}
	return "attack " + a.Move
}

func (u UseItem) String() string { return fmt.Sprintf("item %s on %d", u.Item, u.PartySlot) }
func (s Swap) String() string    { return fmt.Sprintf("swap to %d", s.PartyIndex) }
func (Flee) String() string      { return "flee" }
