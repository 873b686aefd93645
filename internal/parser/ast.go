package parser

import (
	"fmt"
	"strings"

	"github.com/suderio/battleround/internal/engine"
)

// Command represents one action submitted for a battler
type Command struct {
	Attack *AttackCmd `parser:"( @@"`
	Item   *ItemCmd   `parser:"| @@"`
	Swap   *SwapCmd   `parser:"| @@"`
	Flee   *FleeCmd   `parser:"| @@ )"`
}

// ActorExpr maps parsing the mandatory "by: side.slot" block
type ActorExpr struct {
	Keyword string `parser:"\"by\" \":\""`
	Name    string `parser:"@Battler"`
}

// AttackCmd uses one of the actor's moves
type AttackCmd struct {
	Keyword string     `parser:"@(\"attack\"|\"Attack\"|\"ATTACK\")"`
	Actor   *ActorExpr `parser:"@@"`
	Move    string     `parser:"\"move\" \":\" @(Ident|Hyphenated)"`
	Target  *string    `parser:"( \"to\" \":\" @Battler )?"`
}

// ItemCmd uses a bag item on a party member
type ItemCmd struct {
	Keyword string     `parser:"@(\"item\"|\"Item\"|\"ITEM\")"`
	Actor   *ActorExpr `parser:"@@"`
	Item    string     `parser:"\"item\" \":\" @(Ident|Hyphenated)"`
	On      *int       `parser:"( \"on\" \":\" @Int )?"`
}

// SwapCmd sends in another party member
type SwapCmd struct {
	Keyword string     `parser:"@(\"swap\"|\"Swap\"|\"SWAP\")"`
	Actor   *ActorExpr `parser:"@@"`
	To      int        `parser:"\"to\" \":\" @Int"`
}

// FleeCmd tries to run from the battle
type FleeCmd struct {
	Keyword string     `parser:"@(\"flee\"|\"Flee\"|\"FLEE\")"`
	Actor   *ActorExpr `parser:"@@"`
}

var shared = Build()

// Parse reads a single command line, translating grammar errors into usage hints.
func Parse(input string) (*Command, error) {
	cmd, err := shared.ParseString("", strings.TrimSpace(input))
	if err != nil {
		return nil, MapError(input, err)
	}
	return cmd, nil
}

// Actor returns the battler issuing the command.
func (c *Command) Actor() (engine.Battler, error) {
	var a *ActorExpr
	switch {
	case c.Attack != nil:
		a = c.Attack.Actor
	case c.Item != nil:
		a = c.Item.Actor
	case c.Swap != nil:
		a = c.Swap.Actor
	case c.Flee != nil:
		a = c.Flee.Actor
	default:
		return engine.Battler{}, fmt.Errorf("empty command")
	}
	return engine.ParseBattler(a.Name)
}

// Action converts the command into an engine action. activeIndex supplies
// the party index used by an item command without an explicit "on:".
func (c *Command) Action(activeIndex func(engine.Battler) int) (engine.Battler, engine.TurnAction, error) {
	actor, err := c.Actor()
	if err != nil {
		return engine.Battler{}, nil, err
	}

	switch {
	case c.Attack != nil:
		atk := engine.Attack{Move: strings.ToLower(c.Attack.Move)}
		if c.Attack.Target != nil {
			t, err := engine.ParseBattler(*c.Attack.Target)
			if err != nil {
				return engine.Battler{}, nil, err
			}
			atk.Target = &t
		}
		return actor, atk, nil
	case c.Item != nil:
		slot := 0
		if c.Item.On != nil {
			slot = *c.Item.On
		} else if activeIndex != nil {
			slot = activeIndex(actor)
		}
		return actor, engine.UseItem{Item: strings.ToLower(c.Item.Item), PartySlot: slot}, nil
	case c.Swap != nil:
		return actor, engine.Swap{PartyIndex: c.Swap.To}, nil
	default:
		return actor, engine.Flee{}, nil
	}
}

// Format renders an action back into the command grammar.
func Format(actor engine.Battler, action engine.TurnAction) string {
	switch a := action.(type) {
	case engine.Attack:
		if a.Target != nil {
			return fmt.Sprintf("attack by: %s move: %s to: %s", actor, a.Move, a.Target)
		}
		return fmt.Sprintf("attack by: %s move: %s", actor, a.Move)
	case engine.UseItem:
		return fmt.Sprintf("item by: %s item: %s on: %d", actor, a.Item, a.PartySlot)
	case engine.Swap:
		return fmt.Sprintf("swap by: %s to: %d", actor, a.PartyIndex)
	case engine.Flee:
		return fmt.Sprintf("flee by: %s", actor)
	}
	return ""
}
