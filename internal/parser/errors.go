package parser

import (
	"fmt"
	"strings"
)

// MapError takes a raw input and a participle error, and returns a human-friendly guidance message.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("I wasn't able to understand your command")
	}

	parts := strings.Fields(strings.ToLower(input))
	cmd := parts[0]

	switch cmd {
	case "attack":
		return fmt.Errorf("The command attack must be: attack by: <side.slot> move: <move> [to: <side.slot>]")
	case "item":
		return fmt.Errorf("The command item must be: item by: <side.slot> item: <item> [on: <party index>]")
	case "swap":
		return fmt.Errorf("The command swap must be: swap by: <side.slot> to: <party index>")
	case "flee":
		return fmt.Errorf("The command flee must be: flee by: <side.slot>")
	}

	if err == nil {
		return fmt.Errorf("I wasn't able to understand your command")
	}
	return fmt.Errorf("I wasn't able to understand your command: %w", err)
}
