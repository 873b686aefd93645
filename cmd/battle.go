/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suderio/battleround/internal/engine"
)

// battleCmd represents the battle command
var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Manage stored battles",
	Long: `The battle command manages the append-only JSONL logs kept in the
battles directory.

Use subcommands 'create', 'load' and 'list' to start, inspect and find
stored battles.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored battles",
	Run: func(cmd *cobra.Command, args []string) {
		names, err := battleManager().List()
		if err != nil {
			fail("Error listing battles: %v", err)
		}
		if len(names) == 0 {
			fmt.Println("No battles stored.")
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(battleCmd)
	battleCmd.AddCommand(listCmd)
}

// writeTurn prints the messages of every effect of a turn.
func writeTurn(w io.Writer, res *engine.TurnResult) {
	fmt.Fprintf(w, "--- Turn %d ---\n", res.Turn)
	for _, e := range res.Effects() {
		if msg := e.Message(); msg != "" {
			fmt.Fprintln(w, msg)
		}
	}
	if res.Outcome != engine.OutcomeOngoing {
		fmt.Fprintf(w, "Battle over: %s\n", res.Outcome)
	}
}

// renderField describes the active combatants and field of a battle.
func renderField(bf *engine.Battlefield) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn %d | %s", bf.Turn(), bf.Outcome())
	if f := bf.Field(); f.Weather != engine.WeatherNone {
		fmt.Fprintf(&b, " | %s (%d)", f.Weather, f.WeatherTurns)
	}
	b.WriteString("\n")

	for _, id := range []engine.SideID{engine.User, engine.Opponent} {
		side := bf.Side(id)
		fmt.Fprintf(&b, "\n[%s]", id)
		if n := bf.Field().Spikes(id); n > 0 {
			fmt.Fprintf(&b, " spikes x%d", n)
		}
		b.WriteString("\n")
		for slot := 0; slot < side.Slots(); slot++ {
			pos := engine.Battler{Side: id, Slot: slot}
			c := bf.Active(pos)
			if c == nil {
				fmt.Fprintf(&b, " %s: (empty)\n", pos)
				continue
			}
			status := ""
			if c.Status != engine.StatusNone {
				status = fmt.Sprintf(" [%s]", c.Status)
			}
			fmt.Fprintf(&b, " %s: %s Lv%d %d/%d HP%s\n", pos, c.Nickname, c.Level, c.HP, c.Stats.HP, status)
			var moves []string
			for _, m := range c.Moves {
				moves = append(moves, fmt.Sprintf("%s %d/%d", m.ID, m.PP, m.MaxPP))
			}
			fmt.Fprintf(&b, "    %s\n", strings.Join(moves, ", "))
		}
	}
	return b.String()
}
