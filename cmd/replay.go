/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/suderio/battleround/internal/engine"
	"github.com/suderio/battleround/internal/session"
)

var replayCmd = &cobra.Command{
	Use:   "replay <battle_name>",
	Short: "Re-resolve a stored battle and verify its log",
	Long: `Rebuilds a stored battle from its header and seed, resolving every
recorded turn again and failing on the first effect that differs from the log.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dex, err := loadDex()
		if err != nil {
			fail("Error loading data: %v", err)
		}
		store, err := battleManager().Load(args[0])
		if err != nil {
			fail("Error finding battle: %v", err)
		}
		defer store.Close()

		log, err := store.Load()
		if err != nil {
			fail("Error reading battle log: %v", err)
		}

		var out io.Writer = os.Stdout
		if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
			out = io.Discard
		}
		replayer := session.NewReplayer(dex)
		replayer.OnTurn = func(res *engine.TurnResult) { writeTurn(out, res) }

		app, err := replayer.Replay(log)
		if err != nil {
			fail("Replay failed: %v", err)
		}
		fmt.Printf("Verified %d turn(s) of %q: %s\n", len(log.Turns), log.Header.Name, app.Battlefield().Outcome())
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolP("quiet", "q", false, "only print the verification result")
}
