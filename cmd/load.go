/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suderio/battleround/internal/session"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <battle_name>",
	Short: "Load a battle and print its current state",
	Long: `Reads the log of a stored battle, re-resolves every recorded turn to
rebuild and verify its state, then prints the active combatants.`,
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

		app, err := session.Resume(dex, store)
		if err != nil {
			store.Close()
			fail("Error rebuilding battle: %v", err)
		}
		defer app.Close()

		h := app.Header()
		fmt.Printf("Successfully loaded %s battle %q (seed %d)!\n", h.Format, h.Name, h.Seed)
		fmt.Println(renderField(app.Battlefield()))
		if waiting := app.Waiting(); len(waiting) > 0 && !app.Over() {
			fmt.Printf("Waiting for: %v\n", waiting)
		}
	},
}

func init() {
	battleCmd.AddCommand(loadCmd)
}
