/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suderio/battleround/internal/session"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create <scenario.yaml> [battle_name]",
	Short: "Start a new stored battle from a scenario",
	Long: `Reads a scenario file describing the format and both sides' teams,
then bootstraps a fresh append-only log <battles_dir>/<battle_name>.jsonl.
The battle name defaults to the scenario name.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		sc, err := session.LoadScenario(args[0])
		if err != nil {
			fail("Error reading scenario: %v", err)
		}

		name := sc.Name
		if len(args) == 2 {
			name = args[1]
		}
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		header := sc.Header(battleSeed(cmd))
		header.Name = name

		dex, err := loadDex()
		if err != nil {
			fail("Error loading data: %v", err)
		}

		manager := battleManager()
		store, err := manager.Create(name)
		if err != nil {
			fail("Error creating battle: %v", err)
		}

		app, err := session.New(dex, header, store)
		if err != nil {
			store.Close()
			fail("Error starting battle: %v", err)
		}
		defer app.Close()

		fmt.Printf("Successfully created %s battle %q (seed %d)!\n", header.Format, name, header.Seed)
		fmt.Printf("Log file stored at: %s\n", manager.GetBattlePath(name))
		fmt.Println(renderField(app.Battlefield()))
	},
}

func init() {
	battleCmd.AddCommand(createCmd)
	createCmd.Flags().Uint64("seed", 0, "seed for the battle's random source (overrides config and scenario)")
}
