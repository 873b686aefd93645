/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/battleround/internal/logger"
	"github.com/suderio/battleround/internal/session"
)

var replCmd = &cobra.Command{
	Use:   "repl <battle_name>",
	Short: "Start the interactive REPL shell",
	Long: `Starts the read-eval-print loop over a stored battle. Each combatant
needs one action per turn; the turn resolves once all have been entered.
Usage:
	> attack by: user.0 move: thunderbolt to: opponent.0`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// The TUI owns the terminal; logs go to a file or nowhere.
		var out io.Writer = io.Discard
		if path, _ := cmd.Flags().GetString("log_file"); path != "" {
			f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				fail("Error opening log file: %v", err)
			}
			defer f.Close()
			out = f
		}
		logger.Init(viper.GetString("log_level"), viper.GetString("log_format"), out)

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
			fail("Failed to bootstrap battle session: %v", err)
		}
		defer app.Close()

		if err := RunTUI(app, args[0]); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().String("log_file", "", "write logs to this file while the TUI runs")
}
