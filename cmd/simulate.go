/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/suderio/battleround/internal/engine"
	"github.com/suderio/battleround/internal/logger"
	"github.com/suderio/battleround/internal/session"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Play a scenario many times with random moves",
	Long: `Plays a scenario repeatedly with every combatant choosing a random
move, and reports how often each outcome happened. Battle i uses seed+i, so a
run is reproducible from its seed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sc, err := session.LoadScenario(args[0])
		if err != nil {
			fail("Error reading scenario: %v", err)
		}
		dex, err := loadDex()
		if err != nil {
			fail("Error loading data: %v", err)
		}

		battles, _ := cmd.Flags().GetInt("battles")
		maxTurns, _ := cmd.Flags().GetInt("max-turns")
		seed := battleSeed(cmd)
		if sc.Seed != nil && !cmd.Flags().Changed("seed") {
			seed = *sc.Seed
		}
		log := logger.Component("simulate")

		outcomes := make(map[engine.Outcome]int)
		totalTurns := 0
		bar := progressbar.Default(int64(battles), "Simulating")
		for i := 0; i < battles; i++ {
			header := sc.Header(0)
			header.Seed = seed + uint64(i)
			app, err := session.New(dex, header, nil)
			if err != nil {
				fail("\nError starting battle: %v", err)
			}

			policy := session.NewRandomPolicy(engine.NewRandom(^header.Seed))
			for app.Battlefield().Turn() < maxTurns && !app.Over() {
				if _, err := app.Submit(policy.Choose(app.Battlefield(), app.Waiting())); err != nil {
					fail("\nError in battle %d (seed %d): %v", i, header.Seed, err)
				}
			}

			outcome := app.Battlefield().Outcome()
			outcomes[outcome]++
			totalTurns += app.Battlefield().Turn()
			log.WithField("seed", header.Seed).WithField("outcome", outcome).Debug("battle finished")
			bar.Add(1)
		}

		fmt.Printf("\n%d battle(s) from seed %d, %.1f turns on average\n", battles, seed, float64(totalTurns)/float64(max(battles, 1)))
		for _, o := range []engine.Outcome{engine.OutcomeUserWon, engine.OutcomeOpponentWon, engine.OutcomeDraw, engine.OutcomeFled, engine.OutcomeOngoing} {
			if n := outcomes[o]; n > 0 {
				fmt.Printf("  %-13s %5d (%.1f%%)\n", o, n, 100*float64(n)/float64(battles))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntP("battles", "n", 100, "number of battles to play")
	simulateCmd.Flags().Int("max-turns", 200, "turn limit per battle; unfinished battles count as ongoing")
	simulateCmd.Flags().Uint64("seed", 0, "first seed (overrides config)")
}
