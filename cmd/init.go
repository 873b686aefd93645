package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/battleround/internal/logger"
	"github.com/suderio/battleround/internal/pokeapi"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize data by downloading species and moves from PokeAPI",
	Long: `Bootstraps a local data directory by fetching species and moves from
PokeAPI, converting the ones the engine can resolve, and writing species.yaml
and moves.yaml. Items keep coming from the embedded defaults.`,
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data_dir_local")
		if dataDir == "" {
			dataDir = viper.GetString("data_dir")
		}
		if dataDir == "" {
			rootDir, _ := os.Getwd()
			dataDir = filepath.Join(rootDir, "data")
		}

		force, _ := cmd.Flags().GetBool("force")
		speciesLimit, _ := cmd.Flags().GetInt("species")
		movesLimit, _ := cmd.Flags().GetInt("moves")
		baseURL, _ := cmd.Flags().GetString("api")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		log := logger.Component("init")
		client := pokeapi.NewClient(baseURL)
		tables := pokeapi.NewTables()

		fmt.Printf("Initializing data to: %s\n", dataDir)

		list, err := client.FetchList(ctx, "pokemon", speciesLimit)
		if err != nil {
			fail("Error fetching species list: %v", err)
		}
		bar := progressbar.Default(int64(len(list.Results)), "Downloading species")
		for _, ref := range list.Results {
			sp, err := client.FetchSpecies(ctx, ref.Name)
			if err != nil {
				log.WithError(err).WithField("species", ref.Name).Warn("skipping species")
			} else {
				tables.Species[ref.Name] = sp
			}
			bar.Add(1)
		}

		list, err = client.FetchList(ctx, "move", movesLimit)
		if err != nil {
			fail("\nError fetching move list: %v", err)
		}
		bar = progressbar.Default(int64(len(list.Results)), "Downloading moves")
		skipped := 0
		for _, ref := range list.Results {
			m, ok, err := client.FetchMove(ctx, ref.Name)
			switch {
			case err != nil:
				log.WithError(err).WithField("move", ref.Name).Warn("skipping move")
				skipped++
			case !ok:
				log.WithField("move", ref.Name).Debug("move mechanics not modelled")
				skipped++
			default:
				tables.Moves[ref.Name] = m
			}
			bar.Add(1)
		}

		if err := tables.Save(dataDir, force); err != nil {
			fail("\nFailed to save data: %v", err)
		}
		fmt.Printf("\nData bootstrap complete! %d species, %d moves (%d skipped)\n", len(tables.Species), len(tables.Moves), skipped)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite existing data files")
	initCmd.Flags().String("data_dir_local", "", "Local data directory to save files to (defaults to data_dir, then ./data)")
	initCmd.Flags().Int("species", 151, "Number of species to download")
	initCmd.Flags().Int("moves", 165, "Number of moves to download")
	initCmd.Flags().String("api", pokeapi.BaseURL, "PokeAPI base URL")
}
