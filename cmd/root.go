/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/battleround/internal/data"
	"github.com/suderio/battleround/internal/logger"
	"github.com/suderio/battleround/internal/persistence"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "battleround",
	Short: "Turn-based creature battle resolver",
	Long: `battleround resolves turn-based creature battles in single, double
and tag formats. Battles are stored as append-only JSONL logs that can be
resumed and replayed deterministically.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(viper.GetString("log_level"), viper.GetString("log_format"), nil)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.battleround.yaml)")
	rootCmd.PersistentFlags().String("data_dir", "", "directory with moves.yaml, species.yaml and items.yaml overriding the embedded data")
	rootCmd.PersistentFlags().String("battles_dir", "", "directory holding battle logs (default ./battles)")
	rootCmd.PersistentFlags().String("log_level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log_format", "text", "log format (text or json)")

	for _, key := range []string{"data_dir", "battles_dir", "log_level", "log_format"} {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
	viper.SetDefault("battles_dir", "./battles")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".battleround" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".battleround")
	}

	viper.SetEnvPrefix("BATTLEROUND")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadDex reads the static tables, preferring the configured data directory.
func loadDex() (*data.Dex, error) {
	var dirs []string
	if dir := viper.GetString("data_dir"); dir != "" {
		dirs = append(dirs, dir)
	}
	return data.NewLoader(dirs).LoadDex()
}

func battleManager() *persistence.BattleManager {
	dir := viper.GetString("battles_dir")
	if dir == "" {
		dir = "./battles"
	}
	return persistence.NewBattleManager(filepath.Clean(dir))
}

// battleSeed returns the configured seed, or a fresh one when it is unset.
func battleSeed(cmd *cobra.Command) uint64 {
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		return seed
	}
	if seed := viper.GetUint64("seed"); seed != 0 {
		return seed
	}
	return rand.Uint64()
}

func fail(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
