/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suderio/battleround/internal/session"
)

var runCmd = &cobra.Command{
	Use:   "run <battle_name> [commands_file]",
	Short: "Feed action commands to a stored battle",
	Long: `Resumes a stored battle and executes action commands read from a file,
or from standard input when no file is given. One or more commands per line,
separated by ';'. Lines starting with '#' are ignored.

	attack by: user.0 move: thunderbolt to: opponent.0
	item by: user.0 item: potion on: 1
	swap by: opponent.0 to: 2
	flee by: user.0`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var in io.Reader = os.Stdin
		if len(args) == 2 {
			f, err := os.Open(args[1])
			if err != nil {
				fail("Error opening commands: %v", err)
			}
			defer f.Close()
			in = f
		}

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

		keepGoing, _ := cmd.Flags().GetBool("keep-going")
		scanner := bufio.NewScanner(in)
		for scanner.Scan() && !app.Over() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			res, err := app.Execute(line)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				if !keepGoing {
					app.Close()
					os.Exit(1)
				}
				continue
			}
			if res != nil {
				writeTurn(os.Stdout, res)
			}
		}
		if err := scanner.Err(); err != nil {
			fail("Error reading commands: %v", err)
		}

		if !app.Over() {
			if waiting := app.Waiting(); len(waiting) > 0 {
				fmt.Printf("Waiting for: %v\n", waiting)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("keep-going", "k", false, "report rejected commands and continue instead of stopping")
}
