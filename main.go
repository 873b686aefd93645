/*
Copyright © 2026 Paulo Suderio
*/
package main

import "github.com/suderio/battleround/cmd"

func main() {
	cmd.Execute()
}
