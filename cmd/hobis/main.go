// hobis inspects, validates and exports the radionuclide reference table
// (half-life, gamma constant, HVL per shielding material).
package main

import (
	"os"

	"github.com/corey/hobis/cmd/hobis/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
