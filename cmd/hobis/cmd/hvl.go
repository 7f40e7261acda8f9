package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/hobis/internal/domain/isotope"
	"github.com/spf13/cobra"
)

var hvlCmd = &cobra.Command{
	Use:   "hvl DATASET ISOTOPE MATERIAL",
	Short: "Print the half-value layer thickness in mm",
	Long: "Prints the HVL in mm. A material the dataset has no value for is an error\n" +
		"that lists the materials it does have.",
	Args: cobra.ExactArgs(3),
	RunE: runHVL,
}

func runHVL(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}
	tbl := c.Table()
	e, err := tbl.HVLEntry(args[0], args[1], isotope.Material(args[2]))
	if err != nil {
		if ms, lerr := tbl.Materials(args[0], args[1]); lerr == nil {
			names := make([]string, len(ms))
			for i, m := range ms {
				names[i] = string(m)
			}
			return fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
		}
		return err
	}

	out := fmt.Sprintf("%g", e.MM)
	if e.Provenance == isotope.Approximated {
		out += " (approximated)"
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
