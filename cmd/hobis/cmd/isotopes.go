package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var isotopesCmd = &cobra.Command{
	Use:   "isotopes DATASET",
	Short: "List isotope ids of a dataset in source order",
	Args:  cobra.ExactArgs(1),
	RunE:  runIsotopes,
}

func runIsotopes(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}
	ids, err := c.Table().Isotopes(args[0])
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
