package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show DATASET ISOTOPE",
	Short: "Show half-life, gamma constant and HVL values for one isotope",
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}
	r, err := c.Table().Record(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatRecord(args[0], r))
	return nil
}
