package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List dataset keys",
	Args:  cobra.NoArgs,
	RunE:  runDatasets,
}

func runDatasets(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}
	for _, key := range c.Table().Datasets() {
		fmt.Fprintln(cmd.OutOrStdout(), key)
	}
	return nil
}
