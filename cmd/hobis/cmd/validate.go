package cmd

import (
	"fmt"

	"github.com/corey/hobis/internal/adapters/document"
	"github.com/corey/hobis/internal/domain/isotope"
	"github.com/corey/hobis/internal/ports"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the reference data against every table invariant",
	Long:  "Lists all violations instead of stopping at the first. Exits 3 if any are found.",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := catalogConfig(nil)
	if err != nil {
		return err
	}
	var src ports.Source = ports.BuiltinSource{}
	if cfg.DataPath != "" {
		src = &document.FileSource{Path: cfg.DataPath, Format: cfg.Format}
	}

	ds, err := src.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if vs := isotope.Validate(ds); len(vs) > 0 {
		fmt.Fprint(out, formatViolations(src.Describe(), vs))
		return exitStatus{exitInvalid}
	}

	records := 0
	for _, d := range ds {
		records += len(d.Records)
	}
	fmt.Fprintf(out, "%s✓ %s%s: %d dataset(s), %d record(s), no violations\n",
		colorGreen, src.Describe(), colorReset, len(ds), records)
	return nil
}
