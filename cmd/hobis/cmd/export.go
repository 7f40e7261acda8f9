package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/corey/hobis/internal/adapters/document"
	"github.com/corey/hobis/internal/app"
	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the reference table as an interchange document",
	Long: "Writes the loaded table (builtin or --data) as JSON or YAML. The output is\n" +
		"validated data only and can be fed back with --data.",
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "export-format", "", "json or yaml (default: from --out extension, else json)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := document.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	if format == document.FormatAuto {
		format = document.FormatFromPath(exportOut)
	}

	c, err := openCatalog()
	if err != nil {
		return err
	}

	if exportOut == "" {
		return encode(cmd.OutOrStdout(), c, format)
	}
	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	if err := encode(f, c, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encode(w io.Writer, c *app.Catalog, format document.Format) error {
	if err := document.Encode(w, c.Table().All(), format); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
