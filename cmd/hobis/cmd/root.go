package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/corey/hobis/internal/adapters/document"
	"github.com/corey/hobis/internal/app"
	"github.com/spf13/cobra"
)

// dataEnv is consulted when --data is not given.
const dataEnv = "HOBIS_DATA"

var (
	dataPath   string
	dataFormat string
)

var rootCmd = &cobra.Command{
	Use:   "hobis",
	Short: "hobis: radionuclide reference table",
	Long: "Half-life, gamma constant and half-value layer data from QSA Global MAN-027 and ICRP 107.\n" +
		"Reads the builtin table, or an interchange document given with --data or $" + dataEnv + ".",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "error: %s\n", msg)
		}
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataPath, "data", "", "Interchange document to load (default: builtin table, or $"+dataEnv+")")
	pf.StringVar(&dataFormat, "format", "", "Format of --data: json or yaml (default: from extension)")

	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(isotopesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(hvlCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
}

// catalogConfig resolves --data/--format, falling back to the environment.
func catalogConfig(logger *log.Logger) (app.Config, error) {
	format, err := document.ParseFormat(dataFormat)
	if err != nil {
		return app.Config{}, err
	}
	path := dataPath
	if path == "" {
		path = os.Getenv(dataEnv)
	}
	return app.Config{DataPath: path, Format: format, Logger: logger}, nil
}

// openCatalog loads the configured data, failing on any validation violation.
func openCatalog() (*app.Catalog, error) {
	cfg, err := catalogConfig(nil)
	if err != nil {
		return nil, err
	}
	return app.NewCatalog(cfg)
}
