package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	fsw "github.com/corey/hobis/internal/adapters/fsnotify"
	"github.com/corey/hobis/internal/app"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	watchLogFile    string
	watchLogMaxSize int
	watchLogBackups int
	watchDebounce   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the --data file on every change",
	Long: "Loads --data, then reloads it whenever the file changes. A revision that fails\n" +
		"validation is logged and rejected; the previous table stays in service.",
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVar(&watchLogFile, "log-file", "", "Write the reload log to a rotating file (default: stderr)")
	f.IntVar(&watchLogMaxSize, "log-max-size", 10, "Rotate --log-file after this many megabytes")
	f.IntVar(&watchLogBackups, "log-max-backups", 3, "Rotated --log-file copies to keep")
	f.DurationVar(&watchDebounce, "debounce", fsw.DefaultDebounce, "Quiet period before reloading after a change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	var sink io.Writer = cmd.ErrOrStderr()
	if watchLogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   watchLogFile,
			MaxSize:    watchLogMaxSize,
			MaxBackups: watchLogBackups,
		}
		defer lj.Close()
		sink = lj
	}
	logger := log.New(sink, "hobis ", log.LstdFlags)

	cfg, err := catalogConfig(logger)
	if err != nil {
		return err
	}
	if cfg.DataPath == "" {
		return fmt.Errorf("watch needs --data or $%s: %w", dataEnv, app.ErrNotWatchable)
	}
	c, err := app.NewCatalog(cfg)
	if err != nil {
		return err
	}

	w, err := fsw.NewWatcher(watchDebounce)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w.Errors = func(err error) { logger.Printf("watcher: %v", err) }
	if err := c.Watch(w); err != nil {
		w.Stop()
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "☢ watching %s (revision %d)\n", c.Source(), c.Revision())

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	signal.Stop(sigCh)

	fmt.Fprintln(cmd.OutOrStdout(), "\n☢ stopping...")
	return c.Stop()
}
