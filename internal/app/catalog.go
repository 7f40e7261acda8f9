// Package app wires the isotope table to its data source and watcher.
// A Catalog owns the current *isotope.Table and replaces it wholesale on
// reload; readers never see a partially updated table.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/corey/hobis/internal/adapters/document"
	"github.com/corey/hobis/internal/domain/isotope"
	"github.com/corey/hobis/internal/ports"
)

// ErrNotWatchable is returned by Watch when the catalog has no data file.
var ErrNotWatchable = errors.New("catalog has no data file to watch")

// Config selects where reference data comes from.
type Config struct {
	DataPath string          // interchange document; empty = builtin table
	Format   document.Format // FormatAuto infers from DataPath
	Source   ports.Source    // optional: overrides DataPath
	Logger   *log.Logger     // optional: nil discards
}

// Catalog holds the live isotope table. Table is lock-free; Reload and Watch
// may be called from any goroutine.
type Catalog struct {
	source ports.Source
	path   string
	logger *log.Logger

	table    atomic.Pointer[isotope.Table]
	revision atomic.Uint64

	reloadMu sync.Mutex // serializes Reload so swaps happen in load order
	watchMu  sync.Mutex
	watcher  ports.Watcher
}

// NewCatalog loads and validates the configured data. It fails fast: if the
// initial load does not validate, no catalog is returned and the error is a
// *isotope.ValidationError (or a decode/read error).
func NewCatalog(cfg Config) (*Catalog, error) {
	c := &Catalog{
		source: cfg.Source,
		path:   cfg.DataPath,
		logger: cfg.Logger,
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard, "", 0)
	}
	if c.source == nil {
		if cfg.DataPath == "" {
			c.source = ports.BuiltinSource{}
		} else {
			c.source = &document.FileSource{Path: cfg.DataPath, Format: cfg.Format}
		}
	}

	tbl, err := c.load()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.source.Describe(), err)
	}
	c.swap(tbl)
	return c, nil
}

// Table returns the current table. The pointer stays valid and unchanged
// for as long as the caller holds it, even across reloads.
func (c *Catalog) Table() *isotope.Table {
	return c.table.Load()
}

// Revision counts successful loads, starting at 1.
func (c *Catalog) Revision() uint64 {
	return c.revision.Load()
}

// Source describes where the catalog reads from.
func (c *Catalog) Source() string {
	return c.source.Describe()
}

// Reload reads the source again and swaps in the new table if it validates.
// On any failure the current table stays in place and the error is returned.
func (c *Catalog) Reload() error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	tbl, err := c.load()
	if err != nil {
		c.logger.Printf("reload rejected, keeping revision %d: %v", c.Revision(), err)
		return err
	}
	c.swap(tbl)
	return nil
}

func (c *Catalog) load() (*isotope.Table, error) {
	ds, err := c.source.Load()
	if err != nil {
		return nil, err
	}
	return isotope.New(ds)
}

func (c *Catalog) swap(tbl *isotope.Table) {
	c.table.Store(tbl)
	rev := c.revision.Add(1)

	records := 0
	for _, key := range tbl.Datasets() {
		ids, _ := tbl.Isotopes(key)
		records += len(ids)
	}
	c.logger.Printf("revision %d: %d dataset(s), %d record(s) from %s",
		rev, len(tbl.Datasets()), records, c.source.Describe())
}

// Watch reloads the catalog whenever the data file changes. Only one watch
// may be active; it ends with Stop.
func (c *Catalog) Watch(w ports.Watcher) error {
	if c.path == "" {
		return ErrNotWatchable
	}
	c.watchMu.Lock()
	defer c.watchMu.Unlock()
	if c.watcher != nil {
		return fmt.Errorf("catalog is already watching %s", c.path)
	}

	if err := w.Watch(c.path, func(string) { _ = c.Reload() }); err != nil {
		return fmt.Errorf("watch %s: %w", c.path, err)
	}
	c.watcher = w
	c.logger.Printf("watching %s", c.path)
	return nil
}

// Stop ends an active Watch. Safe to call multiple times.
func (c *Catalog) Stop() error {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()
	if c.watcher == nil {
		return nil
	}
	err := c.watcher.Stop()
	c.watcher = nil
	return err
}
