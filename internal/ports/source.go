// Package ports defines the interfaces (contracts) that adapters must implement.
// The isotope domain depends only on these interfaces, never on concrete
// file formats or watchers.
package ports

import "github.com/corey/hobis/internal/domain/isotope"

// Source produces the raw datasets a table is built from. Load is called once
// at startup and again on every reload; implementations must return fresh
// values each time and must not validate (isotope.New does that).
type Source interface {
	Load() ([]isotope.Dataset, error)

	// Describe names the source for log lines, e.g. a file path.
	Describe() string
}

// BuiltinSource serves the reference data compiled into the binary.
type BuiltinSource struct{}

func (BuiltinSource) Load() ([]isotope.Dataset, error) {
	return isotope.BuiltinDatasets(), nil
}

func (BuiltinSource) Describe() string { return "builtin" }
