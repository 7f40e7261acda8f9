package cmd

import (
	"errors"

	"github.com/corey/hobis/internal/domain/isotope"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitLookupMiss = 2
	exitInvalid    = 3
)

// exitStatus is returned by commands that have already reported their
// outcome and only need a specific exit code.
type exitStatus struct{ code int }

func (e exitStatus) Error() string { return "" }

// ExitCode maps an error from Execute to a process exit code: 2 for an
// unknown dataset, isotope or material, 3 for data that fails validation,
// 1 for anything else.
func ExitCode(err error) int {
	var es exitStatus
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &es):
		return es.code
	case errors.Is(err, isotope.ErrValidation):
		return exitInvalid
	case errors.Is(err, isotope.ErrUnknownDataset),
		errors.Is(err, isotope.ErrUnknownIsotope),
		errors.Is(err, isotope.ErrUnknownMaterial):
		return exitLookupMiss
	}
	return exitError
}
