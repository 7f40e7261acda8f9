package isotope

import (
	"errors"
	"fmt"
	"strings"
)

// Lookup sentinels. A *LookupError wraps exactly one of these.
var (
	ErrUnknownDataset  = errors.New("unknown dataset")
	ErrUnknownIsotope  = errors.New("unknown isotope")
	ErrUnknownMaterial = errors.New("no HVL value for material")
)

// ErrValidation is the sentinel a *ValidationError unwraps to.
var ErrValidation = errors.New("isotope table failed validation")

// LookupError reports a key that could not be resolved, with the full key the
// caller asked for. ErrUnknownMaterial is an expected outcome for partial HVL
// maps; callers tell it apart from a mistyped dataset or isotope via errors.Is.
type LookupError struct {
	Dataset  string
	Isotope  string
	Material Material
	Err      error
}

func (e *LookupError) Error() string {
	switch e.Err {
	case ErrUnknownDataset:
		return fmt.Sprintf("%v %q", e.Err, e.Dataset)
	case ErrUnknownIsotope:
		return fmt.Sprintf("%v %q in dataset %q", e.Err, e.Isotope, e.Dataset)
	default:
		return fmt.Sprintf("%v %q (%s/%s)", e.Err, e.Material, e.Dataset, e.Isotope)
	}
}

func (e *LookupError) Unwrap() error { return e.Err }

// Violation is one broken invariant. Isotope is empty for dataset-level
// problems.
type Violation struct {
	Dataset string
	Isotope string
	Field   string
	Message string
}

func (v Violation) String() string {
	loc := v.Dataset
	if loc == "" {
		loc = "<unnamed>"
	}
	if v.Isotope != "" {
		loc += "/" + v.Isotope
	}
	if v.Field != "" {
		loc += "." + v.Field
	}
	return loc + ": " + v.Message
}

// ValidationError is returned by New when the input breaks one or more
// invariants. A table that fails validation is never constructed.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v: %d violation(s)", ErrValidation, len(e.Violations))
	for _, v := range e.Violations {
		sb.WriteString("\n  ")
		sb.WriteString(v.String())
	}
	return sb.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
