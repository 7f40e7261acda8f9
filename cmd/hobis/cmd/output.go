package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/hobis/internal/domain/isotope"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// formatRecord renders one record. Approximated HVL values are marked with ~.
//
//	☢ Se-75 (QSA)
//	  half-life  120 d
//	  gamma      2.03 mSv·m²/h·Ci
//	  HVL (mm)   Lead 1 │ Steel 8 │ Concrete 30 │ Tungsten 0.8 │ DU ~0.6
func formatRecord(dataset string, r isotope.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s☢ %s%s %s(%s)%s\n", colorBold, r.ID, colorReset, colorGray, dataset, colorReset)
	fmt.Fprintf(&sb, "  half-life  %s\n", r.HalfLife)
	fmt.Fprintf(&sb, "  gamma      %g %s\n", r.Gamma, isotope.GammaUnit)

	parts := make([]string, 0, len(r.HVL))
	approx := false
	for _, m := range r.Materials() {
		v := r.HVL[m]
		mark := ""
		if v.Provenance == isotope.Approximated {
			mark = colorYellow + "~" + colorReset
			approx = true
		}
		parts = append(parts, fmt.Sprintf("%s%s%s %s%g", colorCyan, m, colorReset, mark, v.MM))
	}
	fmt.Fprintf(&sb, "  HVL (mm)   %s\n", strings.Join(parts, " │ "))
	if approx {
		fmt.Fprintf(&sb, "  %s~ approximated, not read directly from the standard's table%s\n", colorGray, colorReset)
	}
	return sb.String()
}

// formatViolations renders a validation report.
func formatViolations(source string, vs []isotope.Violation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s✗ %s: %d violation(s)%s\n", colorBold, source, len(vs), colorReset)
	for _, v := range vs {
		fmt.Fprintf(&sb, "  %s\n", v)
	}
	return sb.String()
}
