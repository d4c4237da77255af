package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/felixlaga/atmodeller/pkg/adapters/httpapi"
)

// ReportMarkdown formats a solve response as a markdown report: one table
// per batch element plus a convergence summary.
func ReportMarkdown(resp *httpapi.SolveResponse) string {
	var b strings.Builder
	b.WriteString("# Equilibrium report\n\n")

	for i, m := range resp.Metadata {
		if len(resp.Metadata) > 1 {
			fmt.Fprintf(&b, "## Instance %d\n\n", i)
		}
		if !m.Converged {
			fmt.Fprintf(&b, "**Not converged** after %d attempts (residual %.3g).\n\n", m.Attempts, m.ResidualNorm)
			continue
		}

		b.WriteString("| Species | Value |\n|---|---|\n")
		keys := resp.Keys
		if len(keys) == 0 {
			keys = sortedQuickLookKeys(resp)
		}
		for _, k := range keys {
			vals, ok := resp.QuickLook[k]
			if !ok || i >= len(vals) {
				continue
			}
			fmt.Fprintf(&b, "| %s | %s |\n", k, formatValue(float64(vals[i])))
		}
		fmt.Fprintf(&b, "\nConverged in %d iterations (residual %.3g, %d attempt(s)).\n",
			m.Iterations, m.ResidualNorm, m.Attempts)
		if m.BoundarySaturated {
			fmt.Fprintf(&b, "\nBoundary-saturated species: %s.\n", strings.Join(m.SaturatedSpecies, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteReport renders the report to w. When w is a terminal the markdown is
// styled with glamour; otherwise the raw markdown is written as-is, keeping
// piped output machine-friendly.
func WriteReport(w io.Writer, resp *httpapi.SolveResponse) error {
	md := ReportMarkdown(resp)

	f, isFile := w.(*os.File)
	if !isFile || !term.IsTerminal(int(f.Fd())) {
		_, err := io.WriteString(w, md)
		return err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		_, werr := io.WriteString(w, md)
		return werr
	}
	styled, err := r.Render(md)
	if err != nil {
		_, werr := io.WriteString(w, md)
		return werr
	}
	_, err = io.WriteString(w, styled)
	return err
}

// Statusf prints a colored status line to stderr.
func Statusf(format string, args ...any) {
	p := termenv.ColorProfile()
	msg := termenv.String(fmt.Sprintf(format, args...)).Foreground(p.Color("#818cf8"))
	fmt.Fprintln(os.Stderr, msg)
}

func sortedQuickLookKeys(resp *httpapi.SolveResponse) []string {
	keys := make([]string, 0, len(resp.QuickLook))
	for k := range resp.QuickLook {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "-"
	case v != 0 && (math.Abs(v) >= 1e5 || math.Abs(v) < 1e-3):
		return fmt.Sprintf("%.6e", v)
	default:
		return fmt.Sprintf("%.6g", v)
	}
}
