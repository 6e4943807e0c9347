// Package render handles terminal output for the popgrow CLI:
// adaptive lipgloss styles, glamour markdown rendering, and the
// derivation report builder.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"popgrow"
	"popgrow/codegen"
	"popgrow/equiv"
)

// ShouldUseColor honors NO_COLOR and the terminal profile.
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return termenv.DefaultOutput().Profile != termenv.Ascii
}

// SetColorMode forces color on or off; mode "" means auto.
func SetColorMode(mode string) {
	switch mode {
	case "off":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "on":
		lipgloss.SetColorProfile(termenv.TrueColor)
	default:
		if !ShouldUseColor() {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	}
}

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
	colorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}

	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleGood  = lipgloss.NewStyle().Foreground(colorPass)
	StyleWarn  = lipgloss.NewStyle().Foreground(colorWarn)
	StyleMuted = lipgloss.NewStyle().Foreground(colorMuted)
)

// Markdown renders markdown for the terminal. On renderer failure the
// raw text comes back unchanged, so output is never lost.
func Markdown(src string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return out
}

// DerivationMarkdown builds the markdown report for a derivation.
func DerivationMarkdown(d *popgrow.Derivation) string {
	var b strings.Builder
	b.WriteString("# Derivation\n\n")
	fmt.Fprintf(&b, "**Input:** `%s`\n\n", d.Input)
	fmt.Fprintf(&b, "**Class:** %s\n\n", d.General.Class)
	fmt.Fprintf(&b, "**General solution:** `%s`\n\n", d.General)
	if d.Particular != nil {
		fmt.Fprintf(&b, "**Constant:** `%s = %s`\n\n",
			d.General.Constant, codegen.Formula(d.Particular.Constant))
		for _, alt := range d.Particular.Alternates {
			fmt.Fprintf(&b, "**Alternate constant:** `%s = %s`\n\n",
				d.General.Constant, codegen.Formula(alt))
		}
		fmt.Fprintf(&b, "**Solution:** `%s`\n\n",
			codegen.FormulaEquation(d.Particular.Fn, d.Particular.Var, d.Particular.Expr))
	}
	return b.String()
}

// DerivationLaTeX builds the LaTeX report for a derivation.
func DerivationLaTeX(d *popgrow.Derivation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s \\\\\n", d.Input.LaTeX())
	fmt.Fprintf(&b, "%s \\\\\n", d.General.Equation().LaTeX())
	if d.Particular != nil {
		fmt.Fprintf(&b, "%s(%s) = %s\n",
			d.Particular.Fn, d.Particular.Var, d.Particular.Expr.LaTeX())
	}
	return b.String()
}

// VerdictLine formats an equivalence verdict for the terminal.
func VerdictLine(res equiv.Result) string {
	if res.Status == equiv.Equivalent {
		return StyleGood.Render("equivalent") + StyleMuted.Render(" (difference is exactly 0)")
	}
	return StyleWarn.Render("inconclusive") +
		StyleMuted.Render(fmt.Sprintf(" (residual: %s)", res.Residual))
}
