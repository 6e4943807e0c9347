package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"popgrow"
	"popgrow/codegen"
	"popgrow/expr"
	"popgrow/internal/config"
	"popgrow/internal/render"
)

var deriveCmd = &cobra.Command{
	Use:   "derive [equation]",
	Short: "Derive the closed-form solution of a growth equation",
	Long: `Solves a first-order growth equation and binds the initial condition.

With --model the equation comes from the catalog; otherwise pass it as
the argument, e.g.:

  popgrow derive "df(t)/dt = alpha*f(t)"
  popgrow derive --model logistic
  popgrow derive "df(t)/dt = c" --initial x0 --t0 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		eqSrc, initial, err := resolveEquation(cmd, cfg, args)
		if err != nil {
			return err
		}
		t0Src, _ := cmd.Flags().GetString("t0")
		general, _ := cmd.Flags().GetBool("general")

		var d *popgrow.Derivation
		if general {
			d, err = popgrow.DeriveGeneral(eqSrc)
		} else {
			var t0, p0 expr.Expr
			if t0, err = expr.Parse(t0Src); err != nil {
				return fmt.Errorf("--t0: %w", err)
			}
			if p0, err = expr.Parse(initial); err != nil {
				return fmt.Errorf("--initial: %w", err)
			}
			d, err = popgrow.Derive(eqSrc, t0, p0)
		}
		if err != nil {
			return err
		}

		if cfg.Output.Format == "latex" {
			fmt.Println(render.DerivationLaTeX(d))
			return nil
		}
		emitText(cfg, render.DerivationMarkdown(d), plainDerivation(d))
		return nil
	},
}

// resolveEquation picks the equation and initial symbol from the
// --model flag or the positional argument.
func resolveEquation(cmd *cobra.Command, cfg config.Config, args []string) (string, string, error) {
	initial, _ := cmd.Flags().GetString("initial")
	if name, _ := cmd.Flags().GetString("model"); name != "" {
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return "", "", err
		}
		m, err := catalog.Find(name)
		if err != nil {
			return "", "", err
		}
		if initial == "" {
			initial = m.Initial
		}
		return m.Equation, initial, nil
	}
	if len(args) == 0 {
		return "", "", fmt.Errorf("pass an equation or --model (see popgrow models)")
	}
	if initial == "" {
		initial = "p0"
	}
	return args[0], initial, nil
}

// plainDerivation is the no-markdown rendering for --output plain.
func plainDerivation(d *popgrow.Derivation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "input:    %s\n", d.Input)
	fmt.Fprintf(&b, "class:    %s\n", d.General.Class)
	fmt.Fprintf(&b, "general:  %s\n", d.General)
	if d.Particular != nil {
		fmt.Fprintf(&b, "constant: %s = %s\n",
			d.General.Constant, codegen.Formula(d.Particular.Constant))
		for _, alt := range d.Particular.Alternates {
			fmt.Fprintf(&b, "          (also %s = %s)\n", d.General.Constant, codegen.Formula(alt))
		}
		fmt.Fprintf(&b, "solution: %s",
			codegen.FormulaEquation(d.Particular.Fn, d.Particular.Var, d.Particular.Expr))
	}
	return strings.TrimRight(b.String(), "\n")
}

func init() {
	rootCmd.AddCommand(deriveCmd)
	deriveCmd.Flags().String("model", "", "Derive a catalog model instead of an explicit equation")
	deriveCmd.Flags().String("initial", "", "Initial population expression (default p0, or the model's symbol)")
	deriveCmd.Flags().String("t0", "0", "Time of the initial condition")
	deriveCmd.Flags().Bool("general", false, "Stop at the general solution, keep the integration constant")
}
