package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"popgrow/equiv"
	"popgrow/expr"
	"popgrow/internal/render"
)

var equivCmd = &cobra.Command{
	Use:   "equiv <expression-a> <expression-b>",
	Short: "Check whether two expressions are provably the same",
	Long: `Normalizes the difference of the two expressions into one expanded
fraction and tests the numerator against zero. The verdict is either
"equivalent" (a proof) or "inconclusive"; a failed check is never a
proof of difference.

  popgrow equiv "(x+1)*(x-1)" "x^2 - 1"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		a, err := expr.Parse(args[0])
		if err != nil {
			return fmt.Errorf("first expression: %w", err)
		}
		b, err := expr.Parse(args[1])
		if err != nil {
			return fmt.Errorf("second expression: %w", err)
		}
		res := equiv.Check(a, b)
		fmt.Println(render.VerdictLine(res))
		if res.Status != equiv.Equivalent {
			return fmt.Errorf("equivalence not proven")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(equivCmd)
}
