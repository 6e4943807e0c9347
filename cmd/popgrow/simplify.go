package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"popgrow/expr"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify <expression>",
	Short: "Canonicalize a symbolic expression",
	Long: `Parses an expression and prints its canonical form. All arithmetic is
exact rational; constants like exp(2) stay symbolic.

  popgrow simplify "x + x + 1/3 + 1/6"
  popgrow simplify --latex "p0*exp(alpha*t)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := expr.Parse(args[0])
		if err != nil {
			return err
		}
		if latex, _ := cmd.Flags().GetBool("latex"); latex {
			fmt.Println(e.Simplify().LaTeX())
			return nil
		}
		fmt.Println(e.Simplify())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
	simplifyCmd.Flags().Bool("latex", false, "Print LaTeX instead of plain text")
}
