package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available growth models",
	Long: `Lists every model in the catalog: the built-in constant, exponential
and logistic laws plus any user models from the configured catalog
file. User models with a built-in name replace the built-in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		var md, plain strings.Builder
		md.WriteString("# Models\n\n")
		for _, m := range catalog.Models {
			fmt.Fprintf(&md, "## %s\n\n", m.Name)
			if m.Description != "" {
				fmt.Fprintf(&md, "%s\n\n", m.Description)
			}
			fmt.Fprintf(&md, "    %s\n\n", m.Equation)
			for _, p := range m.Params {
				fmt.Fprintf(&md, "- `%s` = %g", p.Name, p.Default)
				if p.Description != "" {
					fmt.Fprintf(&md, ": %s", p.Description)
				}
				md.WriteString("\n")
			}
			if m.Initial != "" {
				fmt.Fprintf(&md, "- `%s` = %g (initial population)\n", m.Initial, m.InitialDefault)
			}
			md.WriteString("\n")

			fmt.Fprintf(&plain, "%s\t%s\n", m.Name, m.Equation)
		}
		emitText(cfg, md.String(), strings.TrimRight(plain.String(), "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
