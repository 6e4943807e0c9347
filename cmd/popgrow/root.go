package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"popgrow/internal/config"
	"popgrow/internal/render"
	"popgrow/model"
)

var rootCmd = &cobra.Command{
	Use:   "popgrow",
	Short: "popgrow derives population growth formulas symbolically",
	Long: `popgrow takes a growth law like df(t)/dt = r*f(t)*(1 - f(t)/K),
solves it in closed form, binds the initial condition, and emits the
resulting formula as text, LaTeX or Go source. All symbolic steps are
exact; nothing is approximated until you ask for a simulation.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to popgrow.toml")
	rootCmd.PersistentFlags().String("output", "", "Output format: pretty, plain or latex (overrides config)")
	rootCmd.PersistentFlags().String("color", "", "Color mode: on, off or auto")
}

// loadConfig reads the configuration honoring the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Output.Format = out
	}
	if color, _ := cmd.Flags().GetString("color"); color != "" {
		cfg.Output.Color = color
	}
	render.SetColorMode(cfg.Output.Color)
	return cfg, nil
}

// loadCatalog returns the builtin models merged with the user catalog
// from the configuration, when present.
func loadCatalog(cfg config.Config) (model.Catalog, error) {
	catalog := model.Builtin()
	if cfg.Catalog == "" {
		return catalog, nil
	}
	user, err := model.Load(cfg.Catalog)
	if err != nil {
		return model.Catalog{}, err
	}
	return catalog.Merge(user), nil
}

// emitText prints s in the configured format; markdown input renders
// through glamour in pretty mode.
func emitText(cfg config.Config, markdown string, plain string) {
	if cfg.Output.Format == "pretty" {
		fmt.Print(render.Markdown(markdown))
		return
	}
	fmt.Println(plain)
}
