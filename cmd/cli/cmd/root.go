// Package cmd provides the CLI commands for portfolio-regret.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"portfolio-regret/internal/config"
	"portfolio-regret/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "portfolio-regret",
	Short: "Minimax-regret portfolio selection under uncertainty",
	Long: `portfolio-regret selects a subset of candidate initiatives that
minimizes worst-case regret across best/median/worst return scenarios,
subject to a budget cap and a minimum guaranteed worst-case return.

Initiative returns are confidence-penalized: low-confidence projections
are blended toward their worst case before any optimization runs.

Examples:
  portfolio-regret optimize --budget 150 initiatives.json
  portfolio-regret optimize --budget 150 --min-confidence 0.3 --min-worst-return 40 initiatives.yaml
  portfolio-regret optimize --budget 150 --format json initiatives.json`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.portfolio-regret.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("portfolio-regret version 0.1.0")
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		fmt.Printf("Solver timeout: %ds\n", cfg.Solver.TimeoutSeconds)
		fmt.Printf("Parallel scenario solves: %v\n", cfg.Solver.Parallel)
		fmt.Printf("Default output format: %s\n", cfg.Output.DefaultFormat)
		fmt.Printf("Log level: %s\n", cfg.Logging.Level)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
