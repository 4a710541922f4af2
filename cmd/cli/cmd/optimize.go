// Package cmd - optimize command
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio-regret/core/output"
	"portfolio-regret/core/penalty"
	"portfolio-regret/core/portfolio"
	"portfolio-regret/internal/config"
	"portfolio-regret/internal/logging"
)

var (
	budget         float64
	minConfidence  float64
	minWorstReturn float64
	outputFormat   string
	timeoutSecs    int
	parallel       bool
	penaltyExp     float64
)

// optimizeCmd represents the optimize command
var optimizeCmd = &cobra.Command{
	Use:   "optimize <initiatives-file>",
	Short: "Select a minimax-regret optimal portfolio",
	Long: `Read candidate initiatives from a JSON or YAML file, penalize
low-confidence projections, and solve for the portfolio minimizing
worst-case regret across the best/median/worst scenarios.

Each record needs: id, cost, confidence, r_best, r_median, r_worst.

Examples:
  portfolio-regret optimize --budget 150 initiatives.json
  portfolio-regret optimize --budget 150 --min-confidence 0.3 --min-worst-return 40 initiatives.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().Float64VarP(&budget, "budget", "b", 0, "total budget cap (required)")
	optimizeCmd.Flags().Float64VarP(&minConfidence, "min-confidence", "c", 0, "exclude initiatives below this confidence")
	optimizeCmd.Flags().Float64VarP(&minWorstReturn, "min-worst-return", "w", 0, "floor on the portfolio's raw worst-case return")
	optimizeCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	optimizeCmd.Flags().IntVarP(&timeoutSecs, "timeout", "t", 0, "per-run solver deadline in seconds (0 uses config)")
	optimizeCmd.Flags().BoolVarP(&parallel, "parallel", "p", false, "solve scenario ideals concurrently")
	optimizeCmd.Flags().Float64Var(&penaltyExp, "penalty-exponent", 1, "confidence penalty exponent (1 = linear)")
	_ = optimizeCmd.MarkFlagRequired("budget")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}

	initiatives, err := loadInitiatives(path)
	if err != nil {
		return err
	}
	logging.Info("loaded initiatives", zap.Int("count", len(initiatives)))

	cfg := config.Get()
	secs := timeoutSecs
	if secs == 0 {
		secs = cfg.Solver.TimeoutSeconds
	}
	ctx := context.Background()
	if secs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(secs)*time.Second)
		defer cancel()
	}

	var model penalty.Model = penalty.Linear{}
	if penaltyExp != 1 {
		model = penalty.Power{Exponent: penaltyExp}
	}

	opt := portfolio.Optimizer{
		Budget:         decimal.NewFromFloat(budget),
		MinConfidence:  minConfidence,
		MinWorstReturn: decimal.NewFromFloat(minWorstReturn),
		Penalty:        model,
		Parallel:       parallel || cfg.Solver.Parallel,
		MaxNodes:       cfg.Solver.MaxNodes,
	}

	result, err := opt.Solve(ctx, initiatives)
	if err != nil {
		return err
	}

	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.For(format, output.Options{
		ShowIdeals:  cfg.Output.ShowIdeals,
		ShowRegrets: cfg.Output.ShowRegrets,
	})
	if err != nil {
		return err
	}
	return formatter.Render(os.Stdout, result)
}
