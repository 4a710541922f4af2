// Package ideal computes per-scenario ideal values (V*).
// Each scenario gets an independent 0/1 knapsack: maximize that
// scenario's effective returns subject to the budget cap. The optimal
// value is the regret benchmark for the minimax solve; the particular
// selection behind it is irrelevant downstream.
package ideal

import (
	"context"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio-regret/core/types"
	"portfolio-regret/internal/errors"
	"portfolio-regret/internal/logging"
	"portfolio-regret/internal/mip"
)

// Failed is the sentinel value recorded for a scenario whose knapsack
// solve failed or ended non-optimal.
func Failed() float64 {
	return math.Inf(-1)
}

// Solver computes scenario ideal values under a budget cap
type Solver struct {
	// Budget is the total budget shared by all scenario knapsacks
	Budget decimal.Decimal

	// Parallel runs the scenario solves concurrently. The solves share no
	// mutable state, so the outcome is identical either way.
	Parallel bool

	// MaxNodes caps branch-and-bound nodes per knapsack; 0 means unlimited
	MaxNodes int
}

// Values computes V* for every scenario. A failed or non-optimal solve
// degrades to the Failed sentinel for that scenario instead of aborting;
// the returned error aggregates the per-scenario failure detail and is
// non-nil exactly when some value is the sentinel.
func (s Solver) Values(ctx context.Context, items []types.Blended) (map[types.Scenario]float64, error) {
	scenarios := types.Scenarios()
	vals := make([]float64, len(scenarios))
	errs := make([]error, len(scenarios))

	if s.Parallel {
		var g errgroup.Group
		for i, sc := range scenarios {
			g.Go(func() error {
				vals[i], errs[i] = s.solveScenario(ctx, sc, items)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, sc := range scenarios {
			vals[i], errs[i] = s.solveScenario(ctx, sc, items)
		}
	}

	out := make(map[types.Scenario]float64, len(scenarios))
	for i, sc := range scenarios {
		out[sc] = vals[i]
	}
	return out, multierr.Combine(errs...)
}

// solveScenario runs one knapsack and converts any failure to the sentinel
func (s Solver) solveScenario(ctx context.Context, scenario types.Scenario, items []types.Blended) (float64, error) {
	m := mip.New("scenario_ideal_" + string(scenario))
	m.SetMaxNodes(s.MaxNodes)

	var objective, spend mip.Expr
	for _, it := range items {
		v := m.Binary("select_" + it.ID)
		objective = objective.Plus(v, it.EffectiveFloat(scenario))
		spend = spend.Plus(v, it.Cost.InexactFloat64())
	}
	m.Maximize(objective)
	m.AddConstraint(spend, mip.LE, s.Budget.InexactFloat64())

	sol, err := m.Solve(ctx)
	if err != nil {
		logging.Warn("scenario ideal solve failed",
			zap.String("scenario", string(scenario)),
			zap.Error(err))
		return Failed(), errors.Wrapf(errors.TypeSolver, err, "scenario %s ideal solve failed", scenario)
	}
	if sol.Status != mip.StatusOptimal {
		logging.Warn("scenario ideal solve non-optimal",
			zap.String("scenario", string(scenario)),
			zap.String("status", string(sol.Status)))
		return Failed(), errors.Newf(errors.TypeSolver, "scenario %s ideal solve ended %s", scenario, sol.Status)
	}

	logging.Debug("scenario ideal computed",
		zap.String("scenario", string(scenario)),
		zap.Float64("v_star", sol.Objective))
	return sol.Objective, nil
}
