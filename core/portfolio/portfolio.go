// Package portfolio selects a minimax-regret optimal initiative subset.
// One portfolio is chosen to serve all scenarios; the solver minimizes
// the worst-case gap between each scenario's ideal value and the return
// the portfolio realizes in that scenario, subject to the budget cap and
// a floor on the raw (unblended) worst-case return.
package portfolio

import (
	"context"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"portfolio-regret/core/ideal"
	"portfolio-regret/core/penalty"
	"portfolio-regret/core/returns"
	"portfolio-regret/core/types"
	"portfolio-regret/internal/logging"
	"portfolio-regret/internal/mip"
)

// Optimizer holds the parameters of one optimization run
type Optimizer struct {
	// Budget is the total budget cap
	Budget decimal.Decimal

	// MinConfidence excludes initiatives below this confidence before
	// any optimization runs
	MinConfidence float64

	// MinWorstReturn is the floor on the portfolio's summed raw worst-case
	// return, guaranteed regardless of effective-return blending
	MinWorstReturn decimal.Decimal

	// Penalty is the confidence penalty model; nil selects penalty.Linear
	Penalty penalty.Model

	// Parallel runs the three scenario-ideal solves concurrently
	Parallel bool

	// MaxNodes caps branch-and-bound nodes per solve; 0 means unlimited
	MaxNodes int
}

// EffectiveReturns is the pure transform operation: it augments each
// initiative with its penalty weight and blended per-scenario returns
// without running any solver. Inputs are never mutated.
func EffectiveReturns(initiatives []types.Initiative, model penalty.Model) ([]types.Blended, error) {
	return returns.Compute(initiatives, model)
}

// Solve runs the full pipeline: eligibility filter, effective returns,
// scenario ideals, minimax-regret solve, result assembly. Solver-level
// failures of every kind land in the Result's Status; the only non-nil
// error is a confidence score outside [0,1], which aborts the run.
func (o Optimizer) Solve(ctx context.Context, initiatives []types.Initiative) (*types.Result, error) {
	eligible := o.filterEligible(initiatives)
	if len(eligible) == 0 {
		logging.Info("no initiatives meet the confidence threshold",
			zap.Float64("min_confidence", o.MinConfidence),
			zap.Int("candidates", len(initiatives)))
		return types.EmptyResult(types.StatusNoEligible, ""), nil
	}

	blended, err := returns.Compute(eligible, o.Penalty)
	if err != nil {
		return nil, err
	}

	ideals, idealErr := ideal.Solver{
		Budget:   o.Budget,
		Parallel: o.Parallel,
		MaxNodes: o.MaxNodes,
	}.Values(ctx, blended)

	for _, v := range ideals {
		if math.IsInf(v, -1) {
			// A missing benchmark makes every regret meaningless; skip the
			// minimax solve entirely. Only finite benchmarks are reported,
			// the message names the failed scenarios.
			res := types.EmptyResult(types.StatusIdealError, idealErr.Error())
			res.Ideals = finiteIdeals(ideals)
			return res, nil
		}
	}

	return o.solveMinimax(ctx, blended, ideals), nil
}

// filterEligible drops initiatives below the confidence threshold
func (o Optimizer) filterEligible(initiatives []types.Initiative) []types.Initiative {
	eligible := make([]types.Initiative, 0, len(initiatives))
	for _, in := range initiatives {
		if in.Confidence >= o.MinConfidence {
			eligible = append(eligible, in)
		}
	}
	return eligible
}

// solveMinimax formulates and solves the minimax-regret program and
// assembles the result
func (o Optimizer) solveMinimax(ctx context.Context, items []types.Blended, ideals map[types.Scenario]float64) *types.Result {
	m := mip.New("minimax_regret_portfolio")
	m.SetMaxNodes(o.MaxNodes)

	selects := make([]mip.Var, len(items))
	var spend, worstRaw mip.Expr
	for i, it := range items {
		selects[i] = m.Binary("select_" + it.ID)
		spend = spend.Plus(selects[i], it.Cost.InexactFloat64())
		worstRaw = worstRaw.Plus(selects[i], it.Worst.InexactFloat64())
	}

	// theta bounds the regret in every scenario simultaneously; minimizing
	// it pins it to the maximum regret at optimality.
	theta := m.Continuous("max_regret", 0, math.Inf(1))
	m.Minimize(mip.Expr{}.Plus(theta, 1))

	for _, s := range types.Scenarios() {
		expr := mip.Expr{}.Plus(theta, 1)
		for i, it := range items {
			expr = expr.Plus(selects[i], it.EffectiveFloat(s))
		}
		m.AddConstraint(expr, mip.GE, ideals[s])
	}
	m.AddConstraint(spend, mip.LE, o.Budget.InexactFloat64())
	m.AddConstraint(worstRaw, mip.GE, o.MinWorstReturn.InexactFloat64())

	sol, err := m.Solve(ctx)
	if err != nil {
		logging.Error("minimax regret solve failed", zap.Error(err))
		res := types.EmptyResult(types.StatusSolverError, err.Error())
		res.Ideals = ideals
		return res
	}
	if sol.Status != mip.StatusOptimal {
		res := types.EmptyResult(solveStatus(sol.Status), "")
		res.Ideals = ideals
		return res
	}

	return assemble(items, selects, sol, ideals)
}

// assemble post-processes an optimal solution into the result report
func assemble(items []types.Blended, selects []mip.Var, sol mip.Solution, ideals map[types.Scenario]float64) *types.Result {
	res := types.EmptyResult(types.StatusOptimal, "")
	res.Ideals = ideals

	for i, it := range items {
		if !sol.Selected(selects[i]) {
			continue
		}
		res.Selected = append(res.Selected, it.ID)
		res.TotalCost = res.TotalCost.Add(it.Cost)
		for _, s := range types.Scenarios() {
			res.TotalReturns[s] = res.TotalReturns[s].Add(it.Effective[s])
		}
	}

	res.Regrets = make(map[types.Scenario]float64, len(ideals))
	for _, s := range types.Scenarios() {
		res.Regrets[s] = ideals[s] - res.TotalReturns[s].InexactFloat64()
	}

	regret := sol.Objective
	res.MinMaxRegret = &regret

	logging.Info("minimax regret solve complete",
		zap.Float64("min_max_regret", regret),
		zap.Strings("selected", res.Selected),
		zap.String("total_cost", res.TotalCost.String()))
	return res
}

// finiteIdeals drops failure sentinels, which have no place in a report
func finiteIdeals(ideals map[types.Scenario]float64) map[types.Scenario]float64 {
	out := make(map[types.Scenario]float64, len(ideals))
	for s, v := range ideals {
		if !math.IsInf(v, 0) {
			out[s] = v
		}
	}
	return out
}

// solveStatus maps solver statuses onto the result taxonomy
func solveStatus(s mip.Status) types.Status {
	switch s {
	case mip.StatusInfeasible:
		return types.StatusInfeasible
	case mip.StatusUnbounded:
		return types.StatusUnbounded
	default:
		return types.StatusUndefined
	}
}
