// Package types - optimization result model
package types

import (
	"github.com/shopspring/decimal"
)

// Status is the outcome classification of an optimization run
type Status string

const (
	// StatusOptimal indicates the minimax solve found a proven optimum
	StatusOptimal Status = "Optimal"

	// StatusInfeasible indicates no portfolio satisfies the constraints
	StatusInfeasible Status = "Infeasible"

	// StatusUnbounded indicates the formulation is unbounded
	StatusUnbounded Status = "Unbounded"

	// StatusUndefined indicates the solver terminated without a classification
	StatusUndefined Status = "Undefined"

	// StatusNoEligible indicates the confidence filter removed every candidate
	StatusNoEligible Status = "No Eligible Initiatives"

	// StatusIdealError indicates a scenario-ideal benchmark could not be computed
	StatusIdealError Status = "Scenario Ideal Error"

	// StatusSolverError indicates the minimax solver itself failed
	StatusSolverError Status = "Solver Error"
)

// Solved reports whether numeric result fields are trustworthy
func (s Status) Solved() bool {
	return s == StatusOptimal
}

// Result is the structured report of one optimization run.
// Invariant: when Status is not Optimal the selection is empty, totals are
// zero and MinMaxRegret is nil; callers must branch on Status before
// trusting any numeric field.
type Result struct {
	// Status classifies the run outcome
	Status Status `json:"status"`

	// Message carries failure detail for error statuses
	Message string `json:"message,omitempty"`

	// MinMaxRegret is the optimal worst-case regret; nil unless Optimal
	MinMaxRegret *float64 `json:"min_max_regret"`

	// Selected lists chosen initiative IDs in solver iteration order
	Selected []string `json:"selected_initiatives"`

	// TotalCost is the summed cost of the selection
	TotalCost decimal.Decimal `json:"total_cost"`

	// TotalReturns is the realized effective return of the selection per scenario
	TotalReturns map[Scenario]decimal.Decimal `json:"total_returns"`

	// Ideals holds the per-scenario ideal values V* used as regret benchmarks
	Ideals map[Scenario]float64 `json:"scenario_ideals,omitempty"`

	// Regrets is the realized portfolio's regret per scenario
	Regrets map[Scenario]float64 `json:"regrets,omitempty"`
}

// EmptyResult builds a zeroed result for a non-optimal status
func EmptyResult(status Status, message string) *Result {
	totals := make(map[Scenario]decimal.Decimal, len(Scenarios()))
	for _, s := range Scenarios() {
		totals[s] = decimal.Zero
	}
	return &Result{
		Status:       status,
		Message:      message,
		Selected:     []string{},
		TotalCost:    decimal.Zero,
		TotalReturns: totals,
	}
}
