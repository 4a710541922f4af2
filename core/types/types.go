// Package types defines the portfolio optimization data model.
package types

import (
	"github.com/shopspring/decimal"
)

// Scenario identifies one of the fixed return scenarios
type Scenario string

const (
	// ScenarioBest is the optimistic return scenario
	ScenarioBest Scenario = "best"

	// ScenarioMedian is the median return scenario
	ScenarioMedian Scenario = "median"

	// ScenarioWorst is the pessimistic return scenario
	ScenarioWorst Scenario = "worst"
)

// Scenarios returns the closed scenario set in its fixed order
func Scenarios() []Scenario {
	return []Scenario{ScenarioBest, ScenarioMedian, ScenarioWorst}
}

// Initiative is a candidate investment with uncertain returns.
// Raw values are input facts and are never modified by the pipeline.
// By convention Best >= Median >= Worst; the ordering is not enforced,
// a violated ordering blends to a well-defined (if odd) value.
type Initiative struct {
	// ID is the unique, stable identifier
	ID string `json:"id"`

	// Cost is the non-negative cost of funding the initiative
	Cost decimal.Decimal `json:"cost"`

	// Confidence is the analyst confidence score in [0,1]
	Confidence float64 `json:"confidence"`

	// Best is the raw return under the best scenario
	Best decimal.Decimal `json:"r_best"`

	// Median is the raw return under the median scenario
	Median decimal.Decimal `json:"r_median"`

	// Worst is the raw return under the worst scenario
	Worst decimal.Decimal `json:"r_worst"`
}

// Raw returns the raw return for a scenario
func (i Initiative) Raw(s Scenario) decimal.Decimal {
	switch s {
	case ScenarioBest:
		return i.Best
	case ScenarioMedian:
		return i.Median
	default:
		return i.Worst
	}
}

// Blended is the derived projection of an initiative after confidence
// penalization. It is constructed by the effective-return calculator and
// immutable afterwards; the embedded Initiative keeps its raw values.
type Blended struct {
	Initiative

	// Gamma is the confidence penalty weight in [0,1]
	Gamma float64 `json:"gamma"`

	// Effective maps each scenario to its confidence-blended return
	Effective map[Scenario]decimal.Decimal `json:"effective_returns"`
}

// EffectiveFloat returns the blended return for a scenario as a float64,
// the representation consumed by the integer-program solver.
func (b Blended) EffectiveFloat(s Scenario) float64 {
	return b.Effective[s].InexactFloat64()
}
