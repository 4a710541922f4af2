// Package returns computes confidence-penalized effective returns.
// For each scenario the raw return is blended toward the initiative's
// worst case in proportion to the penalty weight:
//
//	effective[s] = (1-gamma)*raw[s] + gamma*raw[worst]
//
// Full confidence (gamma 0) keeps the raw projection; zero confidence
// collapses every scenario onto the guaranteed worst case.
package returns

import (
	"github.com/shopspring/decimal"

	"portfolio-regret/core/penalty"
	"portfolio-regret/core/types"
)

// Compute builds a derived Blended record per initiative. Inputs are never
// mutated; the transform is a pure function of the raw fields and the
// confidence score, so recomputing on unchanged inputs is a no-op.
// The only error path is the penalty model rejecting a confidence score.
func Compute(initiatives []types.Initiative, model penalty.Model) ([]types.Blended, error) {
	if model == nil {
		model = penalty.Linear{}
	}

	one := decimal.NewFromInt(1)
	out := make([]types.Blended, 0, len(initiatives))
	for _, in := range initiatives {
		gamma, err := model.Gamma(in.Confidence)
		if err != nil {
			return nil, err
		}

		g := decimal.NewFromFloat(gamma)
		keep := one.Sub(g)
		effective := make(map[types.Scenario]decimal.Decimal, len(types.Scenarios()))
		for _, s := range types.Scenarios() {
			effective[s] = keep.Mul(in.Raw(s)).Add(g.Mul(in.Worst))
		}

		out = append(out, types.Blended{
			Initiative: in,
			Gamma:      gamma,
			Effective:  effective,
		})
	}
	return out, nil
}
