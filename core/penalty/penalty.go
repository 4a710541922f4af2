// Package penalty maps confidence scores to penalty weights.
// The weight (gamma) shrinks optimistic scenario returns toward the
// worst case; low confidence means heavy shrinkage.
package penalty

import (
	"math"

	"portfolio-regret/internal/errors"
)

// Model converts a confidence score into a penalty weight.
// Implementations must be stateless; callers may substitute any
// monotonically decreasing mapping without touching other components.
type Model interface {
	// Gamma returns the penalty weight in [0,1] for a confidence in [0,1].
	// Confidence outside [0,1] is an input error.
	Gamma(confidence float64) (float64, error)
}

// Linear is the default penalty model: gamma = 1 - confidence
type Linear struct{}

// Gamma implements Model
func (Linear) Gamma(confidence float64) (float64, error) {
	if err := validate(confidence); err != nil {
		return 0, err
	}
	return 1 - confidence, nil
}

// Power penalizes with gamma = (1 - confidence)^Exponent. Exponents above
// one are more forgiving of mid-range confidence than the linear model.
type Power struct {
	Exponent float64
}

// Gamma implements Model
func (p Power) Gamma(confidence float64) (float64, error) {
	if err := validate(confidence); err != nil {
		return 0, err
	}
	exp := p.Exponent
	if exp <= 0 {
		exp = 1
	}
	return math.Pow(1-confidence, exp), nil
}

// Func adapts a plain function to the Model interface
type Func func(confidence float64) (float64, error)

// Gamma implements Model
func (f Func) Gamma(confidence float64) (float64, error) {
	return f(confidence)
}

func validate(confidence float64) error {
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return errors.Inputf("confidence score must be between 0 and 1, got %v", confidence)
	}
	return nil
}
