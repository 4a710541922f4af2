// Package mip - branch-and-bound solve
package mip

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"portfolio-regret/internal/errors"
)

const (
	// simplexTol is the pivot tolerance handed to the LP solver
	simplexTol = 1e-10

	// intTol is the integrality tolerance for binary variables
	intTol = 1e-6

	// pruneTol guards bound pruning against floating-point noise
	pruneTol = 1e-9
)

// Solve runs branch-and-bound to a proven optimum. The context is checked
// between nodes, so a deadline bounds the solve; expiry surfaces as a
// solver error, never a panic. Infeasible and unbounded formulations are
// reported through the Solution status rather than the error.
func (m *Model) Solve(ctx context.Context) (Solution, error) {
	n := len(m.vars)
	if n == 0 {
		return Solution{Status: StatusUndefined}, errors.New(errors.TypeSolver, "model has no variables")
	}
	for _, v := range m.vars {
		if math.IsInf(v.lb, -1) {
			return Solution{Status: StatusUndefined},
				errors.Newf(errors.TypeSolver, "variable %s needs a finite lower bound", v.name)
		}
	}

	c := make([]float64, n)
	for _, t := range m.objective {
		c[t.Var.idx] += t.Coef
	}
	if m.sense == Maximize {
		for i := range c {
			c[i] = -c[i]
		}
	}

	type node struct {
		lb, ub []float64
	}
	rootLB := make([]float64, n)
	rootUB := make([]float64, n)
	for i, v := range m.vars {
		rootLB[i] = v.lb
		rootUB[i] = v.ub
	}

	best := math.Inf(1)
	var bestX []float64
	visited := 0
	stack := []node{{lb: rootLB, ub: rootUB}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return Solution{Status: StatusUndefined}, errors.Wrap(errors.TypeSolver, "solve interrupted", err)
		}
		visited++
		if m.maxNodes > 0 && visited > m.maxNodes {
			return Solution{Status: StatusUndefined}, errors.Newf(errors.TypeSolver, "branch-and-bound node limit %d exceeded", m.maxNodes)
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, obj, err := m.relax(c, nd.lb, nd.ub)
		switch err {
		case nil:
		case lp.ErrInfeasible:
			continue
		case lp.ErrUnbounded:
			// A model whose variables all carry finite bounds spans a
			// compact polytope; an unbounded report there is numerical
			// failure, not a classification.
			if m.allVarsBounded() {
				return Solution{Status: StatusUndefined},
					errors.New(errors.TypeSolver, "solver reported unbounded for a bounded model")
			}
			return Solution{Status: StatusUnbounded}, nil
		default:
			return Solution{Status: StatusUndefined}, errors.Wrap(errors.TypeSolver, "LP relaxation failed", err)
		}

		// The relaxation bounds every descendant; nothing below can beat
		// the incumbent.
		if obj >= best-pruneTol {
			continue
		}

		branch := m.mostFractional(x)
		if branch < 0 {
			best = obj
			bestX = m.snap(x)
			continue
		}

		down := node{lb: cloneBounds(nd.lb), ub: cloneBounds(nd.ub)}
		down.ub[branch] = 0
		up := node{lb: cloneBounds(nd.lb), ub: cloneBounds(nd.ub)}
		up.lb[branch] = 1
		// LIFO: the x=1 side is explored first
		stack = append(stack, down, up)
	}

	if bestX == nil {
		return Solution{Status: StatusInfeasible}, nil
	}

	objective := best
	if m.sense == Maximize {
		objective = -objective
	}
	return Solution{Status: StatusOptimal, Objective: objective, values: bestX}, nil
}

// relax solves the LP relaxation under the node's variable bounds.
// The standard form min c'y s.t. Ay = b, y >= 0 is assembled directly:
// every variable is shifted by its (finite) lower bound so y = x - lb,
// finite upper bounds become rows, and each inequality row gets its own
// slack column. Splitting variables into free positive/negative parts
// would make the simplex misreport bounded instances as unbounded.
func (m *Model) relax(c, lb, ub []float64) ([]float64, float64, error) {
	n := len(c)

	type ineqRow struct {
		coefs []float64
		rhs   float64
		eq    bool
	}
	var rows []ineqRow
	add := func(coefs []float64, rhs float64, eq bool) {
		rows = append(rows, ineqRow{coefs: coefs, rhs: rhs, eq: eq})
	}

	for _, con := range m.constraints {
		r := make([]float64, n)
		for _, t := range con.expr {
			r[t.Var.idx] += t.Coef
		}
		rhs := con.rhs
		for i := 0; i < n; i++ {
			rhs -= r[i] * lb[i]
		}
		switch con.rel {
		case LE:
			add(r, rhs, false)
		case GE:
			add(negated(r), -rhs, false)
		case EQ:
			add(r, rhs, true)
		}
	}
	for i := 0; i < n; i++ {
		if math.IsInf(ub[i], 1) {
			continue
		}
		r := make([]float64, n)
		r[i] = 1
		add(r, ub[i]-lb[i], false)
	}

	// Constraint-free model: only reachable when every upper bound is
	// open, so the relaxation is min c'y over y >= 0.
	if len(rows) == 0 {
		for i := range c {
			if c[i] < 0 {
				return nil, 0, lp.ErrUnbounded
			}
		}
		x := cloneBounds(lb)
		return x, dot(c, x), nil
	}

	nSlack := 0
	for _, r := range rows {
		if !r.eq {
			nSlack++
		}
	}
	cols := n + nSlack
	a := make([]float64, len(rows)*cols)
	b := make([]float64, len(rows))
	cStd := make([]float64, cols)
	copy(cStd, c)

	slack := 0
	for ri, r := range rows {
		copy(a[ri*cols:ri*cols+n], r.coefs)
		if !r.eq {
			a[ri*cols+n+slack] = 1
			slack++
		}
		b[ri] = r.rhs
	}

	_, ys, err := lp.Simplex(cStd, mat.NewDense(len(rows), cols, a), b, simplexTol, nil)
	if err != nil {
		return nil, 0, err
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = ys[i] + lb[i]
	}
	return x, dot(c, x), nil
}

// allVarsBounded reports whether every variable has finite bounds
func (m *Model) allVarsBounded() bool {
	for _, v := range m.vars {
		if math.IsInf(v.lb, -1) || math.IsInf(v.ub, 1) {
			return false
		}
	}
	return true
}

// mostFractional picks the binary variable farthest from integrality,
// or -1 if the point is integral.
func (m *Model) mostFractional(x []float64) int {
	branch := -1
	worst := intTol
	for i, v := range m.vars {
		if !v.binary {
			continue
		}
		frac := math.Abs(x[i] - math.Round(x[i]))
		if frac > worst {
			worst = frac
			branch = i
		}
	}
	return branch
}

// snap copies a relaxation point, rounding binaries to exact 0/1
func (m *Model) snap(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range m.vars {
		if v.binary {
			out[i] = round01(x[i])
		} else {
			out[i] = x[i]
		}
	}
	return out
}

func cloneBounds(b []float64) []float64 {
	out := make([]float64, len(b))
	copy(out, b)
	return out
}

func negated(row []float64) []float64 {
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = -v
	}
	return out
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}
