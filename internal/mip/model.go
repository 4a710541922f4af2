// Package mip provides a small mixed binary/continuous linear program
// solver. Models are built variable by variable, then solved by
// branch-and-bound on the binary variables with each node's LP relaxation
// handed to the gonum simplex. Every Model owns a fresh variable
// namespace, so concurrent solves never share state.
package mip

// Sense is the optimization direction
type Sense int

const (
	// Minimize seeks the smallest objective value
	Minimize Sense = iota

	// Maximize seeks the largest objective value
	Maximize
)

// Rel is a constraint relation
type Rel int

const (
	// LE constrains the expression to be <= the right-hand side
	LE Rel = iota

	// GE constrains the expression to be >= the right-hand side
	GE

	// EQ constrains the expression to equal the right-hand side
	EQ
)

// Status classifies a solve outcome
type Status string

const (
	// StatusOptimal means a proven optimum was found
	StatusOptimal Status = "Optimal"

	// StatusInfeasible means no assignment satisfies the constraints
	StatusInfeasible Status = "Infeasible"

	// StatusUnbounded means the objective is unbounded
	StatusUnbounded Status = "Unbounded"

	// StatusUndefined means the solver terminated without classifying
	StatusUndefined Status = "Undefined"
)

// Var is a handle to a model variable
type Var struct {
	idx int
}

// Term is one coefficient*variable entry of a linear expression
type Term struct {
	Var  Var
	Coef float64
}

// Expr is a linear expression over model variables
type Expr []Term

// Plus appends a term to the expression
func (e Expr) Plus(v Var, coef float64) Expr {
	return append(e, Term{Var: v, Coef: coef})
}

type varDef struct {
	name   string
	binary bool
	lb, ub float64
}

type constraint struct {
	expr Expr
	rel  Rel
	rhs  float64
}

// Model is a mixed binary/continuous linear program under construction
type Model struct {
	name        string
	vars        []varDef
	sense       Sense
	objective   Expr
	constraints []constraint
	maxNodes    int
}

// New creates an empty model
func New(name string) *Model {
	return &Model{name: name}
}

// Name returns the model name
func (m *Model) Name() string {
	return m.name
}

// Binary adds a 0/1 decision variable
func (m *Model) Binary(name string) Var {
	m.vars = append(m.vars, varDef{name: name, binary: true, lb: 0, ub: 1})
	return Var{idx: len(m.vars) - 1}
}

// Continuous adds a continuous variable with the given bounds.
// The lower bound must be finite; the upper bound may be math.Inf(1).
func (m *Model) Continuous(name string, lb, ub float64) Var {
	m.vars = append(m.vars, varDef{name: name, lb: lb, ub: ub})
	return Var{idx: len(m.vars) - 1}
}

// VarName returns the name a variable was declared with
func (m *Model) VarName(v Var) string {
	return m.vars[v.idx].name
}

// Minimize sets the objective to minimize the expression
func (m *Model) Minimize(e Expr) {
	m.sense = Minimize
	m.objective = e
}

// Maximize sets the objective to maximize the expression
func (m *Model) Maximize(e Expr) {
	m.sense = Maximize
	m.objective = e
}

// AddConstraint adds a linear constraint expr REL rhs
func (m *Model) AddConstraint(e Expr, rel Rel, rhs float64) {
	m.constraints = append(m.constraints, constraint{expr: e, rel: rel, rhs: rhs})
}

// SetMaxNodes caps the number of branch-and-bound nodes; 0 means unlimited
func (m *Model) SetMaxNodes(n int) {
	m.maxNodes = n
}

// Solution is the outcome of a solve
type Solution struct {
	// Status classifies the outcome; values are meaningful only for Optimal
	Status Status

	// Objective is the optimal objective value
	Objective float64

	values []float64
}

// Value returns the solved value of a variable
func (s Solution) Value(v Var) float64 {
	if s.values == nil || v.idx >= len(s.values) {
		return 0
	}
	return s.values[v.idx]
}

// Selected reports whether a binary variable is set, using a 0.5 cutoff
// to tolerate floating-point solver tolerance.
func (s Solution) Selected(v Var) bool {
	return s.Value(v) > 0.5
}

func round01(x float64) float64 {
	if x > 0.5 {
		return 1
	}
	return 0
}
