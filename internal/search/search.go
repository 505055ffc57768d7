// Package search provides a small set of generic state-space search
// algorithms (A*, IDA*, breadth-first, depth-first). The macro-move
// generator uses it for the player's pushing-side reachability
// sub-search; it knows nothing about Sokoban itself.
package search

import (
	"math"
)

// Context carries solver-wide, read-only data into every State method
// call. Custom is typically a pointer to board geometry or similar
// data that is expensive to recompute per-state.
type Context struct {
	Custom interface{}
}

// State represents one node of the problem being searched. Implementations
// tell the algorithm how to get from one state to another, how expensive
// that is, and whether a state is a goal.
type State interface {
	// Cost to reach this state from the root.
	Cost(ctx Context) float64

	// IsGoal reports whether this state satisfies the search's goal test.
	IsGoal(ctx Context) bool

	// Expand returns the zero or more child states reachable from this one.
	Expand(ctx Context) []State

	// Heuristic estimates the remaining cost to a goal. An admissible
	// heuristic (never overestimating) keeps A*/IDA* optimal. Return 0
	// for uninformed search.
	Heuristic(ctx Context) float64

	// Id identifies this state for constraint bookkeeping (cheapest-path
	// dedup, loop detection). States that are indistinguishable for
	// search purposes must return equal Ids.
	Id() interface{}
}

// Result of a search.
type Result struct {
	// Solution lists the states from root to goal, inclusive. Empty if
	// no solution was found.
	Solution []State
	// Visited is the number of nodes dequeued.
	Visited int
	// Expanded is the number of nodes enqueued.
	Expanded int
}

// Solved reports whether Result carries a solution.
func (r Result) Solved() bool {
	return len(r.Solution) > 0
}

// GoalState returns the final state of the solution, or nil if unsolved.
func (r Result) GoalState() State {
	if !r.Solved() {
		return nil
	}
	return r.Solution[len(r.Solution)-1]
}

type node struct {
	parent *node
	state  State
	value  float64
}

type result struct {
	node     *node
	contour  float64
	visited  int
	expanded int

	next *func() result
}

// generalSearch drains queue until a goal with value > ubound is found or
// the queue empties. ubound lets IDA* skip goals already returned by a
// previous call when the caller wants successive solutions.
func generalSearch(queue strategy, visited, expanded int, constr iconstraint, ubound, limit, contour float64, ctx Context) result {
	for {
		n := queue.Take()
		if n == nil {
			return result{nil, contour, visited, expanded, nil}
		}
		visited++
		if constr.onVisit(n) {
			continue
		}
		if n.state.IsGoal(ctx) && n.value > ubound {
			next := func() result {
				return generalSearch(queue, visited, expanded, constr, ubound, limit, contour, ctx)
			}
			return result{n, contour, visited, expanded, &next}
		}
		for _, child := range n.state.Expand(ctx) {
			childNode := &node{n, child, math.Max(n.value, child.Cost(ctx)+child.Heuristic(ctx))}
			if constr.onExpand(childNode) {
				continue
			}
			if childNode.value > limit {
				contour = math.Min(contour, childNode.value)
				continue
			}
			queue.Add(childNode)
			expanded++
		}
	}
}

func idaStar(rootState State, constraint iconstraint, contour, ubound, limit float64, ctx Context, nextfn *func() result) result {
	visited := 0
	expanded := 0
	for {
		var lastResult result
		if nextfn != nil {
			fn := *nextfn
			nextfn = nil
			lastResult = fn()
		} else {
			s := depthFirst()
			s.Add(&node{nil, rootState, rootState.Cost(ctx) + rootState.Heuristic(ctx)})
			constraint.reset()
			lastResult = generalSearch(s, visited, expanded, constraint, ubound, contour, math.Inf(1), ctx)
		}
		if lastResult.node != nil {
			underlying := lastResult.next
			nextIdaStarFn := func() result {
				return idaStar(rootState, constraint, contour, ubound, limit, ctx, underlying)
			}
			lastResult.next = &nextIdaStarFn
			return lastResult
		}
		if lastResult.contour > limit || math.IsInf(lastResult.contour, 1) || math.IsNaN(lastResult.contour) {
			lastResult.next = nil
			return lastResult
		}
		lastResult.next = nil
		ubound = contour
		visited = lastResult.visited
		expanded = lastResult.expanded
		contour = lastResult.contour
	}
}

func toSlice(n *node) []State {
	if n == nil {
		return make([]State, 0)
	}
	return append(toSlice(n.parent), n.state)
}

func toResult(r *result) Result {
	return Result{toSlice(r.node), r.visited, r.expanded}
}

type solver struct {
	rootState  State
	algorithm  Algorithm
	constraint Constraint
	limit      float64
	context    interface{}

	started bool
	result  *result
}

func solve(s *solver) Result {
	if s.started {
		if s.result.next == nil {
			return Result{[]State{}, s.result.visited, s.result.expanded}
		}
		nextResult := (*s.result.next)()
		s.result = &nextResult
		return toResult(s.result)
	}
	s.started = true
	ctx := Context{s.context}
	constraint := s.constraint.(iconstraint)
	if s.algorithm == IDAstar {
		nextResult := idaStar(s.rootState, constraint, 0.0, -1.0, s.limit, ctx, nil)
		s.result = &nextResult
		return toResult(s.result)
	}
	var strat strategy
	switch s.algorithm {
	case Astar:
		strat = aStar()
	case DepthFirst:
		strat = depthFirst()
	case BreadthFirst:
		strat = breadthFirst()
	}
	strat.Add(&node{nil, s.rootState, s.rootState.Cost(ctx) + s.rootState.Heuristic(ctx)})

	constraint.reset()
	nextResult := generalSearch(strat, 0, 0, constraint, -1.0, s.limit, math.Inf(1), ctx)
	s.result = &nextResult
	return toResult(s.result)
}

// Solver drives a search to completion. Repeated calls to Solve on the
// same Solver continue enumerating further solutions where supported
// (IDA*, and any strategy given an appropriately non-terminating
// constraint); once exhausted it returns an unsolved Result forever.
type Solver interface {
	// Algorithm selects the search strategy; defaults to Astar.
	Algorithm(algorithm Algorithm) Solver

	// Constraint bounds or deduplicates the search; defaults to NoConstraint().
	Constraint(constraint Constraint) Solver

	// Limit caps the f-value (cost+heuristic) a node may have to be
	// expanded. Defaults to +Inf.
	Limit(limit float64) Solver

	// Context attaches arbitrary read-only data passed to every State
	// method call.
	Context(context interface{}) Solver

	// Solve runs (or resumes) the search and returns the next result.
	Solve() Result
}

func (s *solver) Algorithm(algorithm Algorithm) Solver {
	s.algorithm = algorithm
	return s
}

func (s *solver) Constraint(constraint Constraint) Solver {
	s.constraint = constraint
	return s
}

func (s *solver) Limit(limit float64) Solver {
	s.limit = limit
	return s
}

func (s *solver) Context(context interface{}) Solver {
	s.context = context
	return s
}

func (s *solver) Solve() Result {
	return solve(s)
}

// NewSolver creates a Solver rooted at rootState.
func NewSolver(rootState State) Solver {
	return &solver{rootState, Astar, NoConstraint(), math.Inf(1), nil, false, nil}
}
