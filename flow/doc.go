// Package flow computes classical maximum flows on a network.Instance,
// ignoring conflict pairs. MFPC uses it three ways:
//
//   - as a relaxation: the classical max-flow value bounds the conflict-
//     constrained optimum from above (conflicts only remove flows);
//   - as an oracle: with no conflicts both problems coincide;
//   - as the engine of the conflict-repair warm start, which re-solves with
//     some arcs excluded until no conflict pair is violated.
//
// The key algorithms offered are:
//
//   - Edmonds–Karp
//
//   - Method: breadth-first search for shortest augmenting paths.
//
//   - Time:   O(V · E²).
//
//   - Memory: O(V + E) for the residual arrays and BFS queue.
//
//   - Dinic
//
//   - Method: level graph + blocking flow by depth-first search.
//
//   - Time:   O(V² · E) in general; O(E · √V) on unit-capacity networks.
//
//   - Memory: O(V + E) for levels, per-node iterators and recursion.
//
// # Residual network
//
// Every usable arc (positive capacity, not excluded, not a self-loop) becomes
// a forward residual edge paired with a reverse edge of capacity zero, so
// parallel arcs stay distinct and the flow of each arc is read back by its
// index: flow(a) = capacity(a) − residual(forward edge of a).
//
// # Options
//
//	WithContext(ctx)        - cancellation / deadline, checked once per phase
//	WithExcluded(idx...)    - arcs forced to carry no flow
//	WithLogger(l)           - debug line per augmentation
//
// # Errors
//
//	ErrNilInstance          - inst == nil
//	context.Canceled / context.DeadlineExceeded - from the supplied context
package flow
