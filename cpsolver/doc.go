// Package cpsolver is a pure-Go backend for cpmodel models.
//
// The engine is a depth-first branch-and-bound over variable domains:
//
//  1. Bounds propagation. Every variable keeps an interval [lo, hi]. Linear
//     constraints tighten the bounds of their terms from the min/max
//     activity of the others until nothing changes. A constraint whose
//     linear part can no longer hold falsifies its last unfixed enforcement
//     literal. Clauses propagate units.
//  2. Branching. Unfixed booleans first (lowest index), then integers.
//     A hinted value is tried first; without a hint booleans try 1 and
//     integers try their upper bound, then the remaining interval.
//  3. Bounding. After every incumbent the objective is cut to be strictly
//     better, so the search proves optimality by exhausting the tree.
//  4. Backtracking. Bound changes are recorded on a trail and undone to a
//     mark on return from a branch.
//  5. Budget. Time limit, context and node limit are checked every
//     CheckEvery nodes. A stopped search returns its incumbent as Feasible.
//
// Complexity:
//   - Exponential in the number of variables in the worst case.
//   - Per node: propagation to a fixed point, O(Σ|terms|) per pass.
//   - Memory: O(model) plus the trail, bounded by the number of bound changes
//     on the current path.
package cpsolver
