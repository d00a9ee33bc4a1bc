// Package network defines the immutable MFPC instance model and its textual
// format: a directed capacitated network with a designated source and sink,
// arcs addressed by a unique positive index, and unordered pairs of arcs that
// may not carry flow at the same time.
//
// # Data model
//
//	Node      - dense integer in [0, NumNodes); the file's indexing base
//	            (0 or 1) is converted at the parsing boundary.
//	Arc       - (Tail, Head, Capacity ≥ 0, Index > 0); Index is the only key,
//	            parallel arcs between the same endpoints are allowed.
//	Conflict  - {A, B} with A < B, stored once per unordered pair.
//	Instance  - nodes, ordered arcs, sorted conflicts, Source ≠ Sink.
//
// An Instance is built once (by New or by the parser) and never mutated:
// all accessors hand out copies.
//
// # File format
//
//	<num_nodes> <num_arcs> <num_conflicts>
//	<source>
//	<sink>
//	<tail> <head> <capacity> <arc_index> [<conflicting_arc_index> ...]
//
// Every trailing integer on an arc line names another arc in conflict with
// it; the reference may point forward in the file. Counts in the header are
// advisory unless WithStrictCounts is given.
//
// # Errors
//
//	*FormatError - malformed text; wraps one of the ErrXxx sentinels below
//	               and carries the 1-based line number of the offending line.
//	*IOError     - the file could not be opened or read.
//
// Conflicts that name an unknown arc, or the arc itself, are rejected:
// downstream addressing assumes every conflict resolves to two distinct arcs.
//
// # Reachability
//
// Distances runs a breadth-first search over arcs (forward from a node or
// backward towards it). The model builder uses it to discard arcs that lie on
// no source→sink walk; Stats uses it to report the s–t hop distance.
package network
