// Package balance implements the roster balancing engine: it splits a pool
// of tryout candidates into skill divisions and then into teams within each
// division, honoring captain placement, mutual pairing requests, gender
// targets and score parity.
//
// The engine is a greedy construction followed by bounded local-search
// rebalancing, not an exact solver. It is single-threaded, performs no I/O,
// and is deterministic for identical inputs: every component sorts with the
// single global (score, name) comparator.
package balance
