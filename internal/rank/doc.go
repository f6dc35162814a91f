// Package rank assigns tie-aware display ranks to leaderboard entries.
//
// Ranking is dense: equal scores share a rank, and the next distinct score
// takes the next integer (no 1-2-2-4 gaps). Assign is a pure function of
// its input — no I/O, no clock — so the same entry list always produces
// the same ranked rows.
package rank
