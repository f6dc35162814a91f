// Package pipeline runs one fetch → rank → render → dispatch cycle.
//
// Either a complete table is dispatched or nothing is: a source or render
// failure aborts the run before any POST. Each run is stateless — nothing
// carries over between invocations except the published snapshot on the
// board.
package pipeline
