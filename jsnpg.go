// Package jsnpg is an event-driven JSON parser and generator.
//
// A single flat event alphabet (null, true, false, integer, real, string,
// key, start/end array, start/end object) is produced by the parser and
// consumed by the generator, in push (callback) or pull (one event per
// call) mode on the parse side, and via an emitter, an in-memory event
// log, or user callbacks on the generate side.
package jsnpg

// MaxNestingDefault is the default nesting depth enforced by the
// bit-stack, and the ceiling MaxNesting is clamped to when a caller asks
// for more. A MaxNesting of 0 means "use the default".
const MaxNestingDefault = 1024

// Debug gates the generator's mirror bit-stack / key-alternation
// invariant checking. It defaults to true. Production embedders that
// have already validated their event stream may set it to false to skip
// the extra bookkeeping.
var Debug = true
