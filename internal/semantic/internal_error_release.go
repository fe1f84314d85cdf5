//go:build !stdebug

package semantic

// stdebugPropagatesPanics is false in ordinary builds: Analyze recovers an
// internal invariant panic and reports it as diagnostic E000 instead of
// crashing the caller.
const stdebugPropagatesPanics = false
