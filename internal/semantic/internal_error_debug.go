//go:build stdebug

package semantic

// stdebugPropagatesPanics is true under the stdebug build tag: Analyze
// re-panics instead of recovering, so a debugger or test run sees the
// original stack trace for an internal invariant violation.
const stdebugPropagatesPanics = true
