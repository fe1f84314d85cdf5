package ast

import "sync/atomic"

// NodeID uniquely identifies an AstNode within a compilation session.
// Zero is reserved to mean "undefined".
type NodeID uint64

// UndefinedID is the sentinel returned before a node has been assigned an ID.
const UndefinedID NodeID = 0

// IdProvider hands out monotonically increasing node IDs. Clones share the
// same underlying counter, so parallel or nested traversals that clone a
// provider can mint IDs without coordinating with each other.
type IdProvider struct {
	counter *atomic.Uint64
}

// NewIdProvider creates a fresh provider whose next ID is 1.
func NewIdProvider() *IdProvider {
	c := &atomic.Uint64{}
	c.Store(0)
	return &IdProvider{counter: c}
}

// NextID returns the next monotonically increasing ID, starting at 1.
func (p *IdProvider) NextID() NodeID {
	return NodeID(p.counter.Add(1))
}

// Clone returns a new IdProvider that mints IDs from the same counter.
func (p *IdProvider) Clone() *IdProvider {
	return &IdProvider{counter: p.counter}
}
