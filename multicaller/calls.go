package multicaller

// MulticallerCalls is an ordered sequence of opcodes, the unit the packer
// and the flash-encoding passes operate on.
type MulticallerCalls struct {
	Calls []*MulticallerCall
}

// NewCalls builds an empty opcode sequence.
func NewCalls() *MulticallerCalls {
	return &MulticallerCalls{}
}

// Add appends a call and returns the receiver, so calls can be chained:
// calls.Add(a).Add(b).
func (c *MulticallerCalls) Add(call *MulticallerCall) *MulticallerCalls {
	c.Calls = append(c.Calls, call)
	return c
}

// Insert prepends a call, used when a hop needs to splice a setup step
// (e.g. fetching an amount) ahead of opcodes that were already built.
func (c *MulticallerCalls) Insert(call *MulticallerCall) *MulticallerCalls {
	c.Calls = append([]*MulticallerCall{call}, c.Calls...)
	return c
}

// Len returns the number of opcodes in the sequence.
func (c *MulticallerCalls) Len() int {
	return len(c.Calls)
}

// Clone returns a sequence with the same opcodes in a fresh backing array,
// so appending to the clone never mutates the receiver (the encoder
// pipeline repeatedly branches a sequence to try several continuations).
func (c *MulticallerCalls) Clone() *MulticallerCalls {
	cloned := make([]*MulticallerCall, len(c.Calls))
	copy(cloned, c.Calls)
	return &MulticallerCalls{Calls: cloned}
}
