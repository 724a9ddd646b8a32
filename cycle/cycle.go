// Package cycle tracks slots of a fixed ring, such as the images of a
// swapchain, that are taken, waited on and returned in cyclic order.
package cycle

import "fmt"

// R is a total cyclic order over n slots. Slots from Left up to Right are
// held; the slot at Left is the oldest and the only one that may be waited
// on or returned.
type R struct {
	l, r   int  // oldest held; next to take
	held   int  // disambiguates l == r
	n      int  // ring length
	waited bool // slot l waited on
}

// New returns an empty ring of n slots.
func New(n int) (*R, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cycle: ring length %v must be positive", n)
	}
	return &R{n: n}, nil
}

// Len returns the ring length.
func (r *R) Len() int { return r.n }

// Held returns the number of slots taken and not yet returned.
func (r *R) Held() int { return r.held }

// Left returns the oldest held slot. It is meaningful only if Held > 0.
func (r *R) Left() int { return r.l }

// Right returns the slot Take hands out next.
func (r *R) Right() int { return r.r }

// Waited reports whether the oldest held slot has been waited on.
func (r *R) Waited() bool { return r.waited }

// Take holds and returns the next slot. It fails if every slot is held.
func (r *R) Take() (int, error) {
	if r.held == r.n {
		return 0, fmt.Errorf("cycle: all %v slots held", r.n)
	}
	i := r.r
	r.r = pmod(r.r+1, r.n)
	r.held++
	return i, nil
}

// Wait marks the oldest held slot as waited on. It fails if nothing is
// held or a waited slot has not been returned.
func (r *R) Wait() (int, error) {
	switch {
	case r.held == 0:
		return 0, fmt.Errorf("cycle: wait with no slot held")
	case r.waited:
		return 0, fmt.Errorf("cycle: slot %v already waited", r.l)
	}
	r.waited = true
	return r.l, nil
}

// Return releases the oldest held slot, which must have been waited on.
func (r *R) Return() (int, error) {
	if !r.waited {
		return 0, fmt.Errorf("cycle: return before wait")
	}
	i := r.l
	r.l = pmod(r.l+1, r.n)
	r.held--
	r.waited = false
	return i, nil
}

// Do calls fn for each held slot from oldest to newest.
func (r *R) Do(fn func(i int)) {
	for k, i := 0, r.l; k < r.held; k, i = k+1, pmod(i+1, r.n) {
		fn(i)
	}
}

// pmod returns positive modulo for inputs.
func pmod(x, n int) int { return (x%n + n) % n }
