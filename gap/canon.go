// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gap

// Canonicalize applies the operator substitutions of c's format and then
// removes operators that are not legal in the format. It returns the number
// of operators removed.
func (c *Canonical) Canonicalize() (removed int) {
	if !c.Format.valid() {
		panic("gap: canonicalize with invalid format")
	}
	sub := &substitute[c.Format]
	ops := c.Ops[:0]
	for _, o := range c.Ops {
		o.Op = sub[o.Op]
		if !legal[c.Format][o.Op] {
			removed++
			continue
		}
		ops = append(ops, o)
	}
	c.Ops = ops
	return removed
}

// Validate checks the invariants of a canonical list: it must be non-empty,
// start and end with a match and hold an odd number of operators. The
// returned error is a *StructuralError.
//
// The end operators are checked before parity, so Validate only returns
// EvenOperators for a list that starts and ends with a match. An even
// list with a bad end, such as Ensembl "10M5D", is reported as
// BadLastOperator and is not tolerated by the string conversion functions.
func (c *Canonical) Validate() error {
	n := len(c.Ops)
	switch {
	case n == 0:
		return &StructuralError{Kind: NoOperators}
	case c.Ops[0].Op != 'M':
		return &StructuralError{Kind: BadFirstOperator, Detail: opName(c.Ops[0].Op)}
	case c.Ops[n-1].Op != 'M':
		return &StructuralError{Kind: BadLastOperator, Detail: opName(c.Ops[n-1].Op)}
	case n%2 == 0:
		return &StructuralError{Kind: EvenOperators}
	}
	return nil
}

// Canonicalize parses s as format f, canonicalizes and validates the
// result. An even operator count is reported to Logger and otherwise
// ignored.
func Canonicalize(f Format, s string) (*Canonical, error) {
	c, err := Parse(f, s)
	if err != nil {
		return nil, err
	}
	c.Canonicalize()
	err = c.Validate()
	if err != nil {
		if !tolerated(err) {
			return nil, err
		}
		logf("warning: %v in %v string %q", err, f, s)
	}
	return c, nil
}
