// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gap

import (
	"bytes"
	"fmt"
	"strconv"
)

// Op is a single alignment operation. Len is the primary length of the
// operation. Len2 is only used by two-length formats; for VULGAR, Len is
// the query length and Len2 is the reference length as written by
// Exonerate.
type Op struct {
	Op   byte
	Len  int
	Len2 int
}

// String returns a format-neutral representation of the operation.
func (o Op) String() string {
	if o.Len2 != 0 {
		return fmt.Sprintf("%c(%d,%d)", o.Op, o.Len, o.Len2)
	}
	return fmt.Sprintf("%c(%d)", o.Op, o.Len)
}

// Canonical is a tokenized alignment string.
type Canonical struct {
	Format Format
	Ops    []Op
}

// String returns the alignment string for c written in c's format. No
// validity checks are performed.
func (c *Canonical) String() string {
	g := c.Format.Grammar()
	sep := opSpaced[c.Format]
	var b bytes.Buffer
	for i, o := range c.Ops {
		if i != 0 && g.Spaced {
			b.WriteByte(' ')
		}
		if g.DigitsFirst {
			writeLengths(&b, g, o)
			if sep {
				b.WriteByte(' ')
			}
			b.WriteByte(o.Op)
			continue
		}
		b.WriteByte(o.Op)
		if sep {
			b.WriteByte(' ')
		}
		writeLengths(&b, g, o)
	}
	return b.String()
}

func writeLengths(b *bytes.Buffer, g Grammar, o Op) {
	b.WriteString(strconv.Itoa(o.Len))
	if g.TwoLengths {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(o.Len2))
	}
}

// lengths returns the total reference and query extents of the operations.
func (c *Canonical) lengths() (ref, query int) {
	if c.Format.Grammar().TwoLengths {
		for _, o := range c.Ops {
			query += o.Len
			ref += o.Len2
		}
		return ref, query
	}
	for _, o := range c.Ops {
		switch o.Op {
		case 'M':
			ref += o.Len
			query += o.Len
		case 'D', 'N':
			ref += o.Len
		case 'I':
			query += o.Len
		}
	}
	return ref, query
}

// covers checks that the operations exactly span the given reference
// and query extents.
func (c *Canonical) covers(ref, query Span) error {
	r, q := c.lengths()
	if r != ref.Len() || q != query.Len() {
		return &StructuralError{
			Kind:   CoverageMismatch,
			Detail: fmt.Sprintf("ref %d/%d query %d/%d", r, ref.Len(), q, query.Len()),
		}
	}
	return nil
}
