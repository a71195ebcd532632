// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gap

import (
	"github.com/biogo/biogo/seq"
)

// Span is the extent of an alignment on one sequence. Start and End are
// one-based and inclusive. On the minus strand the alignment is read from
// the higher coordinate toward the lower one.
type Span struct {
	Strand     seq.Strand
	Start, End int
}

// Len returns the number of positions covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return s.Start - s.End + 1
	}
	return s.End - s.Start + 1
}

// Boundary describes what lies between a block and its neighbour on the
// reference.
type Boundary int

const (
	Edge          Boundary = iota // End of the alignment.
	Intron                        // An intron or reference skip.
	Deletion                      // A deletion from the reference.
	MatchAbutment                 // The neighbouring block abuts on the reference.
)

var boundaryNames = []string{
	Edge:          "edge",
	Intron:        "intron",
	Deletion:      "deletion",
	MatchAbutment: "match",
}

func (b Boundary) String() string {
	if b < 0 || int(b) >= len(boundaryNames) {
		return "unknown"
	}
	return boundaryNames[b]
}

// Block is an ungapped matched region of an alignment. T1 ≤ T2 and
// Q1 ≤ Q2 regardless of strand.
type Block struct {
	T1, T2 int
	Q1, Q2 int

	RefStrand   seq.Strand
	QueryStrand seq.Strand

	StartBoundary Boundary
	EndBoundary   Boundary
}

// cursor walks one axis of an alignment in the direction of its strand.
type cursor struct {
	pos  int
	step int
}

func newCursor(s Span) cursor {
	lo, hi := s.Start, s.End
	if hi < lo {
		lo, hi = hi, lo
	}
	if s.Strand == seq.Minus {
		return cursor{pos: hi, step: -1}
	}
	return cursor{pos: lo, step: 1}
}

// take returns the interval holding the next n positions and advances
// past them. For n == 0 the interval is empty and lies at the cursor.
func (c *cursor) take(n int) (lo, hi int) {
	if c.step > 0 {
		lo, hi = c.pos, c.pos+n-1
	} else {
		lo, hi = c.pos-n+1, c.pos
	}
	c.pos += c.step * n
	return lo, hi
}

// grow extends the interval [*lo, *hi] that ends at the cursor by the
// next n positions.
func (c *cursor) grow(lo, hi *int, n int) {
	if c.step > 0 {
		*hi += n
	} else {
		*lo -= n
	}
	c.pos += c.step * n
}

func (c *cursor) skip(n int) { c.pos += c.step * n }

// Blocks returns the matched blocks of a CIGAR-family alignment spanning
// ref and query. If the alignment is a single block, Blocks returns nil.
func (c *Canonical) Blocks(ref, query Span) ([]Block, error) {
	if c.Format.Grammar().TwoLengths {
		return nil, ErrWrongFormat
	}
	err := c.covers(ref, query)
	if err != nil {
		return nil, err
	}

	var (
		blocks  []Block
		pending = Edge

		rc = newCursor(ref)
		qc = newCursor(query)
	)
	for _, o := range c.Ops {
		switch o.Op {
		case 'N':
			rc.skip(o.Len)
			pending = Intron
		case 'D':
			rc.skip(o.Len)
			pending = Deletion
		case 'I':
			qc.skip(o.Len)
			pending = MatchAbutment
		case 'M':
			b := Block{
				RefStrand:     ref.Strand,
				QueryStrand:   query.Strand,
				StartBoundary: pending,
				EndBoundary:   Edge,
			}
			b.T1, b.T2 = rc.take(o.Len)
			b.Q1, b.Q2 = qc.take(o.Len)
			if n := len(blocks); n != 0 {
				blocks[n-1].EndBoundary = pending
			}
			blocks = append(blocks, b)
			pending = MatchAbutment
		default:
			logf("ignoring unexpected operator %v in %v alignment", o, c.Format)
		}
	}
	if len(blocks) == 1 {
		return nil, nil
	}
	return blocks, nil
}

// StringToBlocks parses the CIGAR-family alignment string s and returns
// its matched blocks. The alignment covers ref on the reference and query
// on the query. A nil slice and nil error mean the alignment is ungapped.
func StringToBlocks(f Format, ref, query Span, s string) ([]Block, error) {
	if f.Grammar().TwoLengths {
		return nil, &ParseError{Format: f, Input: s, Err: ErrWrongFormat}
	}
	c, err := Canonicalize(f, s)
	if err != nil {
		return nil, &ParseError{Format: f, Input: s, Err: err}
	}
	blocks, err := c.Blocks(ref, query)
	if err != nil {
		return nil, &ParseError{Format: f, Input: s, Err: err}
	}
	return blocks, nil
}
