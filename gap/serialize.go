// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gap

import (
	"fmt"

	"github.com/biogo/biogo/seq"
)

// BlocksToString returns the alignment string in format f describing
// blocks, an alignment covering ref and query. A nil blocks is written as
// a single match spanning ref.
//
// VULGAR strings cannot be synthesized from blocks.
func BlocksToString(f Format, ref, query Span, blocks []Block) (string, error) {
	c, err := FromBlocks(f, ref, query, blocks)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// FromBlocks returns the canonical operator list in format f describing
// blocks. Gaps on the reference become deletions, or skips when the format
// allows them and the boundary is an intron, and gaps on the query become
// insertions. When both axes have a gap between two blocks the reference
// gap is written first, so "10M5I5D10M" is written back as "10M5D5I10M".
func FromBlocks(f Format, ref, query Span, blocks []Block) (*Canonical, error) {
	if f.Grammar().TwoLengths {
		return nil, &SerializeError{Format: f, Msg: "cannot synthesize operations from blocks"}
	}
	c := &Canonical{Format: f}
	if len(blocks) == 0 {
		if ref.Len() != query.Len() {
			return nil, &SerializeError{Format: f, Msg: fmt.Sprintf("ungapped extents differ: ref %d query %d", ref.Len(), query.Len())}
		}
		c.Ops = []Op{{Op: 'M', Len: ref.Len()}}
		return c, nil
	}

	skip := byte('D')
	if f.IsLegal('N') {
		skip = 'N'
	}
	for i, b := range blocks {
		tl, ql := b.T2-b.T1+1, b.Q2-b.Q1+1
		if tl != ql || tl < 1 {
			return nil, &SerializeError{Format: f, Msg: fmt.Sprintf("block %d has unequal extents: ref %d query %d", i, tl, ql)}
		}
		if i != 0 {
			p := blocks[i-1]
			dt := between(ref.Strand, p.T1, p.T2, b.T1, b.T2)
			dq := between(query.Strand, p.Q1, p.Q2, b.Q1, b.Q2)
			if dt < 0 || dq < 0 {
				return nil, &SerializeError{Format: f, Msg: fmt.Sprintf("block %d overlaps or precedes block %d", i, i-1)}
			}
			if dt != 0 {
				op := byte('D')
				if b.StartBoundary == Intron {
					op = skip
				}
				c.Ops = append(c.Ops, Op{Op: op, Len: dt})
			}
			if dq != 0 {
				c.Ops = append(c.Ops, Op{Op: 'I', Len: dq})
			}
		}
		c.Ops = append(c.Ops, Op{Op: 'M', Len: tl})
	}

	// The substitution tables are involutions on M, I, D and N,
	// so applying them converts back to the format's polarity.
	sub := &substitute[f]
	for i := range c.Ops {
		c.Ops[i].Op = sub[c.Ops[i].Op]
	}
	return c, nil
}

// between returns the number of positions separating the interval
// [lo2, hi2] from the preceding interval [lo1, hi1] in the direction of
// the strand.
func between(s seq.Strand, lo1, hi1, lo2, hi2 int) int {
	if s == seq.Minus {
		return lo1 - hi2 - 1
	}
	return lo2 - hi1 - 1
}
