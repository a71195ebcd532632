// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gap

import (
	"github.com/biogo/biogo/seq"
)

// State is a state of the VULGAR exon/intron machine.
type State int

const (
	Start State = iota
	InExon
	InIntron
	End
)

var stateNames = []string{
	Start:    "Start",
	InExon:   "InExon",
	InIntron: "InIntron",
	End:      "End",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Range is a closed interval of reference coordinates with Start ≤ End.
type Range struct {
	Start, End int
}

// Transcript is the decomposition of a spliced alignment.
type Transcript struct {
	// Exons and Introns are held in alignment order,
	// which is descending on the minus strand.
	Exons   []Range
	Introns []Range

	// ExonBlocks[i] holds the blocks of Exons[i]. A nil
	// element indicates that the exon is ungapped.
	ExonBlocks [][]Block

	// CDS spans the exons. The zero Range means no CDS.
	CDS Range
}

// vulgar holds the state of a VULGAR conversion.
type vulgar struct {
	state State
	prev  byte

	// spliced is set when an exon ends in a split codon
	// whose remainder must start the next exon.
	spliced bool

	// gap is the boundary classified by the last G operation.
	gap Boundary

	ref, query cursor
	rs, qs     seq.Strand
	t          Transcript
}

// Exons returns the transcript described by a VULGAR alignment spanning
// ref and query.
func (c *Canonical) Exons(ref, query Span) (*Transcript, error) {
	if !c.Format.Grammar().TwoLengths {
		return nil, ErrWrongFormat
	}
	err := c.covers(ref, query)
	if err != nil {
		return nil, err
	}
	m := vulgar{
		state: Start,
		ref:   newCursor(ref),
		query: newCursor(query),
		rs:    ref.Strand,
		qs:    query.Strand,
	}
	for _, o := range c.Ops {
		err = m.step(o)
		if err != nil {
			return nil, err
		}
		m.prev = o.Op
	}
	err = m.finish()
	if err != nil {
		return nil, err
	}
	return &m.t, nil
}

// step dispatches o to the current state until a state consumes it.
func (m *vulgar) step(o Op) error {
	for {
		var (
			next     State
			consumed bool
			err      error
		)
		switch m.state {
		case Start:
			next, consumed, err = m.start(o)
		case InExon:
			next, consumed, err = m.exon(o)
		case InIntron:
			next, consumed, err = m.intron(o)
		default:
			err = m.bad(o)
		}
		if err != nil {
			return err
		}
		m.state = next
		if consumed {
			return nil
		}
	}
}

func (m *vulgar) bad(o Op) error {
	return &TransitionError{State: m.state, Prev: m.prev, Curr: o.Op}
}

func (m *vulgar) start(o Op) (State, bool, error) {
	if o.Op != 'M' || m.prev != 0 {
		return m.state, false, m.bad(o)
	}
	return InExon, false, nil
}

func (m *vulgar) exon(o Op) (State, bool, error) {
	switch o.Op {
	case 'M':
		switch m.prev {
		case 0, 'N':
			m.newExon(o, Edge)
		case '3':
			m.newExon(o, Intron)
		case 'S', 'F':
			m.growBlock(o)
		case 'G':
			m.newBlock(o, m.gap)
		default:
			return m.state, false, m.bad(o)
		}
	case 'G':
		if m.prev != 'M' {
			return m.state, false, m.bad(o)
		}
		if o.Len2 == 0 {
			m.gap = MatchAbutment
		} else {
			m.gap = Deletion
		}
		m.growExon(o)
	case 'F':
		if m.prev != 'M' {
			return m.state, false, m.bad(o)
		}
		m.growBlock(o)
	case 'S':
		switch m.prev {
		case 'M':
			m.growBlock(o)
			m.spliced = true
		case '3':
			if !m.spliced {
				return m.state, false, &SemanticError{State: m.state, Op: o.Op, Msg: "split codon without a preceding split codon"}
			}
			m.spliced = false
			m.newExon(o, Intron)
		default:
			return m.state, false, m.bad(o)
		}
	case '5':
		switch m.prev {
		case 'M', 'S', 'N':
			m.closeExon(Intron)
			return InIntron, false, nil
		}
		return m.state, false, m.bad(o)
	case 'N':
		if m.prev != 'M' {
			return m.state, false, m.bad(o)
		}
		m.closeExon(Edge)
		return InIntron, false, nil
	default:
		return m.state, false, m.bad(o)
	}
	return InExon, true, nil
}

func (m *vulgar) intron(o Op) (State, bool, error) {
	switch o.Op {
	case '5':
		switch m.prev {
		case 'M', 'S', 'N':
			m.newIntron(o)
		default:
			return m.state, false, m.bad(o)
		}
	case 'I':
		if m.prev != '5' {
			return m.state, false, m.bad(o)
		}
		m.growIntron(o)
	case '3':
		if m.prev != 'I' {
			return m.state, false, m.bad(o)
		}
		m.growIntron(o)
	case 'N':
		if m.prev != 'M' {
			return m.state, false, m.bad(o)
		}
		m.newIntron(o)
	case 'M', 'S':
		return InExon, false, nil
	default:
		return m.state, false, m.bad(o)
	}
	return InIntron, true, nil
}

// finish checks the terminal condition and completes the transcript.
func (m *vulgar) finish() error {
	if m.state != InExon || m.prev != 'M' {
		return &SemanticError{State: m.state, Op: m.prev, Msg: "alignment does not end in a match"}
	}
	m.collapse()
	for i, e := range m.t.Exons {
		if i == 0 || e.Start < m.t.CDS.Start {
			m.t.CDS.Start = e.Start
		}
		if i == 0 || e.End > m.t.CDS.End {
			m.t.CDS.End = e.End
		}
	}
	m.state = End
	return nil
}

func (m *vulgar) newExon(o Op, b Boundary) {
	var e Range
	e.Start, e.End = m.ref.take(0)
	m.t.Exons = append(m.t.Exons, e)
	m.t.ExonBlocks = append(m.t.ExonBlocks, nil)
	m.newBlock(o, b)
}

// newBlock starts a block in the current exon, extending the exon by the
// reference length of o.
func (m *vulgar) newBlock(o Op, b Boundary) {
	i := len(m.t.Exons) - 1
	e := &m.t.Exons[i]
	m.growRange(&e.Start, &e.End, o.Len2)
	blk := Block{
		RefStrand:     m.rs,
		QueryStrand:   m.qs,
		StartBoundary: b,
		EndBoundary:   Edge,
	}
	blk.T1, blk.T2 = m.ref.take(o.Len2)
	blk.Q1, blk.Q2 = m.query.take(o.Len)
	blocks := m.t.ExonBlocks[i]
	if n := len(blocks); n != 0 {
		blocks[n-1].EndBoundary = b
	}
	m.t.ExonBlocks[i] = append(blocks, blk)
}

// growBlock extends the current exon and its last block by o.
func (m *vulgar) growBlock(o Op) {
	i := len(m.t.Exons) - 1
	blocks := m.t.ExonBlocks[i]
	b := &blocks[len(blocks)-1]
	e := &m.t.Exons[i]
	m.growRange(&e.Start, &e.End, o.Len2)
	m.ref.grow(&b.T1, &b.T2, o.Len2)
	m.query.grow(&b.Q1, &b.Q2, o.Len)
}

// growExon extends the current exon by o without extending its blocks.
func (m *vulgar) growExon(o Op) {
	e := &m.t.Exons[len(m.t.Exons)-1]
	m.ref.grow(&e.Start, &e.End, o.Len2)
	m.query.skip(o.Len)
}

// growRange extends [*lo, *hi] by n positions in the reference direction
// without moving the reference cursor.
func (m *vulgar) growRange(lo, hi *int, n int) {
	if m.ref.step > 0 {
		*hi += n
	} else {
		*lo -= n
	}
}

// closeExon ends the current exon, collapsing a single block to the
// ungapped representation.
func (m *vulgar) closeExon(b Boundary) {
	blocks := m.t.ExonBlocks[len(m.t.ExonBlocks)-1]
	if n := len(blocks); n != 0 {
		blocks[n-1].EndBoundary = b
	}
	m.collapse()
}

func (m *vulgar) collapse() {
	i := len(m.t.ExonBlocks) - 1
	if i >= 0 && len(m.t.ExonBlocks[i]) == 1 {
		m.t.ExonBlocks[i] = nil
	}
}

func (m *vulgar) newIntron(o Op) {
	var r Range
	r.Start, r.End = m.ref.take(o.Len2)
	m.query.skip(o.Len)
	m.t.Introns = append(m.t.Introns, r)
}

func (m *vulgar) growIntron(o Op) {
	r := &m.t.Introns[len(m.t.Introns)-1]
	m.ref.grow(&r.Start, &r.End, o.Len2)
	m.query.skip(o.Len)
}

// StringToExons parses the VULGAR alignment string s and returns the
// transcript it describes. The alignment covers ref on the reference and
// query on the query.
func StringToExons(f Format, ref, query Span, s string) (*Transcript, error) {
	if !f.Grammar().TwoLengths {
		return nil, &ParseError{Format: f, Input: s, Err: ErrWrongFormat}
	}
	c, err := Canonicalize(f, s)
	if err != nil {
		return nil, &ParseError{Format: f, Input: s, Err: err}
	}
	t, err := c.Exons(ref, query)
	if err != nil {
		return nil, &ParseError{Format: f, Input: s, Err: err}
	}
	return t, nil
}
