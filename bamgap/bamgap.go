// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bamgap converts between SAM/BAM alignment records and gapped
// alignment blocks.
package bamgap

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/biogo/biogo/seq"
	"github.com/biogo/hts/sam"

	"github.com/biogo/align/gap"
)

var (
	ErrUnmapped = errors.New("bamgap: record is not mapped")
	ErrBack     = errors.New("bamgap: CIGAR back operation not supported")
)

// Spans returns the reference and query extents of the alignment described
// by r. The reference is always on the plus strand. Query coordinates are
// positions in the read as sequenced, so reads mapped to the reverse strand
// have a minus strand query span.
func Spans(r *sam.Record) (ref, query gap.Span, err error) {
	if r.Flags&sam.Unmapped != 0 || r.Ref == nil || r.Pos < 0 || len(r.Cigar) == 0 {
		return ref, query, ErrUnmapped
	}
	refLen, readLen := r.Cigar.Lengths()

	var clip, aligned int
	for i, co := range r.Cigar {
		switch co.Type() {
		case sam.CigarSoftClipped:
			if i == 0 || (i == 1 && r.Cigar[0].Type() == sam.CigarHardClipped) {
				clip += co.Len()
			}
		case sam.CigarMatch, sam.CigarInsertion, sam.CigarEqual, sam.CigarMismatch:
			aligned += co.Len()
		case sam.CigarBack:
			return ref, query, ErrBack
		}
	}
	if aligned == 0 || refLen == 0 {
		return ref, query, ErrUnmapped
	}

	ref = gap.Span{Strand: seq.Plus, Start: r.Pos + 1, End: r.Pos + refLen}
	query = gap.Span{Strand: seq.Plus, Start: clip + 1, End: clip + aligned}
	if r.Flags&sam.Reverse != 0 {
		query = gap.Span{
			Strand: seq.Minus,
			Start:  readLen - query.End + 1,
			End:    readLen - query.Start + 1,
		}
	}
	return ref, query, nil
}

// CigarText returns c written as BAM-CIGAR text holding only the operations
// that describe the aligned region. Clipping and padding are dropped and
// sequence matches are written as matches.
func CigarText(c sam.Cigar) (string, error) {
	var buf bytes.Buffer
	for _, co := range c {
		switch co.Type() {
		case sam.CigarSoftClipped, sam.CigarHardClipped, sam.CigarPadded:
		case sam.CigarEqual:
			fmt.Fprintf(&buf, "%dM", co.Len())
		case sam.CigarBack:
			return "", ErrBack
		default:
			fmt.Fprint(&buf, co)
		}
	}
	return buf.String(), nil
}

// Blocks returns the extents and gapped alignment blocks of r. A nil
// blocks with a nil error means that the alignment is ungapped.
func Blocks(r *sam.Record) (ref, query gap.Span, blocks []gap.Block, err error) {
	ref, query, err = Spans(r)
	if err != nil {
		return ref, query, nil, err
	}
	text, err := CigarText(r.Cigar)
	if err != nil {
		return ref, query, nil, err
	}
	blocks, err = gap.StringToBlocks(gap.BAMCIGAR, ref, query, text)
	return ref, query, blocks, err
}

// Cigar returns the CIGAR describing blocks, an alignment covering ref and
// query.
func Cigar(ref, query gap.Span, blocks []gap.Block) (sam.Cigar, error) {
	text, err := gap.BlocksToString(gap.BAMCIGAR, ref, query, blocks)
	if err != nil {
		return nil, err
	}
	return sam.ParseCigar([]byte(text))
}
