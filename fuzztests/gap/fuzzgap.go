// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fuzzgap

import (
	"github.com/biogo/biogo/seq"

	"github.com/biogo/align/gap"
)

var formats = []gap.Format{
	gap.ExonerateCIGAR,
	gap.EnsemblCIGAR,
	gap.BAMCIGAR,
	gap.GFF3Gap,
	gap.ExonerateVULGAR,
}

func Fuzz(data []byte) int {
	s := string(data)
	interesting := 0
	for _, f := range formats {
		c, err := gap.Parse(f, s)
		if err != nil {
			continue
		}
		interesting = 1
		c.Canonicalize()
		ref, query := spans(c)
		if f == gap.ExonerateVULGAR {
			gap.StringToExons(f, ref, query, s)
			continue
		}
		blocks, err := gap.StringToBlocks(f, ref, query, s)
		if err != nil {
			continue
		}
		if _, err := gap.BlocksToString(f, ref, query, blocks); err != nil && blocks != nil {
			panic(err)
		}
	}
	return interesting
}

// spans returns plus strand spans that exactly cover c.
func spans(c *gap.Canonical) (ref, query gap.Span) {
	var r, q int
	two := c.Format.Grammar().TwoLengths
	for _, o := range c.Ops {
		if two {
			q += o.Len
			r += o.Len2
			continue
		}
		switch o.Op {
		case 'M':
			r += o.Len
			q += o.Len
		case 'D', 'N':
			r += o.Len
		case 'I':
			q += o.Len
		}
	}
	return gap.Span{Strand: seq.Plus, Start: 1, End: r}, gap.Span{Strand: seq.Plus, Start: 1, End: q}
}
