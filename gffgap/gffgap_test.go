// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gffgap

import (
	"testing"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
	"github.com/kortschak/utter"
	"gopkg.in/check.v1"

	"github.com/biogo/align/gap"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func estFeature() *gff.Feature {
	return &gff.Feature{
		SeqName:    "chr1",
		Source:     "exonerate",
		Feature:    "similarity",
		FeatStart:  1000,
		FeatEnd:    1085,
		FeatStrand: seq.Plus,
		FeatFrame:  gff.NoFrame,
		FeatAttributes: gff.Attributes{
			{Tag: "Target", Value: `"EST:yk1234" 1 98 +`},
			{Tag: "cigar_exonerate", Value: `"M 33 I 13 M 52"`},
		},
	}
}

func proteinFeature() *gff.Feature {
	return &gff.Feature{
		SeqName:    "chr1",
		Source:     "exonerate",
		Feature:    "protein_match",
		FeatStart:  1000,
		FeatEnd:    1194,
		FeatStrand: seq.Plus,
		FeatFrame:  gff.NoFrame,
		FeatAttributes: gff.Attributes{
			{Tag: "Target", Value: "Q9XYZ1 1 30"},
			{Tag: "vulgar_exonerate", Value: `"M 10 30 5 0 2 I 0 100 3 0 2 M 20 60"`},
		},
	}
}

var estBlocks = []gap.Block{
	{T1: 1001, T2: 1033, Q1: 1, Q2: 33, RefStrand: seq.Plus, QueryStrand: seq.Plus, StartBoundary: gap.Edge, EndBoundary: gap.MatchAbutment},
	{T1: 1034, T2: 1085, Q1: 47, Q2: 98, RefStrand: seq.Plus, QueryStrand: seq.Plus, StartBoundary: gap.MatchAbutment, EndBoundary: gap.Edge},
}

func (s *S) TestParseCIGAR(c *check.C) {
	a, err := FromFeature(estFeature())
	c.Assert(err, check.Equals, nil)
	c.Check(a.Format, check.Equals, gap.ExonerateCIGAR)
	c.Check(a.Text, check.Equals, "M 33 I 13 M 52")
	c.Check(a.Target, check.Equals, "EST:yk1234")
	c.Check(a.Ref, check.Equals, gap.Span{Strand: seq.Plus, Start: 1001, End: 1085})
	c.Check(a.Query, check.Equals, gap.Span{Strand: seq.Plus, Start: 1, End: 98})
	c.Check(a.Blocks, check.DeepEquals, estBlocks, check.Commentf("%s", utter.Sdump(a.Blocks)))
	c.Check(a.Transcript, check.IsNil)
	c.Check(a.Gapped(), check.Equals, true)
}

func (s *S) TestParseVULGAR(c *check.C) {
	a, err := Parse(proteinFeature())
	c.Assert(err, check.Equals, nil)
	c.Check(a.Format, check.Equals, gap.ExonerateVULGAR)
	c.Check(a.Target, check.Equals, "Q9XYZ1")
	c.Check(a.Blocks, check.IsNil)
	c.Assert(a.Transcript, check.NotNil)
	c.Check(a.Transcript.Exons, check.DeepEquals, []gap.Range{{Start: 1001, End: 1030}, {Start: 1135, End: 1194}})
	c.Check(a.Transcript.Introns, check.DeepEquals, []gap.Range{{Start: 1031, End: 1134}})
	c.Check(a.Gapped(), check.Equals, true)
}

func (s *S) TestParseErrors(c *check.C) {
	f := estFeature()
	f.FeatAttributes = f.FeatAttributes[:1]
	_, err := Parse(f)
	c.Check(err, check.Equals, ErrNoAlignment)

	f = estFeature()
	f.FeatAttributes = f.FeatAttributes[1:]
	_, err = Parse(f)
	c.Check(err, check.Equals, ErrNoTarget)

	f = estFeature()
	f.FeatEnd = 1090
	_, err = Parse(f)
	c.Check(err, check.NotNil)
}

func (s *S) TestTarget(c *check.C) {
	for _, t := range []struct {
		value string
		name  string
		query gap.Span
		ok    bool
	}{
		{value: `"Sequence:ABC 1" 5 25 -`, name: "Sequence:ABC 1", query: gap.Span{Strand: seq.Minus, Start: 5, End: 25}, ok: true},
		{value: "ABC 1 25", name: "ABC", query: gap.Span{Strand: seq.Plus, Start: 1, End: 25}, ok: true},
		{value: "ABC 1 25 +", name: "ABC", query: gap.Span{Strand: seq.Plus, Start: 1, End: 25}, ok: true},
		{value: "ABC", ok: false},
		{value: "ABC one 25", ok: false},
		{value: "ABC 1 25 x", ok: false},
		{value: `"ABC 1 25`, ok: false},
	} {
		f := &gff.Feature{FeatAttributes: gff.Attributes{{Tag: "Target", Value: t.value}}}
		name, query, err := Target(f)
		if !t.ok {
			c.Check(err, check.NotNil, check.Commentf("%q", t.value))
			continue
		}
		c.Check(err, check.Equals, nil, check.Commentf("%q", t.value))
		c.Check(name, check.Equals, t.name)
		c.Check(query, check.Equals, t.query)
	}
}

func (s *S) TestSet(c *check.C) {
	f := estFeature()
	a, err := Parse(f)
	c.Assert(err, check.Equals, nil)

	err = Set(f, gap.GFF3Gap, a.Query, a.Blocks)
	c.Assert(err, check.Equals, nil)
	c.Check(f.FeatAttributes, check.DeepEquals, gff.Attributes{
		{Tag: "Target", Value: `"EST:yk1234" 1 98 +`},
		{Tag: "Gap", Value: `"M33 I13 M52"`},
	})

	b, err := Parse(f)
	c.Assert(err, check.Equals, nil)
	c.Check(b.Format, check.Equals, gap.GFF3Gap)
	c.Check(b.Text, check.Equals, "M33 I13 M52")
	c.Check(b.Blocks, check.DeepEquals, a.Blocks)

	err = Set(f, gap.BAMCIGAR, a.Query, a.Blocks)
	c.Assert(err, check.Equals, nil)
	c.Check(f.FeatAttributes.Get("cigar_bam"), check.Equals, "33M13I52M")
	c.Check(f.FeatAttributes.Get("Gap"), check.Equals, "")
}
