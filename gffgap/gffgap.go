// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gffgap extracts gapped alignments from GFF features and writes
// them back.
//
// An alignment feature carries its alignment string in one of the
// attributes Gap, cigar_exonerate, cigar_ensembl, cigar_bam or
// vulgar_exonerate, and the aligned region of the query in a Target
// attribute of the form
//
//  Target "name" start end [strand]
//
// The feature's own extent and strand give the reference side of the
// alignment.
package gffgap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"

	"github.com/biogo/align/gap"
)

var (
	ErrNoAlignment = errors.New("gffgap: no alignment attribute")
	ErrNoTarget    = errors.New("gffgap: no target attribute")
	ErrNotGFF      = errors.New("gffgap: feature is not a GFF feature")
)

// Tags lists the attribute tags holding alignment strings, in the order
// they are searched.
var Tags = []struct {
	Tag    string
	Format gap.Format
}{
	{Tag: "Gap", Format: gap.GFF3Gap},
	{Tag: "cigar_exonerate", Format: gap.ExonerateCIGAR},
	{Tag: "cigar_ensembl", Format: gap.EnsemblCIGAR},
	{Tag: "cigar_bam", Format: gap.BAMCIGAR},
	{Tag: "vulgar_exonerate", Format: gap.ExonerateVULGAR},
}

// Tag returns the attribute tag used to hold alignment strings of format f.
func Tag(f gap.Format) string {
	for _, t := range Tags {
		if t.Format == f {
			return t.Tag
		}
	}
	panic(fmt.Sprintf("gffgap: no tag for %v", f))
}

// Alignment is a gapped alignment read from a GFF feature.
type Alignment struct {
	Format gap.Format
	Text   string

	// Target is the name of the query sequence.
	Target string

	Ref, Query gap.Span

	// Blocks holds the blocks of a CIGAR-family alignment.
	// It is nil for VULGAR alignments and ungapped alignments.
	Blocks []gap.Block

	// Transcript holds the decomposition of a VULGAR alignment.
	Transcript *gap.Transcript
}

// Gapped returns whether the alignment has more than one block.
func (a *Alignment) Gapped() bool {
	if a.Transcript != nil {
		return len(a.Transcript.Exons) > 1 || (len(a.Transcript.ExonBlocks) == 1 && a.Transcript.ExonBlocks[0] != nil)
	}
	return a.Blocks != nil
}

// Text returns the alignment string held by f and its format.
func Text(f *gff.Feature) (text string, format gap.Format, err error) {
	for _, t := range Tags {
		v := f.FeatAttributes.Get(t.Tag)
		if v == "" {
			continue
		}
		return unquote(v), t.Format, nil
	}
	return "", 0, ErrNoAlignment
}

// Target returns the query name and extent given by the Target attribute
// of f.
func Target(f *gff.Feature) (name string, query gap.Span, err error) {
	v := f.FeatAttributes.Get("Target")
	if v == "" {
		return "", query, ErrNoTarget
	}
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, `"`) {
		end := strings.Index(v[1:], `"`)
		if end < 0 {
			return "", query, fmt.Errorf("gffgap: unterminated target name in %q", v)
		}
		name, v = v[1:end+1], v[end+2:]
	} else {
		i := strings.IndexByte(v, ' ')
		if i < 0 {
			return "", query, fmt.Errorf("gffgap: missing target coordinates in %q", v)
		}
		name, v = v[:i], v[i:]
	}

	fields := strings.Fields(v)
	if len(fields) < 2 || len(fields) > 3 {
		return "", query, fmt.Errorf("gffgap: invalid target coordinates %q", v)
	}
	query.Strand = seq.Plus
	query.Start, err = strconv.Atoi(fields[0])
	if err != nil {
		return "", query, fmt.Errorf("gffgap: invalid target start: %v", err)
	}
	query.End, err = strconv.Atoi(fields[1])
	if err != nil {
		return "", query, fmt.Errorf("gffgap: invalid target end: %v", err)
	}
	if len(fields) == 3 {
		switch fields[2] {
		case "+":
		case "-":
			query.Strand = seq.Minus
		default:
			return "", query, fmt.Errorf("gffgap: invalid target strand %q", fields[2])
		}
	}
	return name, query, nil
}

// Ref returns the reference extent of f.
func Ref(f *gff.Feature) gap.Span {
	return gap.Span{
		Strand: f.FeatStrand,
		Start:  feat.ZeroToOne(f.FeatStart),
		End:    f.FeatEnd,
	}
}

// Parse returns the alignment held by f.
func Parse(f *gff.Feature) (*Alignment, error) {
	text, format, err := Text(f)
	if err != nil {
		return nil, err
	}
	name, query, err := Target(f)
	if err != nil {
		return nil, err
	}
	a := &Alignment{
		Format: format,
		Text:   text,
		Target: name,
		Ref:    Ref(f),
		Query:  query,
	}
	if format.Grammar().TwoLengths {
		a.Transcript, err = gap.StringToExons(format, a.Ref, a.Query, text)
	} else {
		a.Blocks, err = gap.StringToBlocks(format, a.Ref, a.Query, text)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FromFeature returns the alignment held by the GFF feature f.
func FromFeature(f feat.Feature) (*Alignment, error) {
	g, ok := f.(*gff.Feature)
	if !ok {
		return nil, ErrNotGFF
	}
	return Parse(g)
}

// Set writes blocks to f as an alignment string of the given format,
// replacing any alignment string already held by f. The reference extent
// is taken from f.
func Set(f *gff.Feature, format gap.Format, query gap.Span, blocks []gap.Block) error {
	text, err := gap.BlocksToString(format, Ref(f), query, blocks)
	if err != nil {
		return err
	}
	attrs := f.FeatAttributes[:0]
	for _, a := range f.FeatAttributes {
		if !isAlignmentTag(a.Tag) {
			attrs = append(attrs, a)
		}
	}
	f.FeatAttributes = append(attrs, gff.Attribute{Tag: Tag(format), Value: quote(text)})
	return nil
}

func isAlignmentTag(tag string) bool {
	for _, t := range Tags {
		if t.Tag == tag {
			return true
		}
	}
	return false
}

func unquote(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		if u, err := strconv.Unquote(v); err == nil {
			return u
		}
		return v[1 : len(v)-1]
	}
	return v
}

func quote(v string) string {
	if strings.ContainsAny(v, " ;") {
		return strconv.Quote(v)
	}
	return v
}
