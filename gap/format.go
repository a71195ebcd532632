// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gap

import (
	"fmt"
	"strings"
)

// Format identifies an alignment string notation.
type Format int

const (
	ExonerateCIGAR  Format = iota // Exonerate CIGAR: "M 33 I 13 M 52".
	EnsemblCIGAR                  // Ensembl CIGAR: "33M2IM52M".
	BAMCIGAR                      // SAM/BAM CIGAR: "33M13I52M".
	GFF3Gap                       // GFF3 Gap attribute: "M8 D3 M6".
	ExonerateVULGAR               // Exonerate VULGAR: "M 10 10 G 0 1 M 20 20".
	lastFormat
)

var formatNames = []string{
	ExonerateCIGAR:  "exonerate-cigar",
	EnsemblCIGAR:    "ensembl-cigar",
	BAMCIGAR:        "bam-cigar",
	GFF3Gap:         "gff3-gap",
	ExonerateVULGAR: "exonerate-vulgar",
	lastFormat:      "unknown",
}

// String returns the name of the format.
func (f Format) String() string {
	if f < 0 || f > lastFormat {
		f = lastFormat
	}
	return formatNames[f]
}

var formatAliases = map[string]Format{
	"exonerate":        ExonerateCIGAR,
	"cigar_exonerate":  ExonerateCIGAR,
	"ensembl":          EnsemblCIGAR,
	"cigar_ensembl":    EnsemblCIGAR,
	"bam":              BAMCIGAR,
	"sam":              BAMCIGAR,
	"cigar_bam":        BAMCIGAR,
	"gap":              GFF3Gap,
	"gff3":             GFF3Gap,
	"vulgar":           ExonerateVULGAR,
	"vulgar_exonerate": ExonerateVULGAR,
}

// ParseFormat returns the Format with the given name. Both the names
// returned by Format.String and the GFF attribute tags used for alignment
// strings are accepted, ignoring case.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(name)
	for f, n := range formatNames[:lastFormat] {
		if n == name {
			return Format(f), nil
		}
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return lastFormat, fmt.Errorf("gap: unknown format %q", name)
}

func (f Format) valid() bool { return 0 <= f && f < lastFormat }

// Grammar describes the lexical rules of an alignment string format.
type Grammar struct {
	// DigitsFirst is true when lengths precede their operator.
	DigitsFirst bool
	// OmitOne is true when a length of one may be left out.
	OmitOne bool
	// Spaced is true when operator/length groups are separated by spaces.
	Spaced bool
	// TwoLengths is true when each operator carries two lengths.
	TwoLengths bool
}

var grammars = []Grammar{
	ExonerateCIGAR:  {DigitsFirst: false, OmitOne: false, Spaced: true, TwoLengths: false},
	EnsemblCIGAR:    {DigitsFirst: true, OmitOne: true, Spaced: false, TwoLengths: false},
	BAMCIGAR:        {DigitsFirst: true, OmitOne: false, Spaced: false, TwoLengths: false},
	GFF3Gap:         {DigitsFirst: false, OmitOne: false, Spaced: true, TwoLengths: false},
	ExonerateVULGAR: {DigitsFirst: false, OmitOne: false, Spaced: true, TwoLengths: true},
}

// opSpaced records whether an operator is separated from its lengths by a
// space when written. Parsing accepts either form.
var opSpaced = []bool{
	ExonerateCIGAR:  true,
	EnsemblCIGAR:    false,
	BAMCIGAR:        false,
	GFF3Gap:         false,
	ExonerateVULGAR: true,
}

// Grammar returns the grammar of the format. It panics if f is not a
// known format.
func (f Format) Grammar() Grammar {
	if !f.valid() {
		panic(fmt.Sprintf("gap: invalid format %d", int(f)))
	}
	return grammars[f]
}

var (
	legalOps = []string{
		ExonerateCIGAR:  "MID",
		EnsemblCIGAR:    "MID",
		BAMCIGAR:        "MIDN",
		GFF3Gap:         "MID",
		ExonerateVULGAR: "MCGN53ISF",
	}

	// substitutions holds the operator replacements applied by each
	// format's canonicalizer.
	substitutions = [][]string{
		EnsemblCIGAR: {"DI", "ID"},
		BAMCIGAR:     {"XM"},
	}
)

var (
	legal      [lastFormat][256]bool
	substitute [lastFormat][256]byte
)

func init() {
	for f := Format(0); f < lastFormat; f++ {
		for _, c := range []byte(legalOps[f]) {
			legal[f][c] = true
		}
		for c := range substitute[f] {
			substitute[f][c] = byte(c)
		}
		if int(f) < len(substitutions) {
			for _, s := range substitutions[f] {
				substitute[f][s[0]] = s[1]
			}
		}
	}
}

// IsLegal returns whether op is a legal operator for the format after
// canonicalization.
func (f Format) IsLegal(op byte) bool {
	if !f.valid() {
		panic(fmt.Sprintf("gap: invalid format %d", int(f)))
	}
	return legal[f][op]
}
