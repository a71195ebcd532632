// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gap converts the compact gapped alignment notations used by
// Exonerate, Ensembl, SAM/BAM and GFF3 into genomic coordinate blocks, and
// blocks back into text.
//
// Every notation is first tokenized into a Canonical operator list using
// the grammar of its Format. CIGAR-family lists are interpreted as a single
// gapped HSP and yield a list of matched Blocks. VULGAR lists are run
// through an exon/intron state machine yielding a Transcript.
//
// Coordinates are one-based and inclusive. A gapped alignment that turns
// out to be a single matched block is returned as a nil block list.
package gap

import (
	"log"
	"os"
)

// Logger receives reports of tolerated anomalies in alignment strings and
// of operators ignored during conversion. A nil Logger discards them.
var Logger = log.New(os.Stderr, "gap: ", log.LstdFlags)

func logf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Printf(format, args...)
	}
}
