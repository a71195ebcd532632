// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gapconv reports and converts the gapped alignments held in GFF or BAM
// files.
//
// In blocks mode each alignment is written as a header line followed by
// one line per matched block (or per exon for VULGAR alignments). In
// convert mode GFF input is written back as GFF with its alignment
// strings rewritten in the format given by -to, and BAM input is written
// as a table of read names and alignment strings.
//
// Alignment strings that cannot be parsed are reported and the alignment
// is treated as ungapped.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/hts/bam"

	"github.com/biogo/align/bamgap"
	"github.com/biogo/align/gap"
	"github.com/biogo/align/gffgap"
	"github.com/biogo/align/internal/input"
)

var (
	in        = flag.String("in", "-", "input file; - is standard input")
	isBAM     = flag.Bool("bam", false, "input is BAM rather than GFF")
	mode      = flag.String("mode", "blocks", "output mode: blocks or convert")
	to        = flag.String("to", "gff3-gap", "alignment format written in convert mode")
	tolerance = flag.Int("tolerance", 0, "query gap tolerance for reporting perfect alignments")
	quiet     = flag.Bool("quiet", false, "do not report tolerated alignment anomalies")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("gapconv: ")
	if *quiet {
		gap.Logger = nil
	}

	format, err := gap.ParseFormat(*to)
	if err != nil {
		log.Fatal(err)
	}
	if *mode != "blocks" && *mode != "convert" {
		log.Fatalf("unknown mode %q", *mode)
	}

	f, err := input.Open(*in)
	if err != nil {
		log.Fatalf("failed to open input: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if *isBAM {
		err = convertBAM(w, f, format)
	} else {
		err = convertGFF(w, f, format)
	}
	if err != nil {
		w.Flush()
		log.Fatal(err)
	}
}

func convertGFF(w io.Writer, r io.Reader, format gap.Format) error {
	gr := gff.NewReader(r)
	var gw *gff.Writer
	if *mode == "convert" {
		gw = gff.NewWriter(w, 60, true)
	}
	for {
		f, err := gr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		g := f.(*gff.Feature)
		name := fmt.Sprintf("%s:%d-%d", g.SeqName, g.FeatStart+1, g.FeatEnd)

		a, err := gffgap.Parse(g)
		if err != nil && err != gffgap.ErrNoAlignment {
			log.Printf("warning: %s: treating alignment as ungapped: %v", name, err)
			a = nil
		}

		if gw == nil {
			if a != nil {
				printAlignment(w, name, a.Format, a.Ref, a.Query, a.Blocks, a.Transcript)
			}
			continue
		}
		if a != nil {
			if a.Transcript != nil {
				log.Printf("warning: %s: cannot convert %v alignment", name, a.Format)
			} else if err := gffgap.Set(g, format, a.Query, a.Blocks); err != nil {
				log.Printf("warning: %s: %v", name, err)
			}
		}
		_, err = gw.Write(g)
		if err != nil {
			return err
		}
	}
}

func convertBAM(w io.Writer, r io.Reader, format gap.Format) error {
	br, err := bam.NewReader(r, 0)
	if err != nil {
		return err
	}
	defer br.Close()
	for {
		rec, err := br.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		ref, query, blocks, err := bamgap.Blocks(rec)
		if err == bamgap.ErrUnmapped {
			continue
		}
		name := fmt.Sprintf("%s@%s:%d", rec.Name, rec.Ref.Name(), rec.Pos+1)
		if err != nil {
			log.Printf("warning: %s: treating alignment as ungapped: %v", name, err)
			blocks = nil
		}

		if *mode == "blocks" {
			printAlignment(w, name, gap.BAMCIGAR, ref, query, blocks, nil)
			continue
		}
		text, err := gap.BlocksToString(format, ref, query, blocks)
		if err != nil {
			log.Printf("warning: %s: %v", name, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", rec.Name, text)
	}
}

func printAlignment(w io.Writer, name string, format gap.Format, ref, query gap.Span, blocks []gap.Block, t *gap.Transcript) {
	if t != nil {
		fmt.Fprintf(w, "%s\t%v\texons=%d\tcds=%d-%d\n", name, format, len(t.Exons), t.CDS.Start, t.CDS.End)
		for i, e := range t.Exons {
			fmt.Fprintf(w, "\texon\t%d\t%d\tblocks=%d\n", e.Start, e.End, len(t.ExonBlocks[i]))
			for _, b := range t.ExonBlocks[i] {
				printBlock(w, b)
			}
		}
		for _, in := range t.Introns {
			fmt.Fprintf(w, "\tintron\t%d\t%d\n", in.Start, in.End)
		}
		return
	}
	fmt.Fprintf(w, "%s\t%v\tblocks=%d\tperfect=%t\n", name, format, len(blocks), gap.IsPerfect(blocks, *tolerance))
	if blocks == nil {
		fmt.Fprintf(w, "\tblock\t%d\t%d\t%d\t%d\t%v\t%v\n", min(ref.Start, ref.End), max(ref.Start, ref.End),
			min(query.Start, query.End), max(query.Start, query.End), gap.Edge, gap.Edge)
		return
	}
	for _, b := range blocks {
		printBlock(w, b)
	}
}

func printBlock(w io.Writer, b gap.Block) {
	fmt.Fprintf(w, "\tblock\t%d\t%d\t%d\t%d\t%v\t%v\n", b.T1, b.T2, b.Q1, b.Q2, b.StartBoundary, b.EndBoundary)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
