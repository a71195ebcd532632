// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fuzzbamgap

import (
	"bytes"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/bgzf"

	"github.com/biogo/align/bamgap"
)

func Fuzz(data []byte) int {
	buf := bytes.Buffer{}
	w := bgzf.NewWriter(&buf, 1)
	if n, err := w.Write(data); err != nil || n != len(data) {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}

	r, err := bam.NewReader(&buf, 1)
	if err != nil {
		return 0
	}
	for {
		rec, err := r.Read()
		if err != nil {
			break
		}
		ref, query, blocks, err := bamgap.Blocks(rec)
		if err != nil {
			continue
		}
		if _, err := bamgap.Cigar(ref, query, blocks); err != nil {
			panic(err)
		}
	}
	return 0
}
