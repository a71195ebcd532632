// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package input opens alignment input files, transparently decompressing
// BGZF, gzip and xz data.
package input

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"

	"github.com/biogo/hts/bgzf"
	"github.com/ulikunitz/xz"
	"golang.org/x/exp/mmap"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// headLen is the length of the header needed to identify a BGZF block.
const headLen = 16

// isBGZF returns whether head starts a gzip member carrying the BGZF
// block size extra subfield.
func isBGZF(head []byte) bool {
	const fextra = 1 << 2
	return len(head) >= 14 && bytes.HasPrefix(head, gzipMagic) &&
		head[3]&fextra != 0 && head[12] == 'B' && head[13] == 'C'
}

// File is an opened input.
type File struct {
	io.Reader
	closers []io.Closer
}

// Close releases the resources held by the File.
func (f *File) Close() error {
	var err error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if cerr := f.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	*f = File{}
	return err
}

// Open opens the named file for reading. The path "-" opens standard input.
// Regular files are accessed via mmapped file memory.
func Open(path string) (*File, error) {
	if path == "-" {
		return openStream(os.Stdin)
	}
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	f := &File{closers: []io.Closer{m}}
	head := make([]byte, headLen)
	n, _ := m.ReadAt(head, 0)
	head = head[:n]
	section := func() io.Reader { return io.NewSectionReader(m, 0, int64(m.Len())) }

	switch {
	case isBGZF(head):
		r, err := bgzf.NewReader(section(), 0)
		if err != nil {
			m.Close()
			return nil, err
		}
		f.Reader = r
		f.closers = append(f.closers, r)
	case bytes.HasPrefix(head, gzipMagic):
		g, err := gzip.NewReader(section())
		if err != nil {
			m.Close()
			return nil, err
		}
		f.Reader = g
		f.closers = append(f.closers, g)
	case bytes.HasPrefix(head, xzMagic):
		r, err := xz.NewReader(section())
		if err != nil {
			m.Close()
			return nil, err
		}
		f.Reader = r
	default:
		f.Reader = section()
	}
	return f, nil
}

func openStream(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(xzMagic))
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		g, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &File{Reader: g, closers: []io.Closer{g}}, nil
	case bytes.HasPrefix(head, xzMagic):
		x, err := xz.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &File{Reader: x}, nil
	}
	return &File{Reader: br}, nil
}
