// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
func isAlpha(c byte) bool { return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' }
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// isOp returns whether c may be an operator. Splice site operators in
// two-length formats are digits.
func isOp(g Grammar, c byte) bool {
	return isAlpha(c) || (g.TwoLengths && (c == '5' || c == '3'))
}

// Parse tokenizes s according to the grammar of f and returns the raw
// operator list. The list is neither canonicalized nor validated.
func Parse(f Format, s string) (*Canonical, error) {
	g := f.Grammar()
	if len(s) == 0 {
		return nil, &GrammarError{Input: s, Index: -1, Msg: "empty alignment string"}
	}
	if !isAlnum(s[0]) {
		return nil, &GrammarError{Input: s, Index: -1, Msg: fmt.Sprintf("invalid character %q at start", s[0])}
	}
	if !isAlnum(s[len(s)-1]) {
		return nil, &GrammarError{Input: s, Index: -1, Msg: fmt.Sprintf("invalid character %q at end", s[len(s)-1])}
	}
	if !g.DigitsFirst && !isAlpha(s[0]) {
		return nil, &GrammarError{Input: s, Index: -1, Msg: "alignment string must start with an operator"}
	}
	if g.DigitsFirst && !isAlpha(s[len(s)-1]) {
		return nil, &GrammarError{Input: s, Index: -1, Msg: "alignment string must end with an operator"}
	}

	var (
		pos []int
		err error
	)
	if g.TwoLengths {
		pos, err = scanTriples(s)
		if err != nil {
			return nil, err
		}
	} else {
		for i := 0; i < len(s); i++ {
			if isAlpha(s[i]) {
				pos = append(pos, i)
			}
		}
	}

	c := &Canonical{Format: f, Ops: make([]Op, len(pos))}
	last := len(pos) - 1
	for i, p := range pos {
		var field string
		if g.DigitsFirst {
			lo := 0
			if i != 0 {
				lo = pos[i-1] + 1
			}
			field = s[lo:p]
		} else {
			hi := len(s)
			if i != last {
				hi = pos[i+1]
			}
			field = s[p+1 : hi]
		}
		c.Ops[i].Op = s[p]
		c.Ops[i].Len, c.Ops[i].Len2, err = lengths(g, field, i == 0, i == last)
		if err != nil {
			return nil, &GrammarError{Input: s, Index: i, Msg: err.Error()}
		}
	}

	for i, o := range c.Ops {
		if !isOp(g, o.Op) {
			return nil, &GrammarError{Input: s, Index: i, Msg: fmt.Sprintf("invalid operator %q", o.Op)}
		}
		if o.Len == 0 && o.Len2 == 0 {
			return nil, &GrammarError{Input: s, Index: i, Msg: fmt.Sprintf("zero length operator %q", o.Op)}
		}
	}
	return c, nil
}

// Scanner states for two-length operator strings.
const (
	scanOperator = iota
	scanFirst
	scanSecond
)

// scanTriples returns the positions of the operators in a string of
// space separated operator, length, length triples.
func scanTriples(s string) ([]int, error) {
	var pos []int
	state := scanOperator
	for i := 0; i < len(s); {
		if s[i] == ' ' {
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] != ' ' {
			j++
		}
		tok := s[i:j]
		switch state {
		case scanOperator:
			if len(tok) != 1 {
				return nil, &GrammarError{Input: s, Index: len(pos), Msg: fmt.Sprintf("invalid operator token %q at position %d", tok, i)}
			}
			pos = append(pos, i)
			state = scanFirst
		case scanFirst, scanSecond:
			if !allDigits(tok) {
				return nil, &GrammarError{Input: s, Index: len(pos) - 1, Msg: fmt.Sprintf("invalid length %q at position %d", tok, i)}
			}
			if state == scanFirst {
				state = scanSecond
			} else {
				state = scanOperator
			}
		}
		i = j
	}
	if state != scanOperator {
		return nil, &GrammarError{Input: s, Index: len(pos) - 1, Msg: "operator is missing a length"}
	}
	return pos, nil
}

func allDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// lengths returns the lengths held in field, the text lying between an
// operator and the neighbouring operator on its digits side.
func lengths(g Grammar, field string, first, last bool) (n, n2 int, err error) {
	if g.Spaced {
		// The space separating groups lies on the side of the field
		// facing the neighbouring operator. A single space may also
		// separate the operator from its digits.
		if g.DigitsFirst {
			if !first {
				if !strings.HasPrefix(field, " ") {
					return 0, 0, fmt.Errorf("missing separator before %q", field)
				}
				field = field[1:]
			}
			field = strings.TrimSuffix(field, " ")
		} else {
			if !last {
				if !strings.HasSuffix(field, " ") {
					return 0, 0, fmt.Errorf("missing separator after %q", field)
				}
				field = field[:len(field)-1]
			}
			field = strings.TrimPrefix(field, " ")
		}
	}

	if field == "" {
		if !g.OmitOne {
			return 0, 0, fmt.Errorf("missing length")
		}
		if g.Spaced && !first && !last {
			return 0, 0, fmt.Errorf("length may only be omitted at the ends")
		}
		return 1, 0, nil
	}

	if g.TwoLengths {
		f := strings.Split(field, " ")
		if len(f) != 2 || !allDigits(f[0]) || !allDigits(f[1]) {
			return 0, 0, fmt.Errorf("invalid lengths %q", field)
		}
		n, err = atoi(f[0])
		if err != nil {
			return 0, 0, err
		}
		n2, err = atoi(f[1])
		return n, n2, err
	}

	if !allDigits(field) {
		return 0, 0, fmt.Errorf("invalid length %q", field)
	}
	n, err = atoi(field)
	return n, 0, err
}

// maxLen bounds operator lengths so that sums over any operator list
// cannot overflow.
const maxLen = math.MaxInt32

func atoi(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %v", s, err.(*strconv.NumError).Err)
	}
	if n > maxLen {
		return 0, fmt.Errorf("length %s exceeds %d", s, maxLen)
	}
	return int(n), nil
}
