// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gap

import (
	"errors"
	"fmt"
)

// ErrWrongFormat is returned when a conversion is requested for a format
// it does not apply to, for example block building from VULGAR.
var ErrWrongFormat = errors.New("gap: conversion not supported for format")

// GrammarError is a lexical error in an alignment string.
type GrammarError struct {
	Input string
	// Index is the index of the offending operator,
	// or -1 if the error is not attributable to one.
	Index int
	Msg   string
}

func (e *GrammarError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("gap: %s in %q", e.Msg, e.Input)
	}
	return fmt.Sprintf("gap: %s at operator %d in %q", e.Msg, e.Index, e.Input)
}

// StructuralKind classifies violations of the canonical list invariants.
type StructuralKind int

const (
	NoOperators      StructuralKind = iota // The list is empty.
	EvenOperators                          // The list holds an even number of operators.
	BadFirstOperator                       // The list does not start with a match.
	BadLastOperator                        // The list does not end with a match.
	CoverageMismatch                       // Operator lengths do not cover the aligned spans.
)

var structuralMsgs = []string{
	NoOperators:      "no operators",
	EvenOperators:    "even number of operators",
	BadFirstOperator: "first operator is not a match",
	BadLastOperator:  "last operator is not a match",
	CoverageMismatch: "operator lengths do not match alignment extent",
}

func (k StructuralKind) String() string {
	if k < 0 || int(k) >= len(structuralMsgs) {
		return "unknown structural error"
	}
	return structuralMsgs[k]
}

// StructuralError is a violation of the canonical list invariants.
// An EvenOperators error is tolerated by the string conversion functions.
type StructuralError struct {
	Kind   StructuralKind
	Detail string
}

func (e *StructuralError) Error() string {
	if e.Detail == "" {
		return "gap: " + e.Kind.String()
	}
	return fmt.Sprintf("gap: %v: %s", e.Kind, e.Detail)
}

// tolerated returns whether err is the structural anomaly that real
// alignment producers are known to emit.
func tolerated(err error) bool {
	var serr *StructuralError
	return errors.As(err, &serr) && serr.Kind == EvenOperators
}

// TransitionError is returned when a VULGAR operator follows an operator
// that may not precede it in the current state.
type TransitionError struct {
	State      State
	Prev, Curr byte
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("gap: bad transition in state %v: %s followed by %s", e.State, opName(e.Prev), opName(e.Curr))
}

// SemanticError is a VULGAR operator sequence that is well formed but
// describes an impossible alignment.
type SemanticError struct {
	State State
	Op    byte
	Msg   string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("gap: %s at %s in state %v", e.Msg, opName(e.Op), e.State)
}

// SerializeError is returned when blocks cannot be written in a format.
type SerializeError struct {
	Format Format
	Msg    string
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("gap: cannot write %v: %s", e.Format, e.Msg)
}

// ParseError wraps the failure to convert an alignment string.
type ParseError struct {
	Format Format
	Input  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: parsing %v %q", e.Err, e.Format, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

func opName(op byte) string {
	if op == 0 {
		return "none"
	}
	return fmt.Sprintf("%q", op)
}
