package skeleton

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mvp-joe/loppers/internal/grammar"
)

// emptyBlocks maps each removable kind to the text that replaces a removed range.
// A filler is never longer than what it replaces.
var emptyBlocks = map[grammar.BlockKind]func(removed []byte) string{
	grammar.KindBraced:     bracedFiller,
	grammar.KindIndented:   func([]byte) string { return "" },
	grammar.KindEndKeyword: func([]byte) string { return "" },
}

// Rewrite copies source with every range replaced by its kind's empty-block filler.
// Ranges must be ascending and disjoint.
func Rewrite(source []byte, ranges []DeletionRange) (string, error) {
	if err := validateRanges(ranges, uint(len(source))); err != nil {
		return "", err
	}
	for i, r := range ranges {
		if _, ok := emptyBlocks[r.Kind]; !ok {
			return "", fmt.Errorf("%w: range %d has non-removable kind %s", ErrInvariantViolation, i, r.Kind)
		}
	}

	var b strings.Builder
	b.Grow(len(source))

	var pos uint
	for _, r := range ranges {
		b.Write(source[pos:r.Start])
		b.WriteString(emptyBlocks[r.Kind](source[r.Start:r.End]))
		pos = r.End
	}
	b.Write(source[pos:])

	return b.String(), nil
}

// bracedFiller keeps a one-line body on one line ({ }) and a multi-line body on two,
// with the closing delimiter at its original indentation.
func bracedFiller(removed []byte) string {
	if len(removed) == 0 {
		return ""
	}
	nl := bytes.LastIndexByte(removed, '\n')
	if nl < 0 {
		return " "
	}

	lineBreak := "\n"
	if nl > 0 && removed[nl-1] == '\r' {
		lineBreak = "\r\n"
	}

	indent := removed[nl+1:]
	if len(bytes.Trim(indent, " \t")) > 0 {
		return lineBreak
	}
	return lineBreak + string(indent)
}
