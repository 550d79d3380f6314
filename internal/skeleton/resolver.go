package skeleton

import (
	"fmt"
	"sort"

	"github.com/mvp-joe/loppers/internal/grammar"
	"github.com/mvp-joe/loppers/internal/syntax"
)

// DeletionRange is a byte range of the source that the rewriter replaces with the
// empty-block filler for Kind.
type DeletionRange struct {
	Start uint
	End   uint
	Kind  grammar.BlockKind
}

// Resolve turns located declarations into sorted, disjoint deletion ranges.
//
// Braced bodies lose their interior between the delimiters. Indented and end-keyword
// bodies lose whole lines: trailing whitespace stays, and the range starts at the line
// break ending the header. A preserved leading node moves the start just past it.
// Ranges nested inside another range are dropped; partial overlap is an error.
func Resolve(source []byte, decls []Declaration) ([]DeletionRange, error) {
	ranges := make([]DeletionRange, 0, len(decls))
	for _, d := range decls {
		if !d.Body.Kind.Deletable() {
			continue
		}
		if d.Body.End > uint(len(source)) || d.Body.Start > d.Body.End {
			return nil, fmt.Errorf("%w: body [%d,%d) outside source of %d bytes",
				ErrInvariantViolation, d.Body.Start, d.Body.End, len(source))
		}

		var r DeletionRange
		switch d.Body.Kind {
		case grammar.KindBraced:
			r = bracedRange(d.Body, d.Preserve)
		default:
			r = lineRange(source, d.Body, d.Preserve)
		}
		if r.End > r.Start {
			ranges = append(ranges, r)
		}
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].End > ranges[j].End
	})

	merged := ranges[:0]
	for _, r := range ranges {
		if n := len(merged); n > 0 && r.Start < merged[n-1].End {
			outer := merged[n-1]
			if r.End <= outer.End {
				continue
			}
			return nil, fmt.Errorf("%w: range [%d,%d) partially overlaps [%d,%d)",
				ErrInvariantViolation, r.Start, r.End, outer.Start, outer.End)
		}
		merged = append(merged, r)
	}

	if err := validateRanges(merged, uint(len(source))); err != nil {
		return nil, err
	}
	return merged, nil
}

func bracedRange(body BodySpan, preserve *syntax.Span) DeletionRange {
	r := DeletionRange{Start: body.InnerStart, End: body.InnerEnd, Kind: body.Kind}
	if within(preserve, body.Span) {
		r.Start = clip(max(r.Start, preserve.End), r.End)
	}
	return r
}

func lineRange(source []byte, body BodySpan, preserve *syntax.Span) DeletionRange {
	r := DeletionRange{Start: contentStart(source, body.Span), End: body.End, Kind: body.Kind}
	for r.End > r.Start && isSpace(source[r.End-1]) {
		r.End--
	}
	if r.End == r.Start {
		return r
	}

	if within(preserve, body.Span) {
		r.Start = clip(max(preserve.End, body.Start), r.End)
		return r
	}

	for r.Start > 0 && (source[r.Start-1] == ' ' || source[r.Start-1] == '\t') {
		r.Start--
	}
	if r.Start > 0 && source[r.Start-1] == '\n' {
		r.Start--
		if r.Start > 0 && source[r.Start-1] == '\r' {
			r.Start--
		}
	}
	return r
}

func within(s *syntax.Span, outer syntax.Span) bool {
	return s != nil && s.Start >= outer.Start && s.End <= outer.End
}

func clip(v, limit uint) uint {
	if v > limit {
		return limit
	}
	return v
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// validateRanges checks ranges are in bounds, ascending and mutually disjoint.
func validateRanges(ranges []DeletionRange, size uint) error {
	var prevEnd uint
	for i, r := range ranges {
		if r.Start > r.End || r.End > size {
			return fmt.Errorf("%w: range %d [%d,%d) is invalid for %d bytes", ErrInvariantViolation, i, r.Start, r.End, size)
		}
		if i > 0 && r.Start < prevEnd {
			return fmt.Errorf("%w: range %d [%d,%d) starts before previous end %d", ErrInvariantViolation, i, r.Start, r.End, prevEnd)
		}
		prevEnd = r.End
	}
	return nil
}
