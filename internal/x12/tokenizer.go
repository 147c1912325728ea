package x12

import (
	"strings"

	"github.com/tradewire-labs/edix/internal/core/domain"
)

// Tokenize splits raw interchange text into an ordered segment
// sequence. The separators are read positionally from the ISA header
// itself: the element separator is the byte at offset 3, the component
// separator is ISA16, and the segment terminator is the byte following
// ISA16. When the header is too short to declare a terminator the
// defaults ('~', '>') are assumed.
//
// Line breaks around segment terminators are insignificant and are
// normalized away; the terminator is the sole record boundary. Original
// line numbers are preserved on each segment for error locators.
func Tokenize(raw string) ([]domain.Segment, domain.Delimiters, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, domain.Delimiters{}, &domain.FormatError{Reason: "missing ISA envelope"}
	}
	if len(text) < isaPrefixLen+1 || text[:isaPrefixLen] != isaSegmentID {
		return nil, domain.Delimiters{}, &domain.FormatError{Reason: "missing ISA envelope"}
	}

	delims := detectDelimiters(text)

	// Leading whitespace was trimmed off; line numbers must still refer
	// to the original text.
	lineOffset := 1 + strings.Count(raw[:len(raw)-len(strings.TrimLeft(raw, " \t\r\n"))], "\n")

	var segments []domain.Segment
	line := lineOffset
	start := 0
	for i := 0; i <= len(text); i++ {
		atEnd := i == len(text)
		if !atEnd && text[i] != delims.Segment {
			continue
		}

		chunk := text[start:i]
		line += strings.Count(chunk, "\n")
		if seg, ok := buildSegment(chunk, delims, line, len(segments)+1); ok {
			segments = append(segments, seg)
		}

		if !atEnd {
			start = i + 1
		}
	}

	if len(segments) == 0 {
		return nil, delims, &domain.FormatError{Reason: "missing ISA envelope"}
	}
	return segments, delims, nil
}

// detectDelimiters reads the separators out of the ISA header. The
// element separator is always present (offset 3); the component
// separator and segment terminator require a full 16-element header,
// otherwise the defaults stand in.
func detectDelimiters(text string) domain.Delimiters {
	delims := domain.DefaultDelimiters()
	delims.Element = text[isaElementSepOffset]

	// Walk to the 16th element separator; ISA16 is the single byte
	// after it and the terminator is the byte after that.
	seps := 0
	for i := isaElementSepOffset; i < len(text); i++ {
		if text[i] != delims.Element {
			continue
		}
		seps++
		if seps == isaElementCount {
			if i+1 < len(text) {
				delims.Component = text[i+1]
			}
			if i+2 < len(text) {
				delims.Segment = text[i+2]
			}
			break
		}
	}
	return delims
}

// buildSegment turns one terminator-delimited chunk into a Segment.
// Whitespace padding around the chunk (line breaks between segments)
// is ignored; empty chunks are skipped.
func buildSegment(chunk string, delims domain.Delimiters, line, position int) (domain.Segment, bool) {
	trimmed := strings.TrimSpace(chunk)
	if trimmed == "" {
		return domain.Segment{}, false
	}

	parts := strings.Split(trimmed, string(delims.Element))
	return domain.Segment{
		ID:         parts[0],
		Elements:   parts[1:],
		LineNumber: line,
		Position:   position,
	}, true
}
