package domain

import "strings"

// Delimiters holds the separator characters for one interchange.
// They are declared positionally inside the ISA segment, so every
// interchange can use a different set.
type Delimiters struct {
	// Element separates elements within a segment. ISA position 4.
	Element byte

	// Segment terminates a segment. The character following ISA16.
	Segment byte

	// Component separates sub-elements within a composite element (ISA16).
	Component byte
}

// DefaultDelimiters are used when the interchange is too short to
// declare its own separators.
func DefaultDelimiters() Delimiters {
	return Delimiters{Element: '*', Segment: '~', Component: '>'}
}

// Segment is one delimited record of an X12 interchange.
// It is immutable once produced by the tokenizer; the validator and the
// mappers share the same backing slice and never modify it.
type Segment struct {
	// ID is the 2-4 character segment identifier ("ISA", "PO1", ...).
	ID string

	// Elements are the element values after the identifier, in wire
	// order. Empty elements are preserved so that positions stay
	// significant ("PO1*1*10*EA*25.50**VP*SKU" keeps the empty fifth
	// element).
	Elements []string

	// LineNumber is the 1-indexed line of the original text the segment
	// started on, for error locators.
	LineNumber int

	// Position is the 1-indexed ordinal of the segment within the
	// interchange.
	Position int
}

// Element returns the n-th element using X12 numbering, where BEG03 is
// Element(3). Out-of-range positions return the empty string, matching
// the X12 convention that trailing elements may be omitted.
func (s Segment) Element(n int) string {
	if n < 1 || n > len(s.Elements) {
		return ""
	}
	return s.Elements[n-1]
}

// Render reconstructs the wire form of the segment with the given
// delimiters, excluding the segment terminator.
func (s Segment) Render(d Delimiters) string {
	var b strings.Builder
	b.WriteString(s.ID)
	for _, e := range s.Elements {
		b.WriteByte(d.Element)
		b.WriteString(e)
	}
	return b.String()
}

// RenderAll reconstructs the wire form of a segment sequence, each
// segment closed by the segment terminator. Tokenizing the returned
// text with the same delimiters yields the identical sequence.
func RenderAll(segments []Segment, d Delimiters) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Render(d))
		b.WriteByte(d.Segment)
	}
	return b.String()
}
