// Package domain defines the core business entities for edix.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Segment: One delimited record within an X12 interchange
//   - Envelope: ISA/GS/ST framing data and the detected delimiters
//   - ParsedMessage: Tagged union over the four transaction-set bodies
//   - ProcessingResult: The outcome of one engine invocation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
