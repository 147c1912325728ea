package driven

import (
	"github.com/tradewire-labs/edix/internal/core/domain"
)

// Mapper builds the typed body for one transaction-set type. Each
// implementation is a single-pass fold over the body segments,
// dispatching on segment id.
type Mapper interface {
	// Code returns the transaction-set code this mapper handles ("850").
	Code() string

	// Map consumes the transaction-body segments (between ST and SE)
	// and produces the typed body. A missing required field fails the
	// whole mapping with a *domain.MappingError; all other fields are
	// optional and simply absent when their source segment is missing.
	Map(segments []domain.Segment) (domain.ParsedMessage, error)
}
