package driving

import (
	"context"

	"github.com/tradewire-labs/edix/internal/core/domain"
)

// Engine is the transport-agnostic boundary of the EDI processor. RPC,
// HTTP or CLI adapters are thin wrappers around these three operations.
type Engine interface {
	// ProcessMessage tokenizes, validates and maps one interchange.
	// messageTypeHint, when non-empty, skips auto-detection from the ST
	// segment. The returned result is always well formed: fatal
	// failures surface as a status and messages, never as a panic or a
	// bare error.
	ProcessMessage(ctx context.Context, raw string, messageTypeHint string, opts domain.Options) domain.ProcessingResult

	// ValidateMessage runs tokenizer, envelope parser and format
	// validation only. No body is mapped.
	ValidateMessage(ctx context.Context, raw string, messageType string) domain.ValidationReport

	// ListSupportedTypes returns the registered transaction-set
	// descriptors in registration order.
	ListSupportedTypes() []domain.MessageTypeDescriptor
}
