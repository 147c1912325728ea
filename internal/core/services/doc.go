// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The Engine is the single driving surface: it composes the tokenizer,
// envelope parser, validation passes and the mapper registry into the
// three operations exposed to adapters.
package services
