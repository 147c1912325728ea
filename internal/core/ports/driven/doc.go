// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Mapper: Builds one typed body from transaction-body segments
//
// # Optional Interfaces
//
// These can be nil - the engine degrades gracefully:
//
//   - RuleProvider: Customer-specific business-rule tuning. Without it,
//     the built-in defaults apply to every environment.
//   - ConfigStore: Engine option defaults from configuration. Without
//     it, compiled-in defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or mapper package
package driven
