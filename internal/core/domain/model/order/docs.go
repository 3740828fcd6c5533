// Package order provides the domain model for the order-registration workflow.
// It implements the Order aggregate root with its owned line items, status
// state machine, and duplicate-detection fingerprint.
//
// The package includes:
//   - Order: the aggregate root managing identity, line items, derived total,
//     and lifecycle transitions
//   - Product: an immutable line item owned exclusively by one order
//   - Status: a state machine enforcing Received -> {Processed, Duplicate, Error}
//   - Fingerprint: a positional SHA-256 content digest for soft duplicate
//     detection
//   - OrderProcessedEvent: the tagged envelope published after processing
//
// Key business rules:
//   - Orders require a non-empty external id and at least one product
//   - The total amount always equals the sum of the line items' extended prices
//   - The fingerprint reflects the content at construction time only
//   - Processed, Duplicate, and Error are terminal states
package order
