// Package kernel provides shared value objects used across the order domain.
//
// It contains:
//   - UUID: the business identifier for aggregates, wrapping google/uuid
//   - Money: an immutable non-negative decimal amount with safe arithmetic
//
// Both types follow the constructor pattern: the zero value is invalid and
// Validate reports whether an instance was built through a constructor.
package kernel
