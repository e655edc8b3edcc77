// Package kernel provides the domain primitives shared by the ordering model.
//
// The package includes:
//   - UUID: identifier value object for aggregates and their entities
//   - Money: non-negative decimal amount with half-up rounding helpers
//
// Both are immutable values. Their zero values are either invalid (UUID) or
// a meaningful zero (Money), and they are safe for concurrent use.
package kernel
