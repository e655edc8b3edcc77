// Package services provides the stateless domain services of the ordering
// model: rules that need more than one aggregate method or operate on raw
// input before an aggregate exists.
//
// The package includes:
//   - OrderValidator: shape and range checks for order creation input
//   - DiscountService: percentage, fixed, loyalty and removal of discounts
package services
