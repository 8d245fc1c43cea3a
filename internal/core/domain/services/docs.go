// Package services provides domain services: business rules that need more than
// one aggregate or snapshot to evaluate.
//
// The package includes:
//   - PriceCalculator: computes an order total from the company settings snapshot,
//     the customer's negotiated rate and the package weight
package services
