// Package kernel holds the value objects shared by every courierdesk aggregate:
//   - UUID: identifier for orders, customers and vouchers
//   - Facility: the physical intake site that received a package
//   - money helpers: the rounding rule applied to every monetary amount
//
// Values in this package are immutable and safe for concurrent use.
package kernel
