// Package queries contains read operations. Handlers read through gorm directly and
// return read models shaped for their callers; none of them change state.
//
// ComputeOrderTotalQueryHandler is the exception in shape: it reads through the
// repository ports so that the pricing engine can be reused by the write side.
package queries
