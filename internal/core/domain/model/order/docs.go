// Package order provides the Order aggregate and its status lifecycle.
//
// The package includes:
//   - Order: the aggregate root for a package taken in at a facility
//   - Status: the closed set of lifecycle states and the central transition table
//   - TransitionRequest: a Forward or AdministrativeCorrection status change
//   - HistoryEntry: the append-only record produced by every status change
//
// Key business rules:
//   - Orders start in PreAlert and move forward through
//     PreAlert -> CapturedAtAgency -> Dispatched -> InCustoms -> AwaitingPayment -> PaymentApproved -> Delivered
//   - Forward moves may skip intermediate states (cash-on-pickup orders go straight to Delivered)
//   - Delivered is terminal for forward moves
//   - Only an AdministrativeCorrection, which always carries a reason, may move an order backwards
//   - Every status change yields exactly one HistoryEntry; persisting both together is the
//     caller's transaction
package order
