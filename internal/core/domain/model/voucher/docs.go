// Package voucher models fiscal document numbering.
//
// A voucher number has the shape TT-EEE-PPP-#########:
//   - TT: document type code (01 invoice, 02 sales receipt, 04 credit note, 05 debit note)
//   - EEE: establishment code
//   - PPP: emission point code
//   - #########: the sequence, zero padded to nine digits
//
// Each (type, establishment, emission point) triple is a Key with its own strictly
// increasing counter. Numbers are never reused, so an allocation that is not
// followed by an issued Voucher leaves a gap.
package voucher
