package queries

import (
	"errors"

	"courierdesk/internal/pkg/guard"
)

var ErrAuditVoucherSequencesQueryIsNotConstructed = errors.New(
	"AuditVoucherSequencesQuery must be created via NewAuditVoucherSequencesQuery constructor",
)

// AuditVoucherSequencesQuery compares every counter with the vouchers issued under it.
type AuditVoucherSequencesQuery struct {
	guard guard.ConstructorGuard
}

func NewAuditVoucherSequencesQuery() AuditVoucherSequencesQuery {
	return AuditVoucherSequencesQuery{guard: guard.NewConstructorGuard()}
}

func (q AuditVoucherSequencesQuery) Validate() error {
	return q.guard.Validate(ErrAuditVoucherSequencesQueryIsNotConstructed)
}

// AuditVoucherSequencesQueryResponse is the state of one key.
//
// Numbers reserved through allocation alone never get a voucher, so Unissued > 0 is
// expected for keys used that way. Inconsistent means a voucher carries a number the
// counter never handed out.
type AuditVoucherSequencesQueryResponse struct {
	Key             string
	CurrentSequence int64
	IssuedCount     int64
	MaxIssued       int64
	Unissued        int64
	Inconsistent    bool
}
