package voucher

import (
	"fmt"

	"courierdesk/internal/pkg/errs"
)

// MaxSequence is the largest value that fits the nine-digit number suffix.
const MaxSequence int64 = 999_999_999

// Allocation is a sequence value reserved for a key together with its formatted number.
type Allocation struct {
	Key      Key
	Sequence int64
	Number   string
}

// NewAllocation formats sequence for key as TT-EEE-PPP-#########.
func NewAllocation(key Key, sequence int64) (Allocation, error) {
	if err := key.Validate(); err != nil {
		return Allocation{}, err
	}
	if sequence < 1 || sequence > MaxSequence {
		return Allocation{}, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, MaxSequence)
	}
	return Allocation{
		Key:      key,
		Sequence: sequence,
		Number:   FormatNumber(key, sequence),
	}, nil
}

// FormatNumber renders the voucher number without validating its inputs.
func FormatNumber(key Key, sequence int64) string {
	return fmt.Sprintf("%s-%s-%s-%09d", key.documentType, key.establishment, key.emissionPoint, sequence)
}
