package voucher

import (
	"errors"
	"fmt"

	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/guard"
)

var ErrKeyIsNotConstructed = errors.New("Key must be created via NewKey")

// Key identifies one voucher counter. Two keys are equal when all three codes are equal,
// so a Key can be used as a map key.
type Key struct {
	documentType  string
	establishment string
	emissionPoint string
	guard         guard.ConstructorGuard
}

// NewKey validates the three codes: 2, 3 and 3 digits respectively.
func NewKey(documentType, establishment, emissionPoint string) (Key, error) {
	if err := errors.Join(
		validateDigits("document type code", documentType, 2),
		validateDigits("establishment code", establishment, 3),
		validateDigits("emission point code", emissionPoint, 3),
	); err != nil {
		return Key{}, err
	}
	return Key{
		documentType:  documentType,
		establishment: establishment,
		emissionPoint: emissionPoint,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// KeyFor builds the key for a known document type.
func KeyFor(t DocumentType, establishment, emissionPoint string) (Key, error) {
	if err := t.Validate(); err != nil {
		return Key{}, err
	}
	return NewKey(t.Code(), establishment, emissionPoint)
}

func (k Key) Validate() error {
	return k.guard.Validate(ErrKeyIsNotConstructed)
}

func (k Key) DocumentType() string {
	return k.documentType
}

func (k Key) Establishment() string {
	return k.establishment
}

func (k Key) EmissionPoint() string {
	return k.emissionPoint
}

// String renders the key as TT-EEE-PPP.
func (k Key) String() string {
	return k.documentType + "-" + k.establishment + "-" + k.emissionPoint
}

func validateDigits(param, value string, width int) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	if len(value) != width {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q must be exactly %d digits", value, width))
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q must be exactly %d digits", value, width))
		}
	}
	return nil
}
