// Package settings holds the company-wide configuration that pricing and voucher
// numbering read once per operation.
package settings

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/guard"
)

var ErrCompanySettingsIsNotConstructed = errors.New("CompanySettings must be created via NewCompanySettings")

var threeDigits = regexp.MustCompile(`^[0-9]{3}$`)

// CompanySettings is an immutable snapshot of the singleton settings row.
// Replacing the settings means building a new snapshot and saving it.
type CompanySettings struct {
	defaultPricePerLb  decimal.Decimal
	autoCalculatePrice bool
	establishmentCode  string
	emissionPointCode  string
	updatedAt          time.Time
	guard              guard.ConstructorGuard
}

// NewCompanySettings validates a snapshot.
//
// Parameters:
//   - defaultPricePerLb: rate applied to customers without a negotiated one, must be positive
//   - autoCalculatePrice: when false every computed total is 0.00
//   - establishmentCode, emissionPointCode: 3-digit codes used when issuing vouchers
//   - updatedAt: time of the last change
func NewCompanySettings(
	defaultPricePerLb decimal.Decimal,
	autoCalculatePrice bool,
	establishmentCode string,
	emissionPointCode string,
	updatedAt time.Time,
) (CompanySettings, error) {
	if err := errors.Join(
		validateRate(defaultPricePerLb),
		validateCode("establishment code", establishmentCode),
		validateCode("emission point code", emissionPointCode),
	); err != nil {
		return CompanySettings{}, err
	}

	return CompanySettings{
		defaultPricePerLb:  defaultPricePerLb,
		autoCalculatePrice: autoCalculatePrice,
		establishmentCode:  establishmentCode,
		emissionPointCode:  emissionPointCode,
		updatedAt:          updatedAt.UTC(),
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (s CompanySettings) Validate() error {
	return s.guard.Validate(ErrCompanySettingsIsNotConstructed)
}

func (s CompanySettings) DefaultPricePerLb() decimal.Decimal {
	return s.defaultPricePerLb
}

func (s CompanySettings) AutoCalculatePrice() bool {
	return s.autoCalculatePrice
}

func (s CompanySettings) EstablishmentCode() string {
	return s.establishmentCode
}

func (s CompanySettings) EmissionPointCode() string {
	return s.emissionPointCode
}

func (s CompanySettings) UpdatedAt() time.Time {
	return s.updatedAt
}

func validateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("default price per lb",
			fmt.Errorf("%s is not greater than 0", rate.String()))
	}
	return nil
}

func validateCode(param, code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError(param)
	}
	if !threeDigits.MatchString(code) {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q must be exactly 3 digits", code))
	}
	return nil
}
