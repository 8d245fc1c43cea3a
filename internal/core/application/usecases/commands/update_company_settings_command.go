package commands

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"courierdesk/internal/pkg/guard"
)

var ErrUpdateCompanySettingsCommandIsNotConstructed = errors.New(
	"UpdateCompanySettingsCommand must be created via NewUpdateCompanySettingsCommand constructor",
)

// UpdateCompanySettingsCommand replaces the company settings snapshot.
type UpdateCompanySettingsCommand struct { //nolint:recvcheck //using for validation
	defaultPricePerLb  decimal.Decimal
	autoCalculatePrice bool
	establishmentCode  string
	emissionPointCode  string

	guard guard.ConstructorGuard
}

// NewUpdateCompanySettingsCommand only normalizes input; settings.NewCompanySettings validates it.
func NewUpdateCompanySettingsCommand(
	defaultPricePerLb decimal.Decimal,
	autoCalculatePrice bool,
	establishmentCode string,
	emissionPointCode string,
) UpdateCompanySettingsCommand {
	return UpdateCompanySettingsCommand{
		defaultPricePerLb:  defaultPricePerLb,
		autoCalculatePrice: autoCalculatePrice,
		establishmentCode:  strings.TrimSpace(establishmentCode),
		emissionPointCode:  strings.TrimSpace(emissionPointCode),
		guard:              guard.NewConstructorGuard(),
	}
}

func (c UpdateCompanySettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCompanySettingsCommandIsNotConstructed)
}

func (c UpdateCompanySettingsCommand) DefaultPricePerLb() decimal.Decimal {
	return c.defaultPricePerLb
}

func (c UpdateCompanySettingsCommand) AutoCalculatePrice() bool {
	return c.autoCalculatePrice
}

func (c UpdateCompanySettingsCommand) EstablishmentCode() string {
	return c.establishmentCode
}

func (c UpdateCompanySettingsCommand) EmissionPointCode() string {
	return c.emissionPointCode
}
