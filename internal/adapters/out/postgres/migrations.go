package postgres

import (
	"gorm.io/gorm"

	"courierdesk/internal/adapters/out/postgres/customerrepo"
	"courierdesk/internal/adapters/out/postgres/orderrepo"
	"courierdesk/internal/adapters/out/postgres/settingsrepo"
	"courierdesk/internal/adapters/out/postgres/voucherrepo"
)

// Migrate creates or extends every table the adapters use.
// Orders come before their history so the foreign key can be created.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&customerrepo.CustomerDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.StatusHistoryDTO{},
		&settingsrepo.CompanySettingsDTO{},
		&voucherrepo.VoucherSequenceDTO{},
		&voucherrepo.VoucherDTO{},
	)
}
