// Package settingsrepo persists the CompanySettings singleton.
package settingsrepo

import (
	"time"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/settings"
)

// singletonID is the only id the company_settings table accepts.
const singletonID = 1

type CompanySettingsDTO struct {
	ID                 int             `gorm:"primaryKey;autoIncrement:false;check:company_settings_singleton,id = 1"`
	DefaultPricePerLb  decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	AutoCalculatePrice bool            `gorm:"not null"`
	EstablishmentCode  string          `gorm:"type:char(3);not null"`
	EmissionPointCode  string          `gorm:"type:char(3);not null"`
	UpdatedAt          time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (CompanySettingsDTO) TableName() string {
	return "company_settings"
}

func fromDomain(s settings.CompanySettings) CompanySettingsDTO {
	return CompanySettingsDTO{
		ID:                 singletonID,
		DefaultPricePerLb:  s.DefaultPricePerLb(),
		AutoCalculatePrice: s.AutoCalculatePrice(),
		EstablishmentCode:  s.EstablishmentCode(),
		EmissionPointCode:  s.EmissionPointCode(),
		UpdatedAt:          s.UpdatedAt(),
	}
}

func toDomain(dto CompanySettingsDTO) (settings.CompanySettings, error) {
	return settings.NewCompanySettings(
		dto.DefaultPricePerLb,
		dto.AutoCalculatePrice,
		dto.EstablishmentCode,
		dto.EmissionPointCode,
		dto.UpdatedAt,
	)
}
