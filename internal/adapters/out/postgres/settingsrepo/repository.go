package settingsrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"courierdesk/internal/core/domain/model/settings"
	"courierdesk/internal/pkg/errs"
)

// GormSettingsRepository implements ports.SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

func (r *GormSettingsRepository) Get(ctx context.Context) (settings.CompanySettings, error) {
	var dto CompanySettingsDTO
	if err := r.db.WithContext(ctx).Where("id = ?", singletonID).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings.CompanySettings{}, errs.NewObjectNotFoundError("company settings", singletonID)
		}
		return settings.CompanySettings{}, err
	}

	return toDomain(dto)
}

// Save overwrites the row, creating it if needed.
func (r *GormSettingsRepository) Save(ctx context.Context, s settings.CompanySettings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

func (r *GormSettingsRepository) EnsureDefaults(ctx context.Context, defaults settings.CompanySettings) error {
	if err := defaults.Validate(); err != nil {
		return err
	}

	dto := fromDomain(defaults)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}
