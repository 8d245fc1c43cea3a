package commands

import (
	"context"
	"time"

	"courierdesk/internal/core/domain/model/settings"
)

type UpdateCompanySettingsCommandHandler struct {
	uowFactory SettingsUoWFactory
	now        func() time.Time
}

func NewUpdateCompanySettingsCommandHandler(uowFactory SettingsUoWFactory) UpdateCompanySettingsCommandHandler {
	return UpdateCompanySettingsCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle validates and saves a new snapshot. Operations already running keep the
// snapshot they read.
func (h *UpdateCompanySettingsCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCompanySettingsCommand,
) (settings.CompanySettings, error) {
	if err := cmd.Validate(); err != nil {
		return settings.CompanySettings{}, err
	}

	s, err := settings.NewCompanySettings(
		cmd.DefaultPricePerLb(),
		cmd.AutoCalculatePrice(),
		cmd.EstablishmentCode(),
		cmd.EmissionPointCode(),
		h.now(),
	)
	if err != nil {
		return settings.CompanySettings{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return settings.CompanySettings{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SettingsRepository().Save(ctx, s); err != nil {
		return settings.CompanySettings{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return settings.CompanySettings{}, err
	}

	return s, nil
}
