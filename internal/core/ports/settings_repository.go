package ports

import (
	"context"

	"courierdesk/internal/core/domain/model/settings"
)

// SettingsRepository stores the single CompanySettings row.
type SettingsRepository interface {
	// Get returns the current snapshot. A missing row yields errs.ObjectNotFoundError.
	Get(ctx context.Context) (settings.CompanySettings, error)

	// Save replaces the snapshot.
	Save(ctx context.Context, s settings.CompanySettings) error

	// EnsureDefaults inserts defaults when no row exists yet and leaves an existing row untouched.
	EnsureDefaults(ctx context.Context, defaults settings.CompanySettings) error
}
