package voucherrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"courierdesk/internal/adapters/out/postgres/pgerrs"
	"courierdesk/internal/core/domain/model/voucher"
)

// nextSequenceSQL creates the counter on first use and increments it otherwise.
// The conflicting row stays locked until the transaction ends, which serializes
// allocations of one key and leaves other keys alone.
const nextSequenceSQL = `
	INSERT INTO voucher_sequences (document_type, establishment, emission_point, current_sequence, updated_at)
	VALUES (?, ?, ?, 1, now())
	ON CONFLICT (document_type, establishment, emission_point)
	DO UPDATE SET
		current_sequence = voucher_sequences.current_sequence + 1,
		updated_at       = now()
	RETURNING current_sequence
`

// GormVoucherSequenceRepository implements ports.VoucherSequenceRepository.
type GormVoucherSequenceRepository struct {
	db *gorm.DB
}

func NewGormVoucherSequenceRepository(db *gorm.DB) *GormVoucherSequenceRepository {
	return &GormVoucherSequenceRepository{db: db}
}

func (r *GormVoucherSequenceRepository) Next(ctx context.Context, key voucher.Key) (int64, error) {
	if err := key.Validate(); err != nil {
		return 0, err
	}

	var next int64
	err := r.db.WithContext(ctx).
		Raw(nextSequenceSQL, key.DocumentType(), key.Establishment(), key.EmissionPoint()).
		Scan(&next).Error
	if err != nil {
		return 0, pgerrs.Translate(err, "voucher sequence", key.String())
	}

	return next, nil
}

func (r *GormVoucherSequenceRepository) Current(ctx context.Context, key voucher.Key) (int64, error) {
	if err := key.Validate(); err != nil {
		return 0, err
	}

	var dto VoucherSequenceDTO
	err := r.db.WithContext(ctx).
		Where("document_type = ? AND establishment = ? AND emission_point = ?",
			key.DocumentType(), key.Establishment(), key.EmissionPoint()).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return dto.CurrentSequence, nil
}

// GormVoucherRepository implements ports.VoucherRepository.
type GormVoucherRepository struct {
	db *gorm.DB
}

func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// Add inserts an issued voucher. A number that was already issued yields
// errs.ObjectAlreadyExistsError.
func (r *GormVoucherRepository) Add(ctx context.Context, v *voucher.Voucher) error {
	if err := v.Validate(); err != nil {
		return err
	}

	dto := voucherFromDomain(v)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Translate(err, "voucher", v.Number())
	}

	return nil
}
