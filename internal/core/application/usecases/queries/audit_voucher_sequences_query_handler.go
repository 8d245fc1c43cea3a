package queries

import (
	"context"

	"gorm.io/gorm"

	"courierdesk/internal/core/domain/model/voucher"
)

type AuditVoucherSequencesQueryHandler struct {
	db *gorm.DB
}

func NewAuditVoucherSequencesQueryHandler(db *gorm.DB) AuditVoucherSequencesQueryHandler {
	return AuditVoucherSequencesQueryHandler{db: db}
}

func (h AuditVoucherSequencesQueryHandler) Handle(
	ctx context.Context,
	query AuditVoucherSequencesQuery,
) ([]AuditVoucherSequencesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.document_type,
			s.establishment,
			s.emission_point,
			s.current_sequence,
			COUNT(v.id),
			COALESCE(MAX(v.sequence), 0)
		FROM voucher_sequences s
		LEFT JOIN vouchers v
			ON  v.document_type  = s.document_type
			AND v.establishment  = s.establishment
			AND v.emission_point = s.emission_point
		GROUP BY s.document_type, s.establishment, s.emission_point, s.current_sequence
		ORDER BY s.document_type, s.establishment, s.emission_point
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]AuditVoucherSequencesQueryResponse, 0)
	for rows.Next() {
		var (
			item                                       AuditVoucherSequencesQueryResponse
			documentType, establishment, emissionPoint string
		)

		if err = rows.Scan(
			&documentType,
			&establishment,
			&emissionPoint,
			&item.CurrentSequence,
			&item.IssuedCount,
			&item.MaxIssued,
		); err != nil {
			return nil, err
		}

		key, keyErr := voucher.NewKey(documentType, establishment, emissionPoint)
		if keyErr != nil {
			return nil, keyErr
		}
		item.Key = key.String()
		item.Unissued = item.CurrentSequence - item.IssuedCount
		item.Inconsistent = item.MaxIssued > item.CurrentSequence || item.Unissued < 0
		report = append(report, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
