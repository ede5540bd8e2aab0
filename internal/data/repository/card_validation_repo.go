package repository

import (
	"context"
	"fmt"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"go.uber.org/zap"
)

type CardValidationRepository interface {
	Create(ctx context.Context, record *entity.CardValidation) error
	ListNewestFirst(ctx context.Context, limit, offset int) ([]*entity.CardValidation, error)
	CountAll(ctx context.Context) (int64, error)
}

type cardValidationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCardValidationRepository(db database.PgxIface, log *zap.Logger) CardValidationRepository {
	return &cardValidationRepository{
		db:  db,
		log: log.With(zap.String("repository", "card_validation")),
	}
}

func (r *cardValidationRepository) Create(ctx context.Context, record *entity.CardValidation) error {
	query := `
		INSERT INTO card_validations (id, checkout_id, cardholder_name, masked_number,
		                              card_token, expiry_month, expiry_year,
		                              payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.CheckoutID,
		record.CardholderName,
		record.MaskedNumber,
		record.CardToken,
		record.ExpiryMonth,
		record.ExpiryYear,
		record.PaymentMethod,
		record.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create card validation",
			zap.Error(err),
			zap.String("checkout_id", record.CheckoutID),
		)
		return fmt.Errorf("create card validation for checkout %s: %w", record.CheckoutID, err)
	}

	return nil
}

// ListNewestFirst returns one page of records ordered by creation time,
// most recent first.
func (r *cardValidationRepository) ListNewestFirst(ctx context.Context, limit, offset int) ([]*entity.CardValidation, error) {
	query := `
		SELECT id, checkout_id, cardholder_name, masked_number, card_token,
		       expiry_month, expiry_year, payment_method, created_at
		FROM card_validations
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list card validations",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list card validations limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	records := make([]*entity.CardValidation, 0)
	for rows.Next() {
		var rec entity.CardValidation
		if err := rows.Scan(
			&rec.ID,
			&rec.CheckoutID,
			&rec.CardholderName,
			&rec.MaskedNumber,
			&rec.CardToken,
			&rec.ExpiryMonth,
			&rec.ExpiryYear,
			&rec.PaymentMethod,
			&rec.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan card validation row", zap.Error(err))
			return nil, fmt.Errorf("scan card validation row: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate card validation rows: %w", err)
	}

	return records, nil
}

func (r *cardValidationRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM card_validations`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Database error counting card validations", zap.Error(err))
		return 0, fmt.Errorf("count card validations: %w", err)
	}

	return count, nil
}
