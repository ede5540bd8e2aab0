package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"flight-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func cardRow(name string, createdAt time.Time) []any {
	return []any{uuid.New(), "chk-1", name, "**** **** **** 1111", uuid.New(), 12, 29, "credit", createdAt}
}

func TestCardValidationRepository_ListNewestFirst(t *testing.T) {
	db := &MockDB{}
	repo := NewCardValidationRepository(db, zap.NewNop())

	newer := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)
	rows := &fakeRows{rows: [][]any{cardRow("B", newer), cardRow("A", older)}}

	db.On("Query", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return containsAll(sql, "ORDER BY created_at DESC", "LIMIT $1 OFFSET $2")
	}), 10, 20).Return(rows, nil)

	got, err := repo.ListNewestFirst(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].CardholderName)
	assert.Equal(t, "**** **** **** 1111", got[0].MaskedNumber)
	assert.Equal(t, 12, got[0].ExpiryMonth)
	assert.Equal(t, newer, got[0].CreatedAt)
	db.AssertExpectations(t)
}

func TestCardValidationRepository_ListError(t *testing.T) {
	db := &MockDB{}
	repo := NewCardValidationRepository(db, zap.NewNop())

	db.On("Query", mock.Anything, mock.Anything, 10, 0).Return(nil, errors.New("conn refused"))

	_, err := repo.ListNewestFirst(context.Background(), 10, 0)
	assert.ErrorContains(t, err, "conn refused")
}

func TestCardValidationRepository_Create(t *testing.T) {
	db := &MockDB{}
	repo := NewCardValidationRepository(db, zap.NewNop())

	rec := &entity.CardValidation{
		BaseSimple:     entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		CheckoutID:     "chk-9",
		CardholderName: "ANA GOMEZ",
		MaskedNumber:   "**** **** **** 4242",
		CardToken:      uuid.New(),
		ExpiryMonth:    1,
		ExpiryYear:     30,
		PaymentMethod:  "debit",
	}
	db.On("Exec", mock.Anything, mock.Anything,
		rec.ID, rec.CheckoutID, rec.CardholderName, rec.MaskedNumber, rec.CardToken,
		rec.ExpiryMonth, rec.ExpiryYear, rec.PaymentMethod, rec.CreatedAt,
	).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	require.NoError(t, repo.Create(context.Background(), rec))
	db.AssertExpectations(t)
}

func TestCardValidationRepository_CountAll(t *testing.T) {
	db := &MockDB{}
	repo := NewCardValidationRepository(db, zap.NewNop())

	db.On("QueryRow", mock.Anything, mock.Anything).Return(fakeRow{values: []any{int64(7)}})

	n, err := repo.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
