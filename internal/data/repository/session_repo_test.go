package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

func TestSessionRepository_FindValidSession(t *testing.T) {
	db := &MockDB{}
	repo := NewSessionRepository(db, zap.NewNop())

	id, userID, token := uuid.New(), uuid.New(), uuid.New()
	expires := time.Now().Add(time.Hour)
	db.On("QueryRow", mock.Anything, mock.Anything, token.String()).
		Return(fakeRow{values: []any{id, userID, token, nil, nil, expires, nil, time.Now()}})

	s, err := repo.FindValidSession(context.Background(), token.String())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, userID, s.UserID)
	assert.Nil(t, s.RevokedAt)
}

func TestSessionRepository_FindValidSessionMissing(t *testing.T) {
	db := &MockDB{}
	repo := NewSessionRepository(db, zap.NewNop())

	db.On("QueryRow", mock.Anything, mock.Anything, "nope").Return(fakeRow{err: pgx.ErrNoRows})

	s, err := repo.FindValidSession(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestSessionRepository_Revoke(t *testing.T) {
	db := &MockDB{}
	repo := NewSessionRepository(db, zap.NewNop())

	db.On("Exec", mock.Anything, mock.Anything, "live").Return(pgconn.NewCommandTag("UPDATE 1"), nil)
	db.On("Exec", mock.Anything, mock.Anything, "gone").Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	assert.NoError(t, repo.Revoke(context.Background(), "live"))
	assert.ErrorIs(t, repo.Revoke(context.Background(), "gone"), ErrSessionNotFound)
}

func TestSessionRepository_CleanExpired(t *testing.T) {
	db := &MockDB{}
	repo := NewSessionRepository(db, zap.NewNop())

	db.On("Exec", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return containsAll(sql, "DELETE FROM sessions", "7 days")
	})).Return(pgconn.NewCommandTag("DELETE 3"), nil)

	n, err := repo.CleanExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
