// AngelaMos | 2026
// database_test.go

package core

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapDBError(t *testing.T) {
	assert.NoError(t, WrapDBError("noop", nil))

	err := WrapDBError("get campaign", sql.ErrNoRows)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "get campaign")

	err = WrapDBError("create user", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	assert.True(t, IsDuplicateKeyError(err))

	for _, code := range []string{"23503", "23514", "22P02"} {
		err = WrapDBError("write", &pgconn.PgError{Code: code})
		appErr, ok := AsAppError(err)
		if assert.True(t, ok, code) {
			assert.Equal(t, http.StatusBadRequest, appErr.StatusCode, code)
		}
	}

	cause := errors.New("connection reset")
	err = WrapDBError("list ads", cause)
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsAppError(err))
}

func TestJitteredDurationBounds(t *testing.T) {
	base := 70 * time.Second
	for range 50 {
		d := jitteredDuration(base)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/7)
	}
	assert.Equal(t, time.Duration(0), jitteredDuration(0))
}
