package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessErrorMatching(t *testing.T) {
	err := fmt.Errorf("submit: %w", ErrBusinessDetail("date_blocked", "2026-12-25"))

	assert.True(t, IsBusiness(err, "date_blocked"))
	assert.False(t, IsBusiness(err, "slot_full"))

	code, detail, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, "date_blocked", code)
	assert.Equal(t, "2026-12-25", detail)
	assert.Equal(t, "submit: date_blocked (2026-12-25)", err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap("persistence_failure", cause)

	assert.True(t, IsBusiness(err, "persistence_failure"))
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Wrap("persistence_failure", nil))

	_, _, ok := CodeOf(cause)
	assert.False(t, ok)
}

func TestPostgresClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
}
