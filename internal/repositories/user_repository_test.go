package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// A register racing past the email pre-check must still surface as a
// duplicate, not as an internal error.
func TestTranslateUserCreateError(t *testing.T) {
	t.Run("translated duplicate key", func(t *testing.T) {
		err := translateUserCreateError(gorm.ErrDuplicatedKey)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("wrapped duplicate key", func(t *testing.T) {
		err := translateUserCreateError(fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey))
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("raw unique violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
		assert.ErrorIs(t, translateUserCreateError(pgErr), ErrUserAlreadyExists)
	})

	t.Run("other postgres errors pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503"}
		assert.Equal(t, error(pgErr), translateUserCreateError(pgErr))
	})

	t.Run("unrelated errors pass through", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Equal(t, plain, translateUserCreateError(plain))
	})
}
