package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voiceforge/voiceforge/internal/domain/model"
	apperrors "github.com/voiceforge/voiceforge/internal/errors"
	"github.com/voiceforge/voiceforge/internal/testutil"
)

func TestUserRepo_Integration_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)

		created, err := repo.Create(context.Background(), &model.User{
			Email:        "alice@example.com",
			Username:     "alice",
			PasswordHash: "$2a$10$hash",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		got, err := repo.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "$2a$10$hash", got.PasswordHash)

		_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestUserRepo_Integration_UniqueConstraints(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)

		_, err := repo.Create(context.Background(), &model.User{
			Email:        "alice@example.com",
			Username:     "alice",
			PasswordHash: "$2a$10$hash",
		})
		require.NoError(t, err)

		t.Run("duplicate email", func(t *testing.T) {
			_, err := repo.Create(context.Background(), &model.User{
				Email:        "alice@example.com",
				Username:     "alice2",
				PasswordHash: "$2a$10$hash",
			})
			require.Error(t, err)
			assert.True(t, apperrors.IsConflict(err))
			assert.Equal(t, "email", apperrors.GetField(err))
		})

		t.Run("duplicate username", func(t *testing.T) {
			_, err := repo.Create(context.Background(), &model.User{
				Email:        "alice2@example.com",
				Username:     "alice",
				PasswordHash: "$2a$10$hash",
			})
			require.Error(t, err)
			assert.True(t, apperrors.IsConflict(err))
			assert.Equal(t, "username", apperrors.GetField(err))
		})
	})
}

func TestUserRepo_Integration_ExistsByEmailOrUsername(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)

		_, err := repo.Create(context.Background(), &model.User{
			Email:        "alice@example.com",
			Username:     "alice",
			PasswordHash: "$2a$10$hash",
		})
		require.NoError(t, err)

		exists, err := repo.ExistsByEmailOrUsername(context.Background(), "alice@example.com", "someone")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmailOrUsername(context.Background(), "other@example.com", "alice")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmailOrUsername(context.Background(), "other@example.com", "bob")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
