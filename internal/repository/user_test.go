package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"reunion/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)

	tests := []struct {
		name         string
		email        string
		mockBehavior func()
		expectUser   bool
		expectError  bool
	}{
		{
			name:  "Found",
			email: "alice@example.com",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "name", "email", "password"}).
					AddRow(1, "Alice", "alice@example.com", "password123")
				mock.ExpectQuery(query).
					WithArgs("alice@example.com", 1).
					WillReturnRows(rows)
			},
			expectUser: true,
		},
		{
			name:  "Absent yields nil without error",
			email: "nobody@example.com",
			mockBehavior: func() {
				mock.ExpectQuery(query).
					WithArgs("nobody@example.com", 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
		},
		{
			name:  "Database error",
			email: "alice@example.com",
			mockBehavior: func() {
				mock.ExpectQuery(query).
					WithArgs("alice@example.com", 1).
					WillReturnError(errors.New("connection timeout"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByEmail(ctx, tt.email)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectUser {
				if assert.NotNil(t, user) {
					assert.Equal(t, tt.email, user.Email)
				}
			} else {
				assert.Nil(t, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Authenticate(t *testing.T) {
	t.Parallel()
	db := setupRepoDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "Alice", "alice@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		user, err := repo.Authenticate(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := repo.Authenticate(ctx, "alice@example.com", "nope")
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := repo.Authenticate(ctx, "nobody@example.com", "password123")
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()
	db := setupRepoDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		Name: "Alice", Email: "alice@example.com", Password: "pw",
	}))

	err := repo.Create(ctx, &models.User{
		Name: "Impostor", Email: "alice@example.com", Password: "pw",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUserRepository_GetByID(t *testing.T) {
	t.Parallel()
	db := setupRepoDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@example.com")

	got, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = repo.GetByID(ctx, 999)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
