package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-booking/models"
)

func setupUserRepo(t *testing.T) *UserRepo {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewUserRepo(db)
}

func TestCreateHashesPassword(t *testing.T) {
	repo := setupUserRepo(t)

	user, err := repo.Create(context.Background(), "amy", "hunter2", models.RoleCustomer)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")))
}

func TestCreateEnforcesUniqueness(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "amy", "hunter2", models.RoleCustomer)
	require.NoError(t, err)

	_, err = repo.Create(ctx, "amy", "other", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthenticate(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "staffer", "s3cret", models.RoleStaff)
	require.NoError(t, err)

	user, err := repo.Authenticate(ctx, "staffer", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role)

	_, err = repo.Authenticate(ctx, "staffer", "wrong")
	assert.Error(t, err)

	_, err = repo.Authenticate(ctx, "nobody", "s3cret")
	assert.Error(t, err)
}

func TestUpdateByUsernameRehashesPassword(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "amy", "hunter2", models.RoleCustomer)
	require.NoError(t, err)

	updated, err := repo.UpdateByUsername(ctx, "amy", map[string]interface{}{
		"password": "newpass",
		"role":     models.RoleStaff,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, updated.Role)

	_, err = repo.Authenticate(ctx, "amy", "newpass")
	assert.NoError(t, err)
	_, err = repo.Authenticate(ctx, "amy", "hunter2")
	assert.Error(t, err)
}

func TestSeedAdminIdempotent(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SeedAdmin(ctx, "admin1234"))
	require.NoError(t, repo.SeedAdmin(ctx, "different"))

	// The second seed must not overwrite the existing password.
	_, err := repo.Authenticate(ctx, "admin", "admin1234")
	assert.NoError(t, err)

	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}
