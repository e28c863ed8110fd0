package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/bookmarks/internal/db/memorystorage"
	"github.com/patric-chuzhbe/bookmarks/internal/models"
)

func setupService(t *testing.T) (*Service, *memorystorage.MemoryStorage) {
	t.Helper()

	db, err := memorystorage.New()
	require.NoError(t, err)

	return New(db), db
}

func createTestUser(t *testing.T, db *memorystorage.MemoryStorage, email string) int {
	t.Helper()

	userID, err := db.CreateUser(context.Background(), &models.User{
		Email:        email,
		FirstName:    "Test",
		PasswordHash: "irrelevant-hash",
	})
	require.NoError(t, err)

	return userID
}

func TestMe(t *testing.T) {
	service, db := setupService(t)
	userID := createTestUser(t, db, "a@x.com")

	userView, err := service.Me(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, userID, userView.ID)
	assert.Equal(t, "a@x.com", userView.Email)
	assert.Equal(t, "Test", userView.FirstName)
}

func TestMeUnknownUser(t *testing.T) {
	service, _ := setupService(t)

	_, err := service.Me(context.Background(), 12345)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestEditOwnProfilePartially(t *testing.T) {
	service, db := setupService(t)
	userID := createTestUser(t, db, "a@x.com")

	newLastName := "Edited"
	userView, err := service.Edit(context.Background(), userID, userID, &models.EditUserRequest{
		LastName: &newLastName,
	})
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", userView.Email)
	assert.Equal(t, "Test", userView.FirstName)
	assert.Equal(t, "Edited", userView.LastName)

	stored, err := db.GetUserByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", stored.LastName)
	assert.Equal(t, "irrelevant-hash", stored.PasswordHash, "the hash must survive profile edits")
}

func TestEditForeignUserLooksLikeNotFound(t *testing.T) {
	service, db := setupService(t)
	actorID := createTestUser(t, db, "a@x.com")
	otherID := createTestUser(t, db, "b@x.com")

	newFirstName := "Hacked"
	_, err := service.Edit(context.Background(), actorID, otherID, &models.EditUserRequest{
		FirstName: &newFirstName,
	})
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	stored, err := db.GetUserByID(context.Background(), otherID)
	require.NoError(t, err)
	assert.Equal(t, "Test", stored.FirstName)
}

func TestEditToTakenEmail(t *testing.T) {
	service, db := setupService(t)
	actorID := createTestUser(t, db, "a@x.com")
	createTestUser(t, db, "b@x.com")

	takenEmail := "b@x.com"
	_, err := service.Edit(context.Background(), actorID, actorID, &models.EditUserRequest{
		Email: &takenEmail,
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}
