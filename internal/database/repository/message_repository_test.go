package repository_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkoseoglu/messageboard/internal/database/models"
	"github.com/bkoseoglu/messageboard/internal/database/repository"
)

func TestMessageRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMessageRepository(db)
	user := createTestUser(t, db, "author@example.com")

	message := &models.Message{
		Title:    "Hello",
		Content:  "First message",
		AuthorID: user.ID,
	}
	require.NoError(t, repo.Create(message))
	assert.NotEqual(t, uuid.Nil, message.ID)
	assert.Equal(t, 1, message.Version)

	found, err := repo.FindByID(message.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", found.Title)
	assert.Equal(t, user.ID, found.AuthorID)
}

func TestMessageRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMessageRepository(db)

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, repository.ErrMessageNotFound)
}

func TestMessageRepository_FindByAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMessageRepository(db)
	user := createTestUser(t, db, "author@example.com")
	other := createTestUser(t, db, "other@example.com")

	for _, tc := range []struct {
		title    string
		author   uint
		archived bool
	}{
		{"visible", user.ID, false},
		{"archived", user.ID, true},
		{"foreign", other.ID, false},
	} {
		message := &models.Message{
			Title:      tc.title,
			Content:    "content",
			AuthorID:   tc.author,
			IsArchived: tc.archived,
		}
		require.NoError(t, repo.Create(message))
	}

	messages, err := repo.FindByAuthor(user.ID, false, 20, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "visible", messages[0].Title)

	messages, err = repo.FindByAuthor(user.ID, true, 20, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestMessageRepository_Update_BumpsVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMessageRepository(db)
	user := createTestUser(t, db, "author@example.com")

	message := &models.Message{
		Title:    "Before",
		Content:  "content",
		AuthorID: user.ID,
	}
	require.NoError(t, repo.Create(message))

	message.Title = "After"
	require.NoError(t, repo.Update(message))

	updated, err := repo.FindByID(message.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, 2, updated.Version)
}

func TestMessageRepository_SetArchived(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMessageRepository(db)
	user := createTestUser(t, db, "author@example.com")

	message := &models.Message{
		Title:    "Archive me",
		Content:  "content",
		AuthorID: user.ID,
	}
	require.NoError(t, repo.Create(message))

	require.NoError(t, repo.SetArchived(message.ID, true))

	archived, err := repo.FindByID(message.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
}

func TestMessageRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMessageRepository(db)
	user := createTestUser(t, db, "author@example.com")

	message := &models.Message{
		Title:    "Delete me",
		Content:  "content",
		AuthorID: user.ID,
	}
	require.NoError(t, repo.Create(message))

	require.NoError(t, repo.Delete(message.ID))

	_, err := repo.FindByID(message.ID)
	assert.ErrorIs(t, err, repository.ErrMessageNotFound)

	assert.ErrorIs(t, repo.Delete(message.ID), repository.ErrMessageNotFound)
}
