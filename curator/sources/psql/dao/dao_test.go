package dao

import (
	"context"
	"testing"
	"time"

	"curator/curator/sources/psql/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func createDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Analysis{},
		&models.TelegramSession{},
	))
	return db
}

func createUser(t *testing.T, userDAO *UserDAO, username, email string) *models.User {
	user, err := userDAO.CreateUser(context.Background(), username, email, "hash")
	require.NoError(t, err)
	return user
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	userDAO := NewUserDAO(createDB(t))
	createUser(t, userDAO, "alice", "a@x.com")

	_, err := userDAO.CreateUser(context.Background(), "alice", "other@x.com", "hash")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	userDAO := NewUserDAO(createDB(t))
	createUser(t, userDAO, "alice", "a@x.com")

	_, err := userDAO.CreateUser(context.Background(), "bob", "a@x.com", "hash")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetUser_Lookups(t *testing.T) {
	userDAO := NewUserDAO(createDB(t))
	created := createUser(t, userDAO, "alice", "a@x.com")

	byName, err := userDAO.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := userDAO.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	// exact-match, case-sensitive
	miss, err := userDAO.GetUserByUsername(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestLinkTelegramID_Conflict(t *testing.T) {
	userDAO := NewUserDAO(createDB(t))
	alice := createUser(t, userDAO, "alice", "a@x.com")
	bob := createUser(t, userDAO, "bob", "b@x.com")

	require.NoError(t, userDAO.LinkTelegramID(context.Background(), alice, "tg-42"))

	err := userDAO.LinkTelegramID(context.Background(), bob, "tg-42")
	assert.ErrorIs(t, err, ErrConflict)

	found, err := userDAO.GetUserByTelegramID(context.Background(), "tg-42")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, alice.ID, found.ID)
}

func TestUnlinkTelegramID(t *testing.T) {
	db := createDB(t)
	userDAO := NewUserDAO(db)
	alice := createUser(t, userDAO, "alice", "a@x.com")
	bob := createUser(t, userDAO, "bob", "b@x.com")

	require.NoError(t, userDAO.LinkTelegramID(context.Background(), alice, "tg-42"))
	require.NoError(t, userDAO.UnlinkTelegramID(context.Background(), alice))

	found, err := userDAO.GetUserByTelegramID(context.Background(), "tg-42")
	require.NoError(t, err)
	assert.Nil(t, found)

	// the identity is free again
	require.NoError(t, userDAO.LinkTelegramID(context.Background(), bob, "tg-42"))
}

func TestAnalysisOwnership(t *testing.T) {
	db := createDB(t)
	userDAO := NewUserDAO(db)
	analysisDAO := NewAnalysisDAO(db)
	alice := createUser(t, userDAO, "alice", "a@x.com")
	bob := createUser(t, userDAO, "bob", "b@x.com")

	created, err := analysisDAO.CreateAnalysis(context.Background(), alice.ID, "great product!", "sentiment", "позитивная", nil, nil)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// owner sees it
	got, err := analysisDAO.GetAnalysis(context.Background(), alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "great product!", got.OriginalText)

	// another user's lookup and delete are indistinguishable from a miss
	_, err = analysisDAO.GetAnalysis(context.Background(), bob.ID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, analysisDAO.DeleteAnalysis(context.Background(), bob.ID, created.ID), ErrNotFound)

	// owner deletes; second delete misses
	require.NoError(t, analysisDAO.DeleteAnalysis(context.Background(), alice.ID, created.ID))
	assert.ErrorIs(t, analysisDAO.DeleteAnalysis(context.Background(), alice.ID, created.ID), ErrNotFound)
}

func TestListAnalyses_OrderAndTotal(t *testing.T) {
	db := createDB(t)
	userDAO := NewUserDAO(db)
	analysisDAO := NewAnalysisDAO(db)
	alice := createUser(t, userDAO, "alice", "a@x.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		kind := "sentiment"
		if i%2 == 1 {
			kind = "summary"
		}
		analysis := models.Analysis{
			UserID:       alice.ID,
			OriginalText: "text",
			Kind:         kind,
			Result:       "result",
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&analysis).Error)
	}

	items, total, err := analysisDAO.ListAnalysesByUser(context.Background(), alice.ID, nil, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, items, 5)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt), "expected newest-first ordering")
	}

	// total is invariant under offset/limit
	page, total, err := analysisDAO.ListAnalysesByUser(context.Background(), alice.ID, nil, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 2)

	// kind filter narrows both items and total
	kind := "sentiment"
	filtered, total, err := analysisDAO.ListAnalysesByUser(context.Background(), alice.ID, &kind, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, item := range filtered {
		assert.Equal(t, "sentiment", item.Kind)
	}
}

func TestUpsertSession(t *testing.T) {
	db := createDB(t)
	sessionDAO := NewTelegramSessionDAO(db)

	name := "alice_tg"
	first, err := sessionDAO.UpsertSession(context.Background(), "tg-42", &name, nil, nil)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	renamed := "alice_renamed"
	second, err := sessionDAO.UpsertSession(context.Background(), "tg-42", &renamed, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Username)
	assert.Equal(t, "alice_renamed", *second.Username)
	assert.False(t, second.LastActivity.Before(first.LastActivity))
}

func TestSetSessionUser(t *testing.T) {
	db := createDB(t)
	userDAO := NewUserDAO(db)
	sessionDAO := NewTelegramSessionDAO(db)
	alice := createUser(t, userDAO, "alice", "a@x.com")

	_, err := sessionDAO.UpsertSession(context.Background(), "tg-42", nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, sessionDAO.SetSessionUser(context.Background(), "tg-42", &alice.ID))
	session, err := sessionDAO.GetSessionByTelegramID(context.Background(), "tg-42")
	require.NoError(t, err)
	require.NotNil(t, session.UserID)
	assert.Equal(t, alice.ID, *session.UserID)

	require.NoError(t, sessionDAO.SetSessionUser(context.Background(), "tg-42", nil))
	session, err = sessionDAO.GetSessionByTelegramID(context.Background(), "tg-42")
	require.NoError(t, err)
	assert.Nil(t, session.UserID)
}
