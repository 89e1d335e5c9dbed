package repository

import (
	"context"
	"os"
	"testing"

	"notes-be/internal/entity"
	"notes-be/internal/pkg/serverutils"
	"notes-be/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// newMongoTestDatabase connects to MONGODB_TEST_URI and hands out a throwaway
// database that is dropped when the test ends.
func newMongoTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := database.ConnectDB(ctx, uri)
	require.NoError(t, err)

	db := client.Database("notes_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	return db
}

func TestNoteRepository_Mongo(t *testing.T) {
	db := newMongoTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, EnsureNoteSchema(ctx, db, "notes"))
	// second run replaces the validator on the existing collection
	require.NoError(t, EnsureNoteSchema(ctx, db, "notes"))

	repo := NewNoteRepository(db, "notes")

	notes, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	first := &entity.Note{Content: "Hello world", Important: true}
	second := &entity.Note{Content: "Another note"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetById(ctx, first.Id)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got.Content)
	assert.True(t, got.Important)

	notes, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, first.Id, notes[0].Id)

	got.Content = "Hello again"
	got.Important = false
	require.NoError(t, repo.Update(ctx, got))
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, "Hello again", got.Content)

	err = repo.Update(ctx, &entity.Note{Id: primitive.NewObjectID(), Content: "nobody home"})
	assert.ErrorIs(t, err, serverutils.ErrNotFound)

	err = repo.Create(ctx, &entity.Note{Content: "abc"})
	var ve *serverutils.ValidationError
	assert.ErrorAs(t, err, &ve)

	require.NoError(t, repo.DeleteById(ctx, first.Id))
	require.NoError(t, repo.DeleteById(ctx, first.Id))

	_, err = repo.GetById(ctx, first.Id)
	assert.ErrorIs(t, err, serverutils.ErrNotFound)

	notes, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}
