package repository

import (
	"context"
	"sync"
	"testing"

	"notes-be/internal/entity"
	"notes-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNoteMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteMemoryRepository()

	note := &entity.Note{Content: "Hello world", Important: true}
	require.NoError(t, repo.Create(ctx, note))
	assert.False(t, note.Id.IsZero())

	got, err := repo.GetById(ctx, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got.Content)
	assert.True(t, got.Important)
	assert.Equal(t, 0, got.Version)
}

func TestNoteMemoryRepository_CreateRejectsShortContent(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteMemoryRepository()

	err := repo.Create(ctx, &entity.Note{Content: "abc"})

	var ve *serverutils.ValidationError
	require.ErrorAs(t, err, &ve)

	notes, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteMemoryRepository_GetAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteMemoryRepository()

	for _, content := range []string{"first note", "second note", "third note"} {
		require.NoError(t, repo.Create(ctx, &entity.Note{Content: content}))
	}

	notes, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "first note", notes[0].Content)
	assert.Equal(t, "second note", notes[1].Content)
	assert.Equal(t, "third note", notes[2].Content)
}

func TestNoteMemoryRepository_GetAllEmpty(t *testing.T) {
	notes, err := NewNoteMemoryRepository().GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNoteMemoryRepository_GetByIdNotFound(t *testing.T) {
	_, err := NewNoteMemoryRepository().GetById(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestNoteMemoryRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteMemoryRepository()

	note := &entity.Note{Content: "original content"}
	require.NoError(t, repo.Create(ctx, note))
	id := note.Id

	note.Content = "replaced content"
	note.Important = true
	require.NoError(t, repo.Update(ctx, note))
	assert.Equal(t, id, note.Id)
	assert.Equal(t, 1, note.Version)

	got, err := repo.GetById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "replaced content", got.Content)
	assert.True(t, got.Important)
	assert.Equal(t, 1, got.Version)
}

func TestNoteMemoryRepository_UpdateMissingCreatesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteMemoryRepository()

	err := repo.Update(ctx, &entity.Note{Id: primitive.NewObjectID(), Content: "valid content"})
	assert.ErrorIs(t, err, serverutils.ErrNotFound)

	notes, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteMemoryRepository_UpdateValidates(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteMemoryRepository()

	note := &entity.Note{Content: "original content"}
	require.NoError(t, repo.Create(ctx, note))

	err := repo.Update(ctx, &entity.Note{Id: note.Id, Content: "no"})
	var ve *serverutils.ValidationError
	require.ErrorAs(t, err, &ve)

	got, err := repo.GetById(ctx, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "original content", got.Content)
}

func TestNoteMemoryRepository_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteMemoryRepository()

	keep := &entity.Note{Content: "keep this one"}
	drop := &entity.Note{Content: "drop this one"}
	require.NoError(t, repo.Create(ctx, keep))
	require.NoError(t, repo.Create(ctx, drop))

	require.NoError(t, repo.DeleteById(ctx, drop.Id))
	require.NoError(t, repo.DeleteById(ctx, drop.Id))

	_, err := repo.GetById(ctx, drop.Id)
	assert.ErrorIs(t, err, serverutils.ErrNotFound)

	notes, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, keep.Id, notes[0].Id)
}

func TestNoteMemoryRepository_ReturnedNotesAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteMemoryRepository()

	note := &entity.Note{Content: "stored content"}
	require.NoError(t, repo.Create(ctx, note))

	got, err := repo.GetById(ctx, note.Id)
	require.NoError(t, err)
	got.Content = "mutated outside"

	again, err := repo.GetById(ctx, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "stored content", again.Content)
}

func TestNoteMemoryRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteMemoryRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Create(ctx, &entity.Note{Content: "concurrent note"}))
		}()
	}
	wg.Wait()

	notes, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 50)
}
