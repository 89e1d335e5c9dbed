package repository

import (
	"context"
	"sync"

	"notes-be/internal/entity"
	"notes-be/internal/pkg/serverutils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ INoteRepository = (*noteMemoryRepository)(nil)

// noteMemoryRepository keeps notes in process memory. It applies the same
// schema and id rules as the MongoDB store and lists in insertion order.
type noteMemoryRepository struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	notes map[primitive.ObjectID]entity.Note
}

func NewNoteMemoryRepository() INoteRepository {
	return &noteMemoryRepository{
		notes: make(map[primitive.ObjectID]entity.Note),
	}
}

func (r *noteMemoryRepository) GetAll(ctx context.Context) ([]*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*entity.Note, 0, len(r.order))
	for _, id := range r.order {
		note := r.notes[id]
		res = append(res, &note)
	}

	return res, nil
}

func (r *noteMemoryRepository) GetById(ctx context.Context, id primitive.ObjectID) (*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, serverutils.ErrNotFound
	}

	return &note, nil
}

func (r *noteMemoryRepository) Create(ctx context.Context, note *entity.Note) error {
	if err := validateNote(note); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	note.Id = primitive.NewObjectID()
	note.Version = 0

	r.notes[note.Id] = *note
	r.order = append(r.order, note.Id)

	return nil
}

func (r *noteMemoryRepository) Update(ctx context.Context, note *entity.Note) error {
	if err := validateNote(note); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.notes[note.Id]
	if !ok {
		return serverutils.ErrNotFound
	}

	stored.Content = note.Content
	stored.Important = note.Important
	stored.Version++

	r.notes[note.Id] = stored
	*note = stored

	return nil
}

func (r *noteMemoryRepository) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return nil
	}

	delete(r.notes, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}
