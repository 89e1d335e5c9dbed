package repository

import (
	"context"
	"errors"
	"fmt"

	"notes-be/internal/entity"
	"notes-be/internal/pkg/serverutils"
	"notes-be/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type INoteRepository interface {
	GetAll(ctx context.Context) ([]*entity.Note, error)
	GetById(ctx context.Context, id primitive.ObjectID) (*entity.Note, error)
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	DeleteById(ctx context.Context, id primitive.ObjectID) error
}

type noteRepository struct {
	collection *mongo.Collection
}

func NewNoteRepository(db *mongo.Database, collection string) INoteRepository {
	return &noteRepository{collection: db.Collection(collection)}
}

// EnsureNoteSchema installs the note $jsonSchema validator on the collection.
func EnsureNoteSchema(ctx context.Context, db *mongo.Database, collection string) error {
	return database.EnsureCollectionValidator(ctx, db, collection, noteCollectionValidator())
}

func (r *noteRepository) GetAll(ctx context.Context) ([]*entity.Note, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}

	res := make([]*entity.Note, 0)
	if err := cursor.All(ctx, &res); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	return res, nil
}

func (r *noteRepository) GetById(ctx context.Context, id primitive.ObjectID) (*entity.Note, error) {
	var note entity.Note
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, serverutils.ErrNotFound
		}
		return nil, fmt.Errorf("find note %s: %w", id.Hex(), err)
	}

	return &note, nil
}

func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	if err := validateNote(note); err != nil {
		return err
	}

	note.Id = primitive.NewObjectID()
	note.Version = 0

	_, err := r.collection.InsertOne(ctx, note)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	return nil
}

func (r *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	if err := validateNote(note); err != nil {
		return err
	}

	var updated entity.Note
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": note.Id},
		bson.M{
			"$set": bson.M{"content": note.Content, "important": note.Important},
			"$inc": bson.M{"__v": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return serverutils.ErrNotFound
		}
		return fmt.Errorf("update note %s: %w", note.Id.Hex(), err)
	}

	*note = updated
	return nil
}

func (r *noteRepository) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id.Hex(), err)
	}
	return nil
}
