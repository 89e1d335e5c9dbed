package repository

import (
	"errors"
	"fmt"

	"notes-be/internal/constant"
	"notes-be/internal/entity"
	"notes-be/internal/pkg/serverutils"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseNoteId converts the external hex identifier into an ObjectID.
func ParseNoteId(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", serverutils.ErrMalformattedId, id)
	}
	return oid, nil
}

// validateNote enforces the note schema before any write reaches a store.
func validateNote(note *entity.Note) error {
	err := serverutils.Validator().Struct(note)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make([]serverutils.FieldError, 0, len(ve))
	for _, fe := range ve {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("Path `%s` is required.", fe.Field())
		case "min":
			msg = fmt.Sprintf("Path `%s` (`%v`) is shorter than the minimum allowed length (%s).", fe.Field(), fe.Value(), fe.Param())
		default:
			msg = fe.Error()
		}
		fields = append(fields, serverutils.FieldError{Field: fe.Field(), Message: msg})
	}

	return &serverutils.ValidationError{Model: constant.NoteModelName, Fields: fields}
}

// noteCollectionValidator mirrors the entity schema as a server-side
// $jsonSchema rule.
func noteCollectionValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"content"},
			"properties": bson.M{
				"content": bson.M{
					"bsonType":  "string",
					"minLength": constant.NoteContentMinLength,
				},
				"important": bson.M{"bsonType": "bool"},
				"__v":       bson.M{"bsonType": bson.A{"int", "long"}},
			},
		},
	}
}
