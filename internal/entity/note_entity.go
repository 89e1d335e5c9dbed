package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Note struct {
	Id        primitive.ObjectID `bson:"_id"`
	Content   string             `bson:"content" validate:"required,min=5"`
	Important bool               `bson:"important"`
	Version   int                `bson:"__v"`
}
