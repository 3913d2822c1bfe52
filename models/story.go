package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story is a travel story owned by its author.
type Story struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Text      string             `bson:"text" json:"text"`
	Images    []string           `bson:"images" json:"images"`
	Author    StoryAuthor        `bson:"author" json:"author"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// StoryAuthor is a snapshot of the author taken at creation time; name and
// photo are re-synced when the author edits their profile.
type StoryAuthor struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Photo string             `bson:"photo" json:"photo"`
	Role  Role               `bson:"role" json:"role"`
}
