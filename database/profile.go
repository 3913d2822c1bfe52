package database

import (
	"tourhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProfileSet builds the $set document for a name/photo update under the given field paths.
func ProfileSet(nameKey, photoKey string, fields models.ProfileFields) bson.M {
	set := bson.M{}
	if fields.Name != nil {
		set[nameKey] = *fields.Name
	}
	if fields.Photo != nil {
		set[photoKey] = *fields.Photo
	}
	return set
}
