package models

import "go.mongodb.org/mongo-driver/bson"

// Package is a travel package. Its shape is owned by the admin UI, so it is
// stored and returned as an opaque document.
type Package bson.M
