package packageRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourhub/database"
	"tourhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPackageRepo implements PackageRepository using MongoDB.
type MongoPackageRepo struct {
	coll *mongo.Collection
}

func NewMongoPackageRepo(db *mongo.Database) *MongoPackageRepo {
	return &MongoPackageRepo{coll: db.Collection(database.PackagesCollection)}
}

func (r *MongoPackageRepo) Create(ctx context.Context, pkg models.Package) (primitive.ObjectID, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	doc := bson.M(pkg)
	delete(doc, "_id")
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create package: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (r *MongoPackageRepo) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]models.Package, error) {
	defer cursor.Close(ctx)

	packages := []models.Package{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		packages = append(packages, models.Package(doc))
	}
	return packages, cursor.Err()
}

func (r *MongoPackageRepo) List(ctx context.Context) ([]models.Package, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	packages, err := r.decodeAll(ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode packages: %w", err)
	}
	return packages, nil
}

func (r *MongoPackageRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.Package, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var doc bson.M
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch package %s: %w", id.Hex(), err)
	}
	return models.Package(doc), nil
}

func (r *MongoPackageRepo) Sample(ctx context.Context, n int) ([]models.Package, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{{{Key: "$sample", Value: bson.M{"size": n}}}}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample packages: %w", err)
	}
	packages, err := r.decodeAll(ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sampled packages: %w", err)
	}
	return packages, nil
}

func (r *MongoPackageRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count packages: %w", err)
	}
	return n, nil
}
