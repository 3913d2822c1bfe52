package storyRepo

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStoryRepo implements StoryRepository using MongoDB.
type MongoStoryRepo struct {
	coll *mongo.Collection
}

func NewMongoStoryRepo(db *mongo.Database) (*MongoStoryRepo, error) {
	repo := &MongoStoryRepo{coll: db.Collection(database.StoriesCollection)}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoStoryRepo) Create(ctx context.Context, story *models.Story) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now()
	}
	if story.Images == nil {
		story.Images = []string{}
	}
	res, err := r.coll.InsertOne(ctx, story)
	if err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		story.ID = oid
	}
	return nil
}

func (r *MongoStoryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Story, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var story models.Story
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&story); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch story %s: %w", id.Hex(), err)
	}
	return &story, nil
}

func (r *MongoStoryRepo) find(ctx context.Context, filter bson.M) ([]models.Story, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stories := []models.Story{}
	if err := cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *MongoStoryRepo) ListAll(ctx context.Context) ([]models.Story, error) {
	stories, err := r.find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

func (r *MongoStoryRepo) ListByAuthor(ctx context.Context, email string) ([]models.Story, error) {
	stories, err := r.find(ctx, bson.M{"author.email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to list stories of %s: %w", email, err)
	}
	return stories, nil
}

func (r *MongoStoryRepo) update(ctx context.Context, filter, update bson.M, many bool) (models.UpdateCount, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var (
		result *mongo.UpdateResult
		err    error
	)
	if many {
		result, err = r.coll.UpdateMany(ctx, filter, update)
	} else {
		result, err = r.coll.UpdateOne(ctx, filter, update)
	}
	if err != nil {
		return models.UpdateCount{}, err
	}
	return models.UpdateCount{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

func (r *MongoStoryRepo) UpdateText(ctx context.Context, id primitive.ObjectID, title, text *string) (models.UpdateCount, error) {
	set := bson.M{}
	if title != nil {
		set["title"] = *title
	}
	if text != nil {
		set["text"] = *text
	}
	count, err := r.update(ctx, bson.M{"_id": id}, bson.M{"$set": set}, false)
	if err != nil {
		return count, fmt.Errorf("failed to update story %s: %w", id.Hex(), err)
	}
	return count, nil
}

func (r *MongoStoryRepo) PushImages(ctx context.Context, id primitive.ObjectID, images []string) (models.UpdateCount, error) {
	update := bson.M{"$push": bson.M{"images": bson.M{"$each": images}}}
	count, err := r.update(ctx, bson.M{"_id": id}, update, false)
	if err != nil {
		return count, fmt.Errorf("failed to add images to story %s: %w", id.Hex(), err)
	}
	return count, nil
}

func (r *MongoStoryRepo) PullImage(ctx context.Context, id primitive.ObjectID, image string) (models.UpdateCount, error) {
	update := bson.M{"$pull": bson.M{"images": image}}
	count, err := r.update(ctx, bson.M{"_id": id}, update, false)
	if err != nil {
		return count, fmt.Errorf("failed to remove image from story %s: %w", id.Hex(), err)
	}
	return count, nil
}

func (r *MongoStoryRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete story %s: %w", id.Hex(), err)
	}
	return result.DeletedCount, nil
}

func (r *MongoStoryRepo) SyncAuthorProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error) {
	set := database.ProfileSet("author.name", "author.photo", fields)
	count, err := r.update(ctx, bson.M{"author.email": email}, bson.M{"$set": set}, true)
	if err != nil {
		return count, fmt.Errorf("failed to sync author profile on stories of %s: %w", email, err)
	}
	return count, nil
}

func (r *MongoStoryRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count stories: %w", err)
	}
	return n, nil
}

func (r *MongoStoryRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author.email", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create story indexes: %w", err)
	}
	return nil
}
