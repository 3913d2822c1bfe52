package userRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(db *mongo.Database) (*MongoUserRepo, error) {
	repo := &MongoUserRepo{coll: db.Collection(database.UsersCollection)}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	return user, nil
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := r.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id.Hex(), err)
	}
	return user, nil
}

func (r *MongoUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.Status != models.StatusNone {
		query["status"] = filter.Status
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepo) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s users: %w", role, err)
	}
	return n, nil
}

func (r *MongoUserRepo) updateOne(ctx context.Context, filter, set bson.M) (models.UpdateCount, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return models.UpdateCount{}, err
	}
	return models.UpdateCount{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

func (r *MongoUserRepo) UpdateProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error) {
	count, err := r.updateOne(ctx, bson.M{"email": email}, database.ProfileSet("name", "photo", fields))
	if err != nil {
		return count, fmt.Errorf("failed to update profile of %s: %w", email, err)
	}
	return count, nil
}

func (r *MongoUserRepo) SubmitGuideApplication(ctx context.Context, email string, app models.GuideApplication) (models.UpdateCount, error) {
	set := bson.M{
		"status":           models.StatusRequested,
		"guideApplication": app,
	}
	count, err := r.updateOne(ctx, bson.M{"email": email}, set)
	if err != nil {
		return count, fmt.Errorf("failed to store guide application of %s: %w", email, err)
	}
	return count, nil
}

func (r *MongoUserRepo) ApplyDecision(ctx context.Context, email string, decision models.ApplicationDecision) (models.UpdateCount, error) {
	set := bson.M{"status": decision.Status}
	if decision.Role != "" {
		set["role"] = decision.Role
	}
	if decision.ApprovedAt != nil {
		set["approvedAt"] = *decision.ApprovedAt
	}
	if decision.RejectedAt != nil {
		set["rejectedAt"] = *decision.RejectedAt
	}
	count, err := r.updateOne(ctx, bson.M{"email": email}, set)
	if err != nil {
		return count, fmt.Errorf("failed to record decision for %s: %w", email, err)
	}
	return count, nil
}

// PromoteRole is a single conditional update so concurrent promotions can
// never move a role backwards.
func (r *MongoUserRepo) PromoteRole(ctx context.Context, email string, from, to models.Role) (models.UpdateCount, error) {
	count, err := r.updateOne(ctx, bson.M{"email": email, "role": from}, bson.M{"role": to})
	if err != nil {
		return count, fmt.Errorf("failed to promote %s to %s: %w", email, to, err)
	}
	return count, nil
}

func (r *MongoUserRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete user with id %s: %w", id.Hex(), err)
	}
	return result.DeletedCount, nil
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}
