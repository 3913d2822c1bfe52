package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) (*MongoBookingRepo, error) {
	repo := &MongoBookingRepo{coll: db.Collection(database.BookingsCollection)}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	res, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id.Hex(), err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListByTourist(ctx context.Context, email string, statuses []models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{"touristEmail": email}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	bookings, err := r.find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings of %s: %w", email, err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListByGuide(ctx context.Context, email string) ([]models.Booking, error) {
	bookings, err := r.find(ctx, bson.M{"guideEmail": email})
	if err != nil {
		return nil, fmt.Errorf("failed to list tours assigned to %s: %w", email, err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) updateMany(ctx context.Context, filter, set bson.M) (models.UpdateCount, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	result, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return models.UpdateCount{}, err
	}
	return models.UpdateCount{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

func (r *MongoBookingRepo) updateOne(ctx context.Context, id primitive.ObjectID, set bson.M) (models.UpdateCount, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return models.UpdateCount{}, err
	}
	return models.UpdateCount{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (models.UpdateCount, error) {
	count, err := r.updateOne(ctx, id, bson.M{"status": status})
	if err != nil {
		return count, fmt.Errorf("failed to update status of booking %s: %w", id.Hex(), err)
	}
	return count, nil
}

func (r *MongoBookingRepo) RecordPayment(ctx context.Context, id primitive.ObjectID, record models.PaymentRecord) (models.UpdateCount, error) {
	set := bson.M{
		"status":        record.Status,
		"transactionId": record.TransactionID,
		"paidAt":        record.PaidAt,
	}
	if record.Info != nil {
		set["paymentInfo"] = record.Info
	}
	count, err := r.updateOne(ctx, id, set)
	if err != nil {
		return count, fmt.Errorf("failed to record payment on booking %s: %w", id.Hex(), err)
	}
	return count, nil
}

func (r *MongoBookingRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete booking %s: %w", id.Hex(), err)
	}
	return result.DeletedCount, nil
}

func (r *MongoBookingRepo) SyncTouristProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error) {
	count, err := r.updateMany(ctx, bson.M{"touristEmail": email}, database.ProfileSet("touristName", "touristPhoto", fields))
	if err != nil {
		return count, fmt.Errorf("failed to sync tourist profile on bookings of %s: %w", email, err)
	}
	return count, nil
}

func (r *MongoBookingRepo) SyncGuideProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error) {
	count, err := r.updateMany(ctx, bson.M{"guideEmail": email}, database.ProfileSet("guideName", "guidePhoto", fields))
	if err != nil {
		return count, fmt.Errorf("failed to sync guide profile on bookings of %s: %w", email, err)
	}
	return count, nil
}

func (r *MongoBookingRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}

func (r *MongoBookingRepo) SumTotalPrice(ctx context.Context) (float64, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"total": bson.M{"$sum": bson.M{"$convert": bson.M{
				"input":   "$totalPrice",
				"to":      "double",
				"onError": 0,
				"onNull":  0,
			}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate booking totals: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode booking totals: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// ensureIndexes creates indexes for the tourist, guide and status lookups.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "touristEmail", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "guideEmail", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
