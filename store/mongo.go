package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/niteen-codes/go-eventhub/models"
)

const opTimeout = 5 * time.Second

// Mongo persists users and events in a MongoDB database.
type Mongo struct {
	events *mongo.Collection
	users  *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		events: db.Collection("events"),
		users:  db.Collection("users"),
	}
}

// EnsureIndexes creates the unique username index. Called once at startup.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

func (m *Mongo) InsertEvent(ctx context.Context, ev *models.Event) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := m.events.InsertOne(ctx, ev)
	if err != nil {
		return nil, err
	}
	ev.ID = res.InsertedID.(primitive.ObjectID)
	return ev, nil
}

func (m *Mongo) FindEventByID(ctx context.Context, id string) (*models.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id can never match a record
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var ev models.Event
	if err := m.events.FindOne(ctx, bson.M{"_id": oid}).Decode(&ev); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (m *Mongo) FindEvents(ctx context.Context, f EventFilter) ([]models.Event, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.From != nil {
		filter["date"] = bson.M{"$gte": *f.From}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := m.events.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (m *Mongo) PatchEvent(ctx context.Context, id string, fields map[string]interface{}) (*models.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	return m.findOneAndUpdate(ctx, oid, bson.M{"$set": set})
}

func (m *Mongo) DeleteEvent(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := m.events.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddAttendee appends userID with $addToSet, so a duplicate attend is a
// no-op and two concurrent attends cannot lose each other's write.
func (m *Mongo) AddAttendee(ctx context.Context, id, userID string) (*models.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return m.findOneAndUpdate(ctx, oid, bson.M{"$addToSet": bson.M{"attendees": userID}})
}

// RemoveAttendee pulls userID from the attendee list; absent is a no-op.
func (m *Mongo) RemoveAttendee(ctx context.Context, id, userID string) (*models.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return m.findOneAndUpdate(ctx, oid, bson.M{"$pull": bson.M{"attendees": userID}})
}

func (m *Mongo) findOneAndUpdate(ctx context.Context, oid primitive.ObjectID, update bson.M) (*models.Event, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ev models.Event
	err := m.events.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ev)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (m *Mongo) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := m.users.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return u, nil
}

func (m *Mongo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.findUser(ctx, bson.M{"username": username})
}

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findUser(ctx, bson.M{"email": email})
}

func (m *Mongo) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var u models.User
	if err := m.users.FindOne(ctx, filter).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (m *Mongo) SetResetOTP(ctx context.Context, userID, hashedOTP string, expiry time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"reset_otp":     hashedOTP,
		"reset_otp_exp": expiry,
	}}
	res, err := m.users.UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the password hash and clears any pending OTP.
func (m *Mongo) UpdatePassword(ctx context.Context, userID, newHash string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{
		"$set":   bson.M{"password_hash": newHash},
		"$unset": bson.M{"reset_otp": "", "reset_otp_exp": ""},
	}
	res, err := m.users.UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
