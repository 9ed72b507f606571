package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/mindora/wellness/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collUsers     = "users"
	collMoods     = "mood_entries"
	collJournals  = "journal_entries"
	collExercises = "exercise_sessions"
)

// NewMongoStore uses the collections of db. EnsureIndexes should run once at
// start-up.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Users:     &mongoUsers{db: db},
		Moods:     &mongoMoods{coll: db.Collection(collMoods)},
		Journals:  &mongoJournals{coll: db.Collection(collJournals)},
		Exercises: &mongoExercises{coll: db.Collection(collExercises)},
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	}
}

// EnsureIndexes creates the unique email index and the per-user date indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(collUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isSuperAdmin", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	for coll, field := range map[string]string{collMoods: "date", collJournals: "date", collExercises: "completedAt"} {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: field, Value: -1}},
		}); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}

func mongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

func findOptions(sortField string, limit int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type mongoUsers struct{ db *mongo.Database }

func (r *mongoUsers) coll() *mongo.Collection { return r.db.Collection(collUsers) }

func (r *mongoUsers) Create(ctx context.Context, user *models.User) error {
	if _, err := r.coll().InsertOne(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", mongoErr(err))
	}
	return nil
}

func (r *mongoUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, mongoErr(err)
	}
	return &user, nil
}

func (r *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	filter := bson.M{"email": bson.M{"$regex": "^" + regexp.QuoteMeta(email) + "$", "$options": "i"}}
	if err := r.coll().FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mongoErr(err)
	}
	return &user, nil
}

func (r *mongoUsers) List(ctx context.Context) ([]models.User, error) {
	users, err := findAll[models.User](ctx, r.coll(), bson.M{}, findOptions("createdAt", 0))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *mongoUsers) Update(ctx context.Context, user *models.User) error {
	res, err := r.coll().ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("update user: %w", mongoErr(err))
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUsers) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes entries before the user so that a partial failure never
// leaves orphaned data behind an existing account.
func (r *mongoUsers) Delete(ctx context.Context, id string) error {
	for _, name := range []string{collMoods, collJournals, collExercises} {
		if _, err := r.db.Collection(name).DeleteMany(ctx, bson.M{"userId": id}); err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
	}
	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUsers) HasSuperAdmin(ctx context.Context) (bool, error) {
	n, err := r.coll().CountDocuments(ctx, bson.M{"isSuperAdmin": true}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type mongoMoods struct{ coll *mongo.Collection }

func (r *mongoMoods) Create(ctx context.Context, entry *models.MoodEntry) error {
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("create mood entry: %w", err)
	}
	return nil
}

func (r *mongoMoods) ListByUser(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error) {
	return findAll[models.MoodEntry](ctx, r.coll, bson.M{"userId": userID}, findOptions("date", limit))
}

func (r *mongoMoods) ListAll(ctx context.Context) ([]models.MoodEntry, error) {
	return findAll[models.MoodEntry](ctx, r.coll, bson.M{}, findOptions("date", 0))
}

func (r *mongoMoods) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"userId": userID})
}

type mongoJournals struct{ coll *mongo.Collection }

func (r *mongoJournals) Create(ctx context.Context, entry *models.JournalEntry) error {
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("create journal entry: %w", err)
	}
	return nil
}

func (r *mongoJournals) FindByID(ctx context.Context, id string) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&entry); err != nil {
		return nil, mongoErr(err)
	}
	return &entry, nil
}

func (r *mongoJournals) ListByUser(ctx context.Context, userID string, limit int) ([]models.JournalEntry, error) {
	return findAll[models.JournalEntry](ctx, r.coll, bson.M{"userId": userID}, findOptions("date", limit))
}

func (r *mongoJournals) ListAll(ctx context.Context) ([]models.JournalEntry, error) {
	return findAll[models.JournalEntry](ctx, r.coll, bson.M{}, findOptions("date", 0))
}

func (r *mongoJournals) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"userId": userID})
}

func (r *mongoJournals) Update(ctx context.Context, entry *models.JournalEntry) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": entry.ID}, bson.M{"$set": bson.M{
		"content":   entry.Content,
		"title":     entry.Title,
		"date":      entry.Date,
		"updatedAt": entry.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update journal entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoJournals) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoExercises struct{ coll *mongo.Collection }

func (r *mongoExercises) Create(ctx context.Context, session *models.ExerciseSession) error {
	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("create exercise session: %w", err)
	}
	return nil
}

func (r *mongoExercises) ListByUser(ctx context.Context, userID string, limit int) ([]models.ExerciseSession, error) {
	return findAll[models.ExerciseSession](ctx, r.coll, bson.M{"userId": userID}, findOptions("completedAt", limit))
}

func (r *mongoExercises) ListAll(ctx context.Context) ([]models.ExerciseSession, error) {
	return findAll[models.ExerciseSession](ctx, r.coll, bson.M{}, findOptions("completedAt", 0))
}

func (r *mongoExercises) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"userId": userID})
}
