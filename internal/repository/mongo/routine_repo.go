package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const routineCollectionName = "routines"

// mongoRoutineRepository stores routines of signed-in users. Every query is
// scoped by owner, so one user can never read or delete another's routine.
type mongoRoutineRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoRoutineRepository creates a new Routine repository.
func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		collection: db.Collection(routineCollectionName),
		now:        time.Now,
	}
}

// LoadAll returns the owner's routines, newest first.
func (r *mongoRoutineRepository) LoadAll(ctx context.Context, owner string) ([]domain.Routine, error) {
	if owner == "" {
		return nil, repository.ErrOwnerRequired
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": owner}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	routines := []domain.Routine{}
	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

// Save validates the draft and inserts it with a fresh ObjectID.
func (r *mongoRoutineRepository) Save(ctx context.Context, owner string, draft domain.RoutineDraft) (*domain.Routine, error) {
	if owner == "" {
		return nil, repository.ErrOwnerRequired
	}
	if err := domain.ValidateRoutine(draft); err != nil {
		return nil, err
	}

	routine := &domain.Routine{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    owner,
		Name:      strings.TrimSpace(draft.Name),
		Entries:   domain.CloneEntries(draft.Entries),
		CreatedAt: r.now().UTC().Truncate(time.Millisecond), // BSON dates keep milliseconds
	}
	if _, err := r.collection.InsertOne(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}

func (r *mongoRoutineRepository) GetByID(ctx context.Context, owner, id string) (*domain.Routine, error) {
	if owner == "" {
		return nil, repository.ErrOwnerRequired
	}

	var routine domain.Routine
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": owner}).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// DeleteByID removes one of the owner's routines. A routine owned by
// someone else is reported as not found.
func (r *mongoRoutineRepository) DeleteByID(ctx context.Context, owner, id string) error {
	if owner == "" {
		return repository.ErrOwnerRequired
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": owner})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRoutineIndexes creates the index backing the per-user listing.
func EnsureRoutineIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warnf("failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
