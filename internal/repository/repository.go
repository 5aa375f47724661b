package repository

import (
	"context"

	"fitbuilder/server/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound               = RepositoryError("not found")
	ErrConcurrentModification = RepositoryError("stored collection changed during write")
	ErrOwnerRequired          = RepositoryError("owner is required")
	ErrUserAlreadyExists      = RepositoryError("user with this email already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// RoutineRepository is the persistence boundary for saved routines.
// owner is the signed-in user id; the local store ignores it and serves
// guests. LoadAll never returns nil.
type RoutineRepository interface {
	LoadAll(ctx context.Context, owner string) ([]domain.Routine, error)
	Save(ctx context.Context, owner string, draft domain.RoutineDraft) (*domain.Routine, error)
	GetByID(ctx context.Context, owner, id string) (*domain.Routine, error)
	DeleteByID(ctx context.Context, owner, id string) error
}

// Slot is a single named blob: a browser storage key, a file, a Redis key
// or an object in a bucket.
type Slot interface {
	// Load returns found=false when nothing was ever stored under key.
	Load(ctx context.Context, key string) (data []byte, found bool, err error)
	Store(ctx context.Context, key string, data []byte) error
}

// CASSlot is a Slot that can replace a value only if it is unchanged.
// A nil old value means the key must still be absent.
type CASSlot interface {
	Slot
	CompareAndSwap(ctx context.Context, key string, old, next []byte) (swapped bool, err error)
}
