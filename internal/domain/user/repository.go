package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for users. The booking engine
// uses ExistsByID as its user directory.
type Repository interface {
	Save(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListAll(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
