package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
)

// ErrNotFound is returned when an entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert violates a uniqueness constraint.
var ErrConflict = errors.New("already exists")

// ProductFilter narrows a catalog listing. All supplied fields must match.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
}

// ProductRepository owns catalog records.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// CartRepository owns cart records, keyed by user id.
type CartRepository interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	// Delete removes the user's cart. Deleting a missing cart is a no-op.
	Delete(ctx context.Context, userID int64) error
}

// OrderRepository owns the append-only order log.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

// UserRepository owns registered accounts. Create must fail with
// ErrConflict when username or email is taken.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// ItemRepository owns the items CRUD demo records.
type ItemRepository interface {
	Create(ctx context.Context, it *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, it *domain.Item) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Item, error)
}

// VoterRepository owns the voting demo records.
type VoterRepository interface {
	Create(ctx context.Context, v *domain.Voter) error
	GetByID(ctx context.Context, id int64) (*domain.Voter, error)
	List(ctx context.Context) ([]domain.Voter, error)
}

// TxManager runs fn as one atomic unit. The in-memory implementation holds
// the global write lock for the duration.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}