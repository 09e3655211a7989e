package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/domain"
)

// OpenUserDB opens (creating if needed) the SQLite accounts database and
// migrates the users table. TranslateError turns the driver's unique
// constraint failures into gorm.ErrDuplicatedKey.
func OpenUserDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return nil, err
	}
	return db, nil
}

// UserDB stores accounts in SQLite via GORM. Uniqueness of username and
// email is enforced by the table's unique indexes, so concurrent inserts of
// the same name cannot both succeed.
type UserDB struct {
	db *gorm.DB
}

func NewUserDB(db *gorm.DB) *UserDB { return &UserDB{db: db} }

var _ UserRepository = (*UserDB)(nil)

func (r *UserDB) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserDB) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserDB) List(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
