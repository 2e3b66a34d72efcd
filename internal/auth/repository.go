package auth

import (
	"context"
	"strings"

	"github.com/talkincode/shopcore/internal/domain"
	"gorm.io/gorm"
)

// UserRepository handles database operations for staff accounts
type UserRepository interface {
	// Create inserts a new account; the unique index on username makes
	// duplicate inserts fail instead of overwriting
	Create(ctx context.Context, user *domain.SysUser) error

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id int64) (*domain.SysUser, error)

	// GetByUsername retrieves an account by username
	GetByUsername(ctx context.Context, username string) (*domain.SysUser, error)

	// Updates applies a partial column update
	Updates(ctx context.Context, id int64, values map[string]interface{}) error

	// List retrieves all accounts, newest first
	List(ctx context.Context) ([]domain.SysUser, error)

	// Delete removes an account; missing IDs are a no-op
	Delete(ctx context.Context, id int64) error
}

// GormUserRepository is the GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.SysUser) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateUsername
	}
	return err
}

func (r *GormUserRepository) GetByID(ctx context.Context, id int64) (*domain.SysUser, error) {
	var user domain.SysUser
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*domain.SysUser, error) {
	var user domain.SysUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) Updates(ctx context.Context, id int64, values map[string]interface{}) error {
	err := r.db.WithContext(ctx).Model(&domain.SysUser{}).Where("id = ?", id).Updates(values).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateUsername
	}
	return err
}

func (r *GormUserRepository) List(ctx context.Context) ([]domain.SysUser, error) {
	var users []domain.SysUser
	err := r.db.WithContext(ctx).Order("id DESC").Find(&users).Error
	return users, err
}

func (r *GormUserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.SysUser{}, id).Error
}

// isUniqueViolation matches unique-index failures across postgres and sqlite
// without importing driver-specific error types.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}
