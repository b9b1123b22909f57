package repository

import (
	"context"

	apierrors "github.com/todoapp/todo-api/internal/errors"
	"github.com/todoapp/todo-api/internal/models"
	"github.com/todoapp/todo-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// WithTx rebinds the repository to a transaction
func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	return &GormUserRepository{db: tx}
}

// FindAll retrieves a page of users in primary-key order
func (r *GormUserRepository) FindAll(ctx context.Context, page utils.PageInfo) ([]models.User, error) {
	limit, offset, err := page.Resolve()
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID finds a user by ID with the derived task list loaded
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Tasks").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username with the derived task list loaded
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Tasks").
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Save persists a new user and returns it with the generated id
func (r *GormUserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	res := r.db.WithContext(ctx).Create(user)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apierrors.Persistencef("user insert returned no row")
	}
	return user, nil
}

// Update persists every field of an existing user keyed by user.ID
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Select("username", "password", "email", "role").
		Updates(map[string]any{
			"username": user.Username,
			"password": user.Password,
			"email":    user.Email,
			"role":     user.Role,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apierrors.Persistencef("user update matched no row")
	}
	return user, nil
}

// DeleteByID removes a user, reporting whether a row matched
func (r *GormUserRepository) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ExistsByUsername reports whether any user has the username
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// ExistsByUsernameExcludingID reports whether a different user has the username
func (r *GormUserRepository) ExistsByUsernameExcludingID(ctx context.Context, username string, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? AND id <> ?", username, id).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail reports whether any user has the email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmailExcludingID reports whether a different user has the email
func (r *GormUserRepository) ExistsByEmailExcludingID(ctx context.Context, email string, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ? AND id <> ?", email, id).
		Count(&count).Error
	return count > 0, err
}
