package repository

import (
	"context"

	"github.com/todoapp/todo-api/internal/models"
	"github.com/todoapp/todo-api/internal/utils"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// WithTx rebinds the repository to a transaction
	WithTx(tx *gorm.DB) UserRepository

	// FindAll retrieves a page of users in primary-key order
	FindAll(ctx context.Context, page utils.PageInfo) ([]models.User, error)

	// FindByID finds a user by ID with the derived task list loaded
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username with the derived task list loaded
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Save persists a new user and returns it with the generated id
	Save(ctx context.Context, user *models.User) (*models.User, error)

	// Update persists every field of an existing user keyed by user.ID
	Update(ctx context.Context, user *models.User) (*models.User, error)

	// DeleteByID removes a user, reporting whether a row matched
	DeleteByID(ctx context.Context, id uint64) (bool, error)

	// ExistsByUsername reports whether any user has the username
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByUsernameExcludingID reports whether a different user has the username
	ExistsByUsernameExcludingID(ctx context.Context, username string, id uint64) (bool, error)

	// ExistsByEmail reports whether any user has the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByEmailExcludingID reports whether a different user has the email
	ExistsByEmailExcludingID(ctx context.Context, email string, id uint64) (bool, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// WithTx rebinds the repository to a transaction
	WithTx(tx *gorm.DB) TaskRepository

	// FindAll retrieves a page of tasks in primary-key order
	FindAll(ctx context.Context, page utils.PageInfo) ([]models.Task, error)

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// Save persists a new task and returns it with the generated id
	Save(ctx context.Context, task *models.Task) (*models.Task, error)

	// Update persists every field of an existing task keyed by task.ID
	Update(ctx context.Context, task *models.Task) (*models.Task, error)

	// DeleteByID removes a task, reporting whether a row matched
	DeleteByID(ctx context.Context, id uint64) (bool, error)

	// DeleteAll removes every task
	DeleteAll(ctx context.Context) error

	// DeleteAllByAuthorID removes every task owned by the author
	DeleteAllByAuthorID(ctx context.Context, authorID uint64) error
}
