package repository

import (
	"context"

	apierrors "github.com/todoapp/todo-api/internal/errors"
	"github.com/todoapp/todo-api/internal/models"
	"github.com/todoapp/todo-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// WithTx rebinds the repository to a transaction
func (r *GormTaskRepository) WithTx(tx *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: tx}
}

// FindAll retrieves a page of tasks in primary-key order
func (r *GormTaskRepository) FindAll(ctx context.Context, page utils.PageInfo) ([]models.Task, error) {
	limit, offset, err := page.Resolve()
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := r.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Save persists a new task and returns it with the generated id
func (r *GormTaskRepository) Save(ctx context.Context, task *models.Task) (*models.Task, error) {
	res := r.db.WithContext(ctx).Create(task)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apierrors.Persistencef("task insert returned no row")
	}
	return task, nil
}

// Update persists every field of an existing task keyed by task.ID
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", task.ID).
		Select("name", "description", "status", "created_at", "updated_at", "author_id").
		Updates(map[string]any{
			"name":        task.Name,
			"description": task.Description,
			"status":      task.Status,
			"created_at":  task.CreatedAt,
			"updated_at":  task.UpdatedAt,
			"author_id":   task.AuthorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apierrors.Persistencef("task update matched no row")
	}
	return task, nil
}

// DeleteByID removes a task, reporting whether a row matched
func (r *GormTaskRepository) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll removes every task
func (r *GormTaskRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Task{}).Error
}

// DeleteAllByAuthorID removes every task owned by the author
func (r *GormTaskRepository) DeleteAllByAuthorID(ctx context.Context, authorID uint64) error {
	return r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Delete(&models.Task{}).Error
}
