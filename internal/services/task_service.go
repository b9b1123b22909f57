package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/todoapp/todo-api/internal/auth"
	"github.com/todoapp/todo-api/internal/cache"
	apierrors "github.com/todoapp/todo-api/internal/errors"
	"github.com/todoapp/todo-api/internal/models"
	"github.com/todoapp/todo-api/internal/repository"
	"github.com/todoapp/todo-api/internal/utils"
	"gorm.io/gorm"
)

// TaskService owns the Task lifecycle: ownership stamping, partial-update
// merge, and the cache invalidation that cascades into the User caches.
// User read models embed task data, so every Task mutation evicts the coarse
// User caches as well; without per-entity dependency tracking that is the
// only safe strategy.
type TaskService struct {
	repo  repository.TaskRepository
	store cache.Store
	now   func() time.Time
}

// NewTaskService creates a new TaskService. The clock defaults to time.Now;
// tests swap it for a fixed one.
func NewTaskService(repo repository.TaskRepository, store cache.Store) *TaskService {
	return &TaskService{
		repo:  repo,
		store: store,
		now:   time.Now,
	}
}

// FindAll returns a page of tasks, read-through the tasks cache.
func (s *TaskService) FindAll(ctx context.Context, page utils.PageInfo) ([]models.Task, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	key := cache.PageKey(page)
	var tasks []models.Task
	if s.store.Get(ctx, cache.Tasks, key, &tasks) {
		return tasks, nil
	}

	tasks, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	s.store.Put(ctx, cache.Tasks, key, tasks)
	return tasks, nil
}

// FindByID returns a task by id, read-through the taskById cache.
func (s *TaskService) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	key := cache.IDKey(id)
	var cached models.Task
	if s.store.Get(ctx, cache.TaskByID, key, &cached) {
		return &cached, nil
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFoundf("Task with id %d not found!", id)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	s.store.Put(ctx, cache.TaskByID, key, task)
	return task, nil
}

// Save persists a new task. A client-supplied author or timestamp is always
// discarded: the author is the current principal and both timestamps come
// from the injected clock.
func (s *TaskService) Save(ctx context.Context, model *models.Task) (*models.Task, error) {
	enriched, err := s.enrich(ctx, model)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, enriched)
	if err != nil {
		return nil, err
	}

	s.evictForAuthor(ctx, saved.AuthorID)
	return saved, nil
}

// Update merges the set fields of model into the stored task and persists
// the result. The existing row is resolved through the service's own cached
// FindByID so that cache population applies to internal reads too.
// CreatedAt and AuthorID are immutable post-creation and always carried over.
func (s *TaskService) Update(ctx context.Context, id uint64, model *models.Task) (*models.Task, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := s.merge(model, existing)

	updated, err := s.repo.Update(ctx, merged)
	if err != nil {
		return nil, err
	}

	s.store.Put(ctx, cache.TaskByID, cache.IDKey(id), updated)
	s.evictForAuthor(ctx, updated.AuthorID)
	return updated, nil
}

// DeleteByID removes a task. Not-found propagates from the cached lookup.
func (s *TaskService) DeleteByID(ctx context.Context, id uint64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}

	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.store.Evict(ctx, cache.TaskByID, cache.IDKey(id))
	s.store.EvictAll(ctx, cache.Tasks)
	s.store.EvictAll(ctx, cache.Users)
	s.store.EvictAll(ctx, cache.UserByID)
	s.store.EvictAll(ctx, cache.UserByName)
	return nil
}

// DeleteAll removes every task and flushes all five caches.
func (s *TaskService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}

	s.store.EvictAll(ctx, cache.TaskByID)
	s.store.EvictAll(ctx, cache.Tasks)
	s.store.EvictAll(ctx, cache.Users)
	s.store.EvictAll(ctx, cache.UserByID)
	s.store.EvictAll(ctx, cache.UserByName)
	return nil
}

// DeleteAllByAuthorID removes every task owned by the author. It backs the
// user-delete cascade.
func (s *TaskService) DeleteAllByAuthorID(ctx context.Context, authorID uint64) error {
	if err := s.repo.DeleteAllByAuthorID(ctx, authorID); err != nil {
		return fmt.Errorf("failed to delete tasks of author %d: %w", authorID, err)
	}

	s.evictAfterAuthorPurge(ctx, authorID)
	return nil
}

// enrich derives a storage-ready task from a client-supplied one.
func (s *TaskService) enrich(ctx context.Context, model *models.Task) (*models.Task, error) {
	principal, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apierrors.Unauthorizedf("Authentication required")
	}

	status := model.Status
	if status == "" {
		status = models.TaskStatusTodo
	}

	now := s.now()
	return &models.Task{
		Name:        model.Name,
		Description: model.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
		AuthorID:    principal.UserID,
	}, nil
}

// merge fills every unset field of the incoming partial task from the stored
// row and refreshes UpdatedAt.
func (s *TaskService) merge(model, existing *models.Task) *models.Task {
	merged := &models.Task{
		ID:          existing.ID,
		Name:        existing.Name,
		Description: existing.Description,
		Status:      existing.Status,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   s.now(),
		AuthorID:    existing.AuthorID,
	}
	if model.Name != "" {
		merged.Name = model.Name
	}
	if model.Description != "" {
		merged.Description = model.Description
	}
	if model.Status != "" {
		merged.Status = model.Status
	}
	return merged
}

// evictForAuthor is the invalidation table of save and update: the task list
// caches plus every User cache that may embed this author's tasks.
func (s *TaskService) evictForAuthor(ctx context.Context, authorID uint64) {
	s.store.EvictAll(ctx, cache.Tasks)
	s.store.EvictAll(ctx, cache.Users)
	s.store.Evict(ctx, cache.UserByID, cache.IDKey(authorID))
	s.store.EvictAll(ctx, cache.UserByName)
}

// evictAfterAuthorPurge is the invalidation table of the author-wide delete.
func (s *TaskService) evictAfterAuthorPurge(ctx context.Context, authorID uint64) {
	s.store.EvictAll(ctx, cache.TaskByID)
	s.store.EvictAll(ctx, cache.Tasks)
	s.store.EvictAll(ctx, cache.Users)
	s.store.Evict(ctx, cache.UserByID, cache.IDKey(authorID))
	s.store.EvictAll(ctx, cache.UserByName)
}
