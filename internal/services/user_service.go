package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/todoapp/todo-api/internal/cache"
	apierrors "github.com/todoapp/todo-api/internal/errors"
	"github.com/todoapp/todo-api/internal/models"
	"github.com/todoapp/todo-api/internal/repository"
	"github.com/todoapp/todo-api/internal/security"
	"github.com/todoapp/todo-api/internal/utils"
	"gorm.io/gorm"
)

// UserService owns the User lifecycle: duplicate checking, password-hash
// policy, partial-update merge, and population/invalidation of the
// users, userById and userByName caches.
type UserService struct {
	db     *gorm.DB
	repo   repository.UserRepository
	tasks  *TaskService
	store  cache.Store
	hasher security.PasswordHasher
}

// NewUserService creates a new UserService. The db handle backs the
// transactional boundary of the delete cascade.
func NewUserService(
	db *gorm.DB,
	repo repository.UserRepository,
	tasks *TaskService,
	store cache.Store,
	hasher security.PasswordHasher,
) *UserService {
	return &UserService{
		db:     db,
		repo:   repo,
		tasks:  tasks,
		store:  store,
		hasher: hasher,
	}
}

// FindAll returns a page of users, read-through the users cache.
func (s *UserService) FindAll(ctx context.Context, page utils.PageInfo) ([]models.User, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	key := cache.PageKey(page)
	var users []models.User
	if s.store.Get(ctx, cache.Users, key, &users) {
		return users, nil
	}

	users, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	s.store.Put(ctx, cache.Users, key, users)
	return users, nil
}

// FindByID returns a user by id, read-through the userById cache.
func (s *UserService) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	key := cache.IDKey(id)
	var cached models.User
	if s.store.Get(ctx, cache.UserByID, key, &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFoundf("User with id %d not found!", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	s.store.Put(ctx, cache.UserByID, key, user)
	return user, nil
}

// FindByUsername returns a user by username, read-through the userByName cache.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var cached models.User
	if s.store.Get(ctx, cache.UserByName, username, &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFoundf("User with username %s not found!", username)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	s.store.Put(ctx, cache.UserByName, username, user)
	return user, nil
}

// Save persists a new user. Enrichment runs before the duplicate checks so
// the checked values are the final ones, and both run before the write.
func (s *UserService) Save(ctx context.Context, model *models.User) (*models.User, error) {
	enriched, err := s.enrich(model)
	if err != nil {
		return nil, err
	}

	if err := s.CheckDuplicateUsername(ctx, enriched.Username, nil); err != nil {
		return nil, err
	}
	if err := s.CheckDuplicateEmail(ctx, enriched.Email, nil); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, enriched)
	if err != nil {
		return nil, err
	}

	s.store.Put(ctx, cache.UserByName, saved.Username, saved)
	s.store.EvictAll(ctx, cache.Users)
	return saved, nil
}

// Update merges the set fields of model into the stored user and persists
// the result. The existing row is resolved through the service's own cached
// FindByID so that cache population applies to internal reads too.
func (s *UserService) Update(ctx context.Context, id uint64, model *models.User) (*models.User, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := s.merge(model, existing)
	if err != nil {
		return nil, err
	}

	if err := s.CheckDuplicateUsername(ctx, merged.Username, &merged.ID); err != nil {
		return nil, err
	}
	if err := s.CheckDuplicateEmail(ctx, merged.Email, &merged.ID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, merged)
	if err != nil {
		return nil, err
	}

	s.store.Put(ctx, cache.UserByID, cache.IDKey(id), updated)
	s.store.Put(ctx, cache.UserByName, updated.Username, updated)
	s.store.EvictAll(ctx, cache.Users)
	return updated, nil
}

// DeleteByID removes a user and, in the same storage transaction, every task
// the user owns. Not-found propagates from the cached lookup.
func (s *UserService) DeleteByID(ctx context.Context, id uint64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.tasks.repo.WithTx(tx).DeleteAllByAuthorID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete tasks of user %d: %w", id, err)
		}

		removed, err := s.repo.WithTx(tx).DeleteByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if !removed {
			return apierrors.NotFoundf("User with id %d not found!", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.tasks.evictAfterAuthorPurge(ctx, id)
	s.store.EvictAll(ctx, cache.UserByName)
	s.store.Evict(ctx, cache.UserByID, cache.IDKey(id))
	s.store.EvictAll(ctx, cache.Users)
	return nil
}

// CheckDuplicateUsername fails when a user other than excludingID already
// holds the username. Pass nil when creating. Storage errors propagate, they
// are never read as "does not exist".
func (s *UserService) CheckDuplicateUsername(ctx context.Context, username string, excludingID *uint64) error {
	var (
		exists bool
		err    error
	)
	if excludingID != nil {
		exists, err = s.repo.ExistsByUsernameExcludingID(ctx, username, *excludingID)
	} else {
		exists, err = s.repo.ExistsByUsername(ctx, username)
	}
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return apierrors.AlreadyExistsf("Username (%s) already exist!", username)
	}
	return nil
}

// CheckDuplicateEmail is the email counterpart of CheckDuplicateUsername.
func (s *UserService) CheckDuplicateEmail(ctx context.Context, email string, excludingID *uint64) error {
	var (
		exists bool
		err    error
	)
	if excludingID != nil {
		exists, err = s.repo.ExistsByEmailExcludingID(ctx, email, *excludingID)
	} else {
		exists, err = s.repo.ExistsByEmail(ctx, email)
	}
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return apierrors.AlreadyExistsf("Email (%s) already exist!", email)
	}
	return nil
}

// enrich derives a storage-ready user from a client-supplied one: the
// password is hashed and any client-supplied id is discarded.
func (s *UserService) enrich(model *models.User) (*models.User, error) {
	hashed, err := s.hasher.Hash(model.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &models.User{
		Username: model.Username,
		Password: hashed,
		Email:    model.Email,
		Role:     model.Role,
	}, nil
}

// merge fills every unset field of the incoming partial user from the stored
// row. An omitted password keeps the stored hash untouched; re-hashing the
// hash would corrupt the credential. A provided password is hashed fresh.
func (s *UserService) merge(model, existing *models.User) (*models.User, error) {
	// Tasks is derived data but must ride along: the merged value is what
	// gets put into userById/userByName, and a cached user without its task
	// list would serve an empty list until the next eviction.
	merged := &models.User{
		ID:       existing.ID,
		Username: existing.Username,
		Password: existing.Password,
		Email:    existing.Email,
		Role:     existing.Role,
		Tasks:    existing.Tasks,
	}
	if model.Username != "" {
		merged.Username = model.Username
	}
	if model.Password != "" {
		hashed, err := s.hasher.Hash(model.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		merged.Password = hashed
	}
	if model.Email != "" {
		merged.Email = model.Email
	}
	if model.Role != "" {
		merged.Role = model.Role
	}
	return merged, nil
}
