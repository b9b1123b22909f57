package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/todoapp/todo-api/internal/cache"
	"github.com/todoapp/todo-api/internal/constants"
	"github.com/todoapp/todo-api/internal/database"
	"github.com/todoapp/todo-api/internal/dto"
	"github.com/todoapp/todo-api/internal/middleware"
	"github.com/todoapp/todo-api/internal/models"
	"github.com/todoapp/todo-api/internal/repository"
	"github.com/todoapp/todo-api/internal/security"
	"github.com/todoapp/todo-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type taskTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	userService *services.UserService
}

func setupTaskTestEnv(t *testing.T) taskTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	store := cache.NewMemoryStore(cache.DefaultConfig(time.Minute))
	hasher := &security.BcryptHasher{Cost: bcrypt.MinCost}
	taskService := services.NewTaskService(repository.NewTaskRepository(db), store)
	userService := services.NewUserService(db, repository.NewUserRepository(db), taskService, store, hasher)

	authHandler := NewAuthHandler(userService, hasher)
	taskHandler := NewTaskHandler(taskService)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.POST("/api/auth/login", authHandler.Login)

	tasks := r.Group("/api/tasks")
	tasks.Use(middleware.RequireAuth())
	{
		tasks.GET("", middleware.RequireRole(models.RoleAdmin), taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
		tasks.DELETE("", middleware.RequireRole(models.RoleAdmin), taskHandler.DeleteAllTasks)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return taskTestEnv{
		db:          db,
		router:      r,
		userService: userService,
	}
}

// loginAs registers the user with the given role and returns the session
// cookies of a successful login.
func (env taskTestEnv) loginAs(t *testing.T, username string, role models.RoleType) []*http.Cookie {
	t.Helper()

	_, err := env.userService.Save(context.Background(), &models.User{
		Username: username,
		Password: "supersecret",
		Email:    username + "@example.com",
		Role:     role,
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": "supersecret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func (env taskTestEnv) request(t *testing.T, method, path string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_CreateStampsAuthor(t *testing.T) {
	env := setupTaskTestEnv(t)
	cookies := env.loginAs(t, "alice", models.RoleUser)

	w := env.request(t, http.MethodPost, "/api/tasks", map[string]string{
		"name":        "buy milk",
		"description": "two liters",
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Equal(t, "buy milk", created.Name)
	require.Equal(t, models.TaskStatusTodo, created.Status)
	require.NotZero(t, created.AuthorID)
	require.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestTaskHandler_CreateRequiresAuth(t *testing.T) {
	env := setupTaskTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/tasks", map[string]string{
		"name": "buy milk",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTaskHandler_GetNotFound(t *testing.T) {
	env := setupTaskTestEnv(t)
	cookies := env.loginAs(t, "alice", models.RoleUser)

	w := env.request(t, http.MethodGet, "/api/tasks/42", nil, cookies)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Task with id 42 not found!")
}

func TestTaskHandler_UpdateKeepsOmittedFields(t *testing.T) {
	env := setupTaskTestEnv(t)
	cookies := env.loginAs(t, "alice", models.RoleUser)

	w := env.request(t, http.MethodPost, "/api/tasks", map[string]string{
		"name":        "buy milk",
		"description": "two liters",
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.request(t, http.MethodPut, "/api/tasks/"+itoa(created.ID), map[string]string{
		"status": "DONE",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "buy milk", updated.Name)
	require.Equal(t, "two liters", updated.Description)
	require.Equal(t, models.TaskStatusDone, updated.Status)
	require.Equal(t, created.AuthorID, updated.AuthorID)
}

func TestTaskHandler_DeleteThenGet(t *testing.T) {
	env := setupTaskTestEnv(t)
	cookies := env.loginAs(t, "alice", models.RoleUser)

	w := env.request(t, http.MethodPost, "/api/tasks", map[string]string{
		"name": "buy milk",
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.request(t, http.MethodDelete, "/api/tasks/"+itoa(created.ID), nil, cookies)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, http.MethodGet, "/api/tasks/"+itoa(created.ID), nil, cookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_ListRequiresAdmin(t *testing.T) {
	env := setupTaskTestEnv(t)
	cookies := env.loginAs(t, "alice", models.RoleUser)

	w := env.request(t, http.MethodGet, "/api/tasks", nil, cookies)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskHandler_ListAsAdmin(t *testing.T) {
	env := setupTaskTestEnv(t)
	userCookies := env.loginAs(t, "alice", models.RoleUser)
	adminCookies := env.loginAs(t, "admin", models.RoleAdmin)

	w := env.request(t, http.MethodPost, "/api/tasks", map[string]string{
		"name": "buy milk",
	}, userCookies)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/tasks?page=1&size=10", nil, adminCookies)
	require.Equal(t, http.StatusOK, w.Code)

	var listed dto.TaskListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Tasks, 1)
	require.Equal(t, 1, listed.Pagination.Page)
	require.Equal(t, 10, listed.Pagination.Limit)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
