package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/todoapp/todo-api/internal/constants"
	apierrors "github.com/todoapp/todo-api/internal/errors"
)

// PageInfo is the per-request page descriptor used by both list queries.
// Pages are 1-based: the first page is PageNumber 1.
type PageInfo struct {
	PageNumber int
	PageSize   int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Validate defensively rejects out-of-range values. Handlers clamp query
// parameters before calling the services, but the contract still refuses a
// bad descriptor handed to it directly.
func (p PageInfo) Validate() error {
	if p.PageSize < constants.MinPageSize || p.PageSize > constants.MaxPageSize {
		return apierrors.Validationf(
			"Field pageSize must be between %d and %d, got %d",
			constants.MinPageSize, constants.MaxPageSize, p.PageSize,
		)
	}
	if p.PageNumber < constants.MinPageNumber {
		return apierrors.Validationf(
			"Field pageNumber must not be less than %d, got %d",
			constants.MinPageNumber, p.PageNumber,
		)
	}
	return nil
}

// Resolve converts the descriptor into a bounded LIMIT/OFFSET window:
// limit = pageSize, offset = (pageNumber-1) * pageSize.
func (p PageInfo) Resolve() (limit, offset int, err error) {
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}
	return p.PageSize, (p.PageNumber - 1) * p.PageSize, nil
}

// GetPaginationParams extracts and clamps pagination parameters from the request
func GetPaginationParams(c *gin.Context) PageInfo {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageNumber)))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageNumber {
		page = constants.MinPageNumber
	}
	if size < constants.MinPageSize || size > constants.MaxPageSize {
		size = constants.DefaultPageSize
	}

	return PageInfo{
		PageNumber: page,
		PageSize:   size,
	}
}
