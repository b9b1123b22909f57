package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/todoapp/todo-api/internal/constants"
	apierrors "github.com/todoapp/todo-api/internal/errors"
)

func TestPageInfoResolve(t *testing.T) {
	limit, offset, err := PageInfo{PageNumber: 1, PageSize: 10}.Resolve()
	require.NoError(t, err)
	require.Equal(t, 10, limit)
	require.Equal(t, 0, offset)

	limit, offset, err = PageInfo{PageNumber: 3, PageSize: 7}.Resolve()
	require.NoError(t, err)
	require.Equal(t, 7, limit)
	require.Equal(t, 14, offset)
}

func TestPageInfoResolveOffsetIncreasesWithPageNumber(t *testing.T) {
	prev := -1
	for page := 1; page <= 5; page++ {
		limit, offset, err := PageInfo{PageNumber: page, PageSize: 7}.Resolve()
		require.NoError(t, err)
		require.Equal(t, 7, limit)
		require.Greater(t, offset, prev)
		prev = offset
	}
}

func TestPageInfoValidateRejectsOutOfRange(t *testing.T) {
	cases := []PageInfo{
		{PageNumber: 1, PageSize: 0},
		{PageNumber: 1, PageSize: constants.MaxPageSize + 1},
		{PageNumber: 0, PageSize: 10},
		{PageNumber: -1, PageSize: 10},
	}
	for _, pageInfo := range cases {
		err := pageInfo.Validate()
		require.Error(t, err, "expected %+v to be rejected", pageInfo)
		require.True(t, apierrors.IsValidation(err))
	}
}

func TestGetPaginationParamsClampsQueryValues(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=3&size=50", nil)

	params := GetPaginationParams(c)
	require.Equal(t, 3, params.PageNumber)
	require.Equal(t, constants.DefaultPageSize, params.PageSize)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=-2&size=5", nil)

	params = GetPaginationParams(c)
	require.Equal(t, constants.MinPageNumber, params.PageNumber)
	require.Equal(t, 5, params.PageSize)
}
