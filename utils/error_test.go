package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorStatus(t *testing.T) {
	cases := map[error]int{
		Unauthorized("x"):                 http.StatusUnauthorized,
		Forbidden("x"):                    http.StatusForbidden,
		NotFound("x"):                     http.StatusNotFound,
		Validation("x"):                   http.StatusBadRequest,
		Internal("x", errors.New("boom")): http.StatusInternalServerError,
	}
	for err, want := range cases {
		var appErr *AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, want, appErr.Status(), err.Error())
	}
}

func TestIsKindSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("booking not found"))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindForbidden))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}

func TestRespondErrorWritesBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondError(c, Internal("failed to fetch", errors.New("connection reset")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Error)
	assert.Equal(t, "failed to fetch", body.Message)
	assert.Equal(t, "connection reset", body.Details)
	assert.True(t, c.IsAborted())
}

func TestRespondErrorTreatsUnknownErrorsAsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondError(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "boom")
}
