package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context",
			setup: func(c *gin.Context) {
				c.Set("request_id", "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set("X-Request-ID", "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set("request_id", "ctx-id")
				c.Request.Header.Set("X-Request-ID", "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			tt.setup(c)

			id := getRequestID(c)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	data := map[string]string{"key": "value"}
	h.Success(c, data)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	data := []string{"item1", "item2"}
	h.SuccessWithMeta(c, data, 100, 1, 10)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(100), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.TotalPages)
}

func TestHandleDomainError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            shared.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name:           "already exists",
			err:            shared.ErrAlreadyExists,
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeAlreadyExists,
		},
		{
			name:           "concurrency conflict",
			err:            shared.ErrConcurrencyConflict,
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeConcurrencyConflict,
		},
		{
			name:           "insufficient stock",
			err:            shared.ErrInsufficientStock,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeInsufficientStock,
		},
		{
			name:           "invalid state",
			err:            shared.ErrInvalidState,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeInvalidState,
		},
		{
			name:           "domain validation code collapses",
			err:            shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeValidation,
		},
		{
			name:           "locked account",
			err:            shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked"),
			expectedStatus: http.StatusForbidden,
			expectedCode:   dto.ErrCodeAccountLocked,
		},
		{
			name:           "plain error",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}
