package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/respawnadega/storefront/internal/interfaces/http/dto"
	"github.com/respawnadega/storefront/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/test", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_Success(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "")
		h.Success(c, map[string]string{"id": "4"})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		assert.Nil(t, resp.Meta)
	})

	t.Run("list carries total", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "")
		h.SuccessList(c, []int{1, 2, 3}, 3)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 3, resp.Meta.Total)
	})

	t.Run("created", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "")
		h.Created(c, nil)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"product unavailable", shared.ErrProductUnavailable, http.StatusUnprocessableEntity, dto.ErrCodeProductUnavailable},
		{"empty cart", shared.ErrEmptyCart, http.StatusUnprocessableEntity, dto.ErrCodeEmptyCart},
		{"invalid address", shared.NewDomainError("INVALID_ADDRESS", "CEP inválido"), http.StatusBadRequest, dto.ErrCodeInvalidAddress},
		{"source unavailable", shared.ErrSourceUnavailable, http.StatusServiceUnavailable, dto.ErrCodeSourceUnavailable},
		{"wrapped domain error", fmt.Errorf("add item: %w", shared.ErrInvalidQuantity), http.StatusBadRequest, dto.ErrCodeInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(http.MethodGet, "")
			c.Set("request_id", "req-1")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}

	t.Run("unexpected errors are logged and hidden", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodGet, "")
		c.Set("logger", zap.New(core))

		h.HandleError(c, errors.New("redis: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "redis")
		assert.Equal(t, 1, logs.FilterMessage("Unhandled error").Len())
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodGet, "")
		h.HandleError(c, nil)
		assert.False(t, c.Writer.Written())
		assert.Empty(t, w.Body.String())
	})
}

func TestBaseHandler_BindError(t *testing.T) {
	type request struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
	}

	t.Run("validation failure lists fields", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodPost, `{"quantity": -1}`)

		var req request
		err := c.ShouldBindJSON(&req)
		require.Error(t, err)
		h.BindError(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		fields := make([]string, 0, len(resp.Error.Details))
		for _, d := range resp.Error.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"product_id", "quantity"}, fields)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodPost, `{"product_id":`)

		var req request
		h.BindError(c, c.ShouldBindJSON(&req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decodeResponse(t, w).Error.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodPost, `{"product_id":"`+strings.Repeat("x", 64)+`"}`)
		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 16)

		var req request
		h.BindError(c, c.ShouldBindJSON(&req))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, dto.ErrCodeRequestTooLarge, decodeResponse(t, w).Error.Code)
	})
}

func TestBaseHandler_ErrorUsesRequestIDMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	h := &BaseHandler{}
	engine.GET("/missing", func(c *gin.Context) { h.NotFound(c, "nope") })

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "abc-123", decodeResponse(t, w).Error.RequestID)
}
