package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	notFound := New(ErrCodeBookNotFound, "图书不存在")

	t.Run("同码不同消息视为同一类错误", func(t *testing.T) {
		err := Newf(ErrCodeBookNotFound, "图书不存在: id=%d", 7)
		assert.True(t, errors.Is(err, notFound))
	})

	t.Run("被fmt包装后仍可识别", func(t *testing.T) {
		err := fmt.Errorf("加载购物车: %w", Newf(ErrCodeBookNotFound, "图书不存在: id=%d", 7))
		assert.True(t, errors.Is(err, notFound))
		assert.True(t, HasCode(err, ErrCodeBookNotFound))
	})

	t.Run("不同码不相等", func(t *testing.T) {
		assert.False(t, errors.Is(New(ErrCodeOrderNotFound, "x"), notFound))
	})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeCategoryNotFound, http.StatusNotFound},
		{ErrCodeEmailDuplicate, http.StatusConflict},
		{ErrCodeDuplicateEntry, http.StatusConflict},
		{ErrCodeEmptyCart, http.StatusUnprocessableEntity},
		{ErrCodeInvalidOrderStatus, http.StatusUnprocessableEntity},
		{ErrCodeInvalidParams, http.StatusBadRequest},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("code=%d", tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		appErr := GetAppError(errors.New("connection refused"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.EqualError(t, appErr.Err, "connection refused")
	})

	t.Run("AppError原样返回", func(t *testing.T) {
		original := New(ErrCodeEmptyCart, "购物车为空")
		assert.Same(t, original, GetAppError(original))
	})
}

func TestWrapCode(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := WrapCode(ErrCodeRedisError, cause, "保存会话失败")

	assert.True(t, HasCode(err, ErrCodeRedisError))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}
