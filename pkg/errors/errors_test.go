package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("subject", "会议主题不能为空")
	assert.Equal(t, "subject: 会议主题不能为空", err.Error())

	bare := NewValidationError("", "参数错误")
	assert.Equal(t, "参数错误", bare.Error())
}

func TestIsValidationError(t *testing.T) {
	err := NewValidationError("name", "不能为空")
	assert.True(t, IsValidationError(err))

	// 包装后仍可识别
	wrapped := fmt.Errorf("创建失败: %w", err)
	assert.True(t, IsValidationError(wrapped))

	assert.False(t, IsValidationError(ErrNotFound))
	assert.False(t, IsValidationError(nil))
}
