package errors

import (
	"errors"
	"fmt"
)

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
)

// ========== 业务错误定义 ==========

var (
	// ErrDuplicateKey 唯一性冲突（如AppID重复）
	ErrDuplicateKey = errors.New("唯一性冲突")
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("资源不存在")
	// ErrAuthentication 认证失败（签名校验失败、配置已禁用等）
	ErrAuthentication = errors.New("认证失败")
	// ErrInvalidStateTransition 非法状态流转
	ErrInvalidStateTransition = errors.New("当前状态不允许此操作")
	// ErrCyclicHierarchy 部门层级出现环
	ErrCyclicHierarchy = errors.New("不能将部门移动到自己或自己的子部门下")
)

// ValidationError 字段级校验错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError 创建字段校验错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError 判断是否为校验错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
