package handlers

import (
	stderrors "errors"
	"strconv"

	"tmadmin/pkg/errors"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的数字ID，失败时已写入响应
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// parseOptionalUintQuery 解析可选的数字查询参数
func parseOptionalUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// handleServiceError 将服务层错误映射为统一响应
func handleServiceError(c *gin.Context, err error, opName string) {
	switch {
	case stderrors.Is(err, errors.ErrNotFound):
		response.NotFound(c, opName+"失败: 资源不存在")
	case stderrors.Is(err, errors.ErrDuplicateKey):
		response.BadRequest(c, opName+"失败: "+err.Error())
	case stderrors.Is(err, errors.ErrAuthentication):
		response.Unauthorized(c, opName+"失败: "+err.Error())
	case stderrors.Is(err, errors.ErrInvalidStateTransition),
		stderrors.Is(err, errors.ErrCyclicHierarchy),
		errors.IsValidationError(err):
		response.BadRequest(c, opName+"失败: "+err.Error())
	default:
		response.ServerError(c, opName+"失败: "+err.Error())
	}
}
