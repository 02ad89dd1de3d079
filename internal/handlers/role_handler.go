package handlers

import (
	"tmadmin/internal/services"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// RoleHandler 角色处理器
type RoleHandler struct {
	roleService *services.RoleService
}

// NewRoleHandler 创建角色处理器
func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// CreateRoleRequest 创建角色请求
type CreateRoleRequest struct {
	ConfigID    uint           `json:"config_id" binding:"required"`
	RoleID      string         `json:"role_id" binding:"required"`
	RoleName    string         `json:"role_name" binding:"required"`
	RoleType    string         `json:"role_type"`
	Description string         `json:"description"`
	Permissions datatypes.JSON `json:"permissions"`
}

// Create 创建角色
func (h *RoleHandler) Create(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	role, err := h.roleService.Create(services.CreateRoleParams{
		ConfigID:    req.ConfigID,
		RoleID:      req.RoleID,
		RoleName:    req.RoleName,
		RoleType:    req.RoleType,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		handleServiceError(c, err, "创建角色")
		return
	}
	response.Success(c, role)
}

// List 角色列表
func (h *RoleHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	roles, total, err := h.roleService.GetWithFiltersAndPage(
		configID,
		c.Query("role_type"),
		c.Query("status"),
		c.Query("keyword"),
		params.Page, params.PageSize,
	)
	if err != nil {
		response.ServerError(c, "查询角色失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, roles, pageInfo)
}

// GetByID 角色详情
func (h *RoleHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询角色")
		return
	}
	response.Success(c, role)
}

// UpdateRoleRequest 更新角色请求
type UpdateRoleRequest struct {
	RoleName    *string        `json:"role_name"`
	Description *string        `json:"description"`
	Permissions datatypes.JSON `json:"permissions"`
	Status      *string        `json:"status" binding:"omitempty,oneof=active inactive"`
}

// Update 更新角色
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	role, err := h.roleService.Update(id, services.UpdateRoleParams{
		RoleName:    req.RoleName,
		Description: req.Description,
		Permissions: req.Permissions,
		Status:      req.Status,
	})
	if err != nil {
		handleServiceError(c, err, "更新角色")
		return
	}
	response.Success(c, role)
}

// Delete 删除角色
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roleService.Delete(id); err != nil {
		handleServiceError(c, err, "删除角色")
		return
	}
	response.Success(c, nil)
}
