package handlers

import (
	"tmadmin/internal/services"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// PermissionHandler 权限处理器
type PermissionHandler struct {
	permissionService *services.PermissionService
}

// NewPermissionHandler 创建权限处理器
func NewPermissionHandler(permissionService *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// CreatePermissionRequest 创建权限请求
type CreatePermissionRequest struct {
	ConfigID         uint           `json:"config_id" binding:"required"`
	PermissionID     string         `json:"permission_id" binding:"required"`
	Name             string         `json:"name" binding:"required"`
	Description      string         `json:"description"`
	PermissionType   string         `json:"permission_type"`
	Attributes       datatypes.JSON `json:"attributes"`
	PermissionConfig datatypes.JSON `json:"permission_config"`
	OrderWeight      int            `json:"order_weight"`
}

// Create 创建权限
func (h *PermissionHandler) Create(c *gin.Context) {
	var req CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	perm, err := h.permissionService.Create(services.CreatePermissionParams{
		ConfigID:         req.ConfigID,
		PermissionID:     req.PermissionID,
		Name:             req.Name,
		Description:      req.Description,
		PermissionType:   req.PermissionType,
		Attributes:       req.Attributes,
		PermissionConfig: req.PermissionConfig,
		OrderWeight:      req.OrderWeight,
	})
	if err != nil {
		handleServiceError(c, err, "创建权限")
		return
	}
	response.Success(c, perm)
}

// List 权限列表
func (h *PermissionHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	perms, total, err := h.permissionService.GetWithFiltersAndPage(
		configID,
		c.Query("permission_type"),
		c.Query("status"),
		c.Query("keyword"),
		params.Page, params.PageSize,
	)
	if err != nil {
		response.ServerError(c, "查询权限失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, perms, pageInfo)
}

// GetByID 权限详情
func (h *PermissionHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	perm, err := h.permissionService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询权限")
		return
	}
	response.Success(c, perm)
}

// UpdatePermissionRequest 更新权限请求
type UpdatePermissionRequest struct {
	Name             *string        `json:"name"`
	Description      *string        `json:"description"`
	Status           *string        `json:"status" binding:"omitempty,oneof=active inactive"`
	Attributes       datatypes.JSON `json:"attributes"`
	PermissionConfig datatypes.JSON `json:"permission_config"`
	OrderWeight      *int           `json:"order_weight"`
}

// Update 更新权限
func (h *PermissionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	perm, err := h.permissionService.Update(id, services.UpdatePermissionParams{
		Name:             req.Name,
		Description:      req.Description,
		Status:           req.Status,
		Attributes:       req.Attributes,
		PermissionConfig: req.PermissionConfig,
		OrderWeight:      req.OrderWeight,
	})
	if err != nil {
		handleServiceError(c, err, "更新权限")
		return
	}
	response.Success(c, perm)
}

// Delete 删除权限
func (h *PermissionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.permissionService.Delete(id); err != nil {
		handleServiceError(c, err, "删除权限")
		return
	}
	response.Success(c, nil)
}
