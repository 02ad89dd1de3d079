package handlers

import (
	"time"

	"tmadmin/internal/models"
	"tmadmin/internal/services"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	ConfigID     uint   `json:"config_id" binding:"required"`
	UserID       string `json:"user_id" binding:"required"`
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone"`
	UserType     string `json:"user_type" binding:"omitempty,oneof=enterprise personal"`
	DepartmentID *uint  `json:"department_id"`
	Password     string `json:"password" binding:"omitempty,min=6"`
	IsAdmin      bool   `json:"is_admin"`
}

// Create 创建用户
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	user, err := h.userService.Create(services.CreateUserParams{
		ConfigID:     req.ConfigID,
		UserID:       req.UserID,
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		UserType:     req.UserType,
		DepartmentID: req.DepartmentID,
		Password:     req.Password,
		IsAdmin:      req.IsAdmin,
	})
	if err != nil {
		handleServiceError(c, err, "创建用户")
		return
	}
	response.Success(c, user)
}

// List 用户列表
func (h *UserHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}
	var departmentID *uint
	if id, ok := parseOptionalUintQuery(c, "department_id"); ok {
		departmentID = &id
	}

	users, total, err := h.userService.GetWithFiltersAndPage(
		configID,
		c.Query("status"),
		c.Query("user_type"),
		c.Query("keyword"),
		departmentID,
		params.Page, params.PageSize,
	)
	if err != nil {
		response.ServerError(c, "查询用户失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, users, pageInfo)
}

// GetByID 用户详情
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询用户")
		return
	}
	response.Success(c, user)
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Username     *string `json:"username"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	UserType     *string `json:"user_type" binding:"omitempty,oneof=enterprise personal"`
	DepartmentID *uint   `json:"department_id"`
	Status       *string `json:"status" binding:"omitempty,oneof=active inactive disabled"`
}

// Update 更新用户
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	user, err := h.userService.Update(id, services.UpdateUserParams{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		UserType:     req.UserType,
		DepartmentID: req.DepartmentID,
		Status:       req.Status,
	})
	if err != nil {
		handleServiceError(c, err, "更新用户")
		return
	}
	response.Success(c, user)
}

// Delete 删除用户
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(id); err != nil {
		handleServiceError(c, err, "删除用户")
		return
	}
	response.Success(c, nil)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ChangePassword 修改密码
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if err := h.userService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		handleServiceError(c, err, "修改密码")
		return
	}
	response.Success(c, nil)
}

// ========== 用户角色 ==========

// AssignUserRoleRequest 分配角色请求
type AssignUserRoleRequest struct {
	RoleID         uint       `json:"role_id" binding:"required"`
	ExpirationTime *time.Time `json:"expiration_time"`
}

// AssignRole 为用户分配角色
func (h *UserHandler) AssignRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AssignUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	assignment, err := h.userService.AssignRole(id, req.RoleID, operatorName(c), req.ExpirationTime)
	if err != nil {
		handleServiceError(c, err, "分配角色")
		return
	}
	response.Success(c, assignment)
}

// RevokeRole 撤销用户角色
func (h *UserHandler) RevokeRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(c, "assignmentId")
	if !ok {
		return
	}

	assignment, err := h.userService.RevokeRole(id, assignmentID)
	if err != nil {
		handleServiceError(c, err, "撤销角色")
		return
	}
	response.Success(c, assignment)
}

// GetRoles 用户角色分配列表
func (h *UserHandler) GetRoles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	roles, err := h.userService.GetUserRoles(id)
	if err != nil {
		response.ServerError(c, "查询用户角色失败: "+err.Error())
		return
	}
	response.Success(c, roles)
}

// updateStatus 更新用户状态的公共逻辑
func (h *UserHandler) updateStatus(c *gin.Context, status, action string) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.UpdateStatus(id, status)
	if err != nil {
		handleServiceError(c, err, action)
		return
	}
	response.Success(c, user)
}

// Activate 激活用户
func (h *UserHandler) Activate(c *gin.Context) {
	h.updateStatus(c, models.UserStatusActive, "激活用户")
}

// Deactivate 停用用户
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.updateStatus(c, models.UserStatusInactive, "停用用户")
}

// Disable 禁用用户
func (h *UserHandler) Disable(c *gin.Context) {
	h.updateStatus(c, models.UserStatusDisabled, "禁用用户")
}
