package handlers

import (
	"tmadmin/internal/services"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// DepartmentHandler 部门处理器
type DepartmentHandler struct {
	departmentService *services.DepartmentService
}

// NewDepartmentHandler 创建部门处理器
func NewDepartmentHandler(departmentService *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	ConfigID     uint   `json:"config_id" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ParentID     *uint  `json:"parent_id"`
	OrderWeight  int    `json:"order_weight"`
}

// Create 创建部门
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	dept, err := h.departmentService.Create(services.CreateDepartmentParams{
		ConfigID:     req.ConfigID,
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Description:  req.Description,
		ParentID:     req.ParentID,
		OrderWeight:  req.OrderWeight,
	})
	if err != nil {
		handleServiceError(c, err, "创建部门")
		return
	}
	response.Success(c, dept)
}

// List 部门列表
func (h *DepartmentHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	depts, total, err := h.departmentService.GetWithFiltersAndPage(
		configID,
		c.Query("status"),
		c.Query("keyword"),
		params.Page, params.PageSize,
	)
	if err != nil {
		response.ServerError(c, "查询部门失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, depts, pageInfo)
}

// GetTree 部门树
func (h *DepartmentHandler) GetTree(c *gin.Context) {
	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	tree, err := h.departmentService.GetTree(configID)
	if err != nil {
		response.ServerError(c, "查询部门树失败: "+err.Error())
		return
	}
	response.Success(c, tree)
}

// GetByID 部门详情
func (h *DepartmentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dept, err := h.departmentService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询部门")
		return
	}
	response.Success(c, dept)
}

// UpdateDepartmentRequest 更新部门请求
type UpdateDepartmentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	OrderWeight *int    `json:"order_weight"`
	Status      *string `json:"status"`
}

// Update 更新部门基本信息
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	dept, err := h.departmentService.Update(id, services.UpdateDepartmentParams{
		Name:        req.Name,
		Description: req.Description,
		OrderWeight: req.OrderWeight,
		Status:      req.Status,
	})
	if err != nil {
		handleServiceError(c, err, "更新部门")
		return
	}
	response.Success(c, dept)
}

// MoveDepartmentRequest 移动部门请求
type MoveDepartmentRequest struct {
	ParentID *uint `json:"parent_id"` // 为空表示移动到根
}

// Move 移动部门，子树的层级和路径联动更新
func (h *DepartmentHandler) Move(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MoveDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if err := h.departmentService.Move(id, req.ParentID); err != nil {
		handleServiceError(c, err, "移动部门")
		return
	}

	dept, err := h.departmentService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询部门")
		return
	}
	response.Success(c, dept)
}

// Delete 删除部门
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.departmentService.Delete(id); err != nil {
		handleServiceError(c, err, "删除部门")
		return
	}
	response.Success(c, nil)
}
