package handlers

import (
	"time"

	"tmadmin/internal/services"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// LayoutHandler 布局目录处理器
type LayoutHandler struct {
	layoutService *services.LayoutService
}

// NewLayoutHandler 创建布局目录处理器
func NewLayoutHandler(layoutService *services.LayoutService) *LayoutHandler {
	return &LayoutHandler{layoutService: layoutService}
}

// CreateLayoutRequest 创建布局请求
type CreateLayoutRequest struct {
	ConfigID       uint           `json:"config_id" binding:"required"`
	LayoutID       string         `json:"layout_id" binding:"required"`
	Name           string         `json:"name" binding:"required"`
	Description    string         `json:"description"`
	LayoutType     string         `json:"layout_type" binding:"omitempty,oneof=grid speaker sidebar custom"`
	LayoutConfig   datatypes.JSON `json:"layout_config"`
	OrderWeight    int            `json:"order_weight"`
	ExpirationTime *time.Time     `json:"expiration_time"`
}

// Create 创建布局
func (h *LayoutHandler) Create(c *gin.Context) {
	var req CreateLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	layout, err := h.layoutService.Create(services.CreateLayoutParams{
		ConfigID:       req.ConfigID,
		LayoutID:       req.LayoutID,
		Name:           req.Name,
		Description:    req.Description,
		LayoutType:     req.LayoutType,
		LayoutConfig:   req.LayoutConfig,
		OrderWeight:    req.OrderWeight,
		ExpirationTime: req.ExpirationTime,
	})
	if err != nil {
		handleServiceError(c, err, "创建布局")
		return
	}
	response.Success(c, layout)
}

// List 布局列表
func (h *LayoutHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	layouts, total, err := h.layoutService.GetWithFiltersAndPage(
		configID,
		c.Query("layout_type"),
		c.Query("status"),
		c.Query("keyword"),
		params.Page, params.PageSize,
	)
	if err != nil {
		response.ServerError(c, "查询布局失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, layouts, pageInfo)
}

// GetByID 布局详情
func (h *LayoutHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	layout, err := h.layoutService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询布局")
		return
	}
	response.Success(c, layout)
}

// UpdateLayoutRequest 更新布局请求
type UpdateLayoutRequest struct {
	Name           *string        `json:"name"`
	Description    *string        `json:"description"`
	LayoutType     *string        `json:"layout_type" binding:"omitempty,oneof=grid speaker sidebar custom"`
	LayoutConfig   datatypes.JSON `json:"layout_config"`
	Status         *string        `json:"status" binding:"omitempty,oneof=active inactive"`
	OrderWeight    *int           `json:"order_weight"`
	ExpirationTime *time.Time     `json:"expiration_time"`
}

// Update 更新布局
func (h *LayoutHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	layout, err := h.layoutService.Update(id, services.UpdateLayoutParams{
		Name:           req.Name,
		Description:    req.Description,
		LayoutType:     req.LayoutType,
		LayoutConfig:   req.LayoutConfig,
		Status:         req.Status,
		OrderWeight:    req.OrderWeight,
		ExpirationTime: req.ExpirationTime,
	})
	if err != nil {
		handleServiceError(c, err, "更新布局")
		return
	}
	response.Success(c, layout)
}

// SetDefault 设为默认布局
func (h *LayoutHandler) SetDefault(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	layout, err := h.layoutService.SetDefault(id)
	if err != nil {
		handleServiceError(c, err, "设置默认布局")
		return
	}
	response.Success(c, layout)
}

// Delete 删除布局
func (h *LayoutHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.layoutService.Delete(id); err != nil {
		handleServiceError(c, err, "删除布局")
		return
	}
	response.Success(c, nil)
}
