package handlers

import (
	"time"

	"tmadmin/internal/services"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// BackgroundHandler 背景目录处理器
type BackgroundHandler struct {
	backgroundService *services.BackgroundService
}

// NewBackgroundHandler 创建背景目录处理器
func NewBackgroundHandler(backgroundService *services.BackgroundService) *BackgroundHandler {
	return &BackgroundHandler{backgroundService: backgroundService}
}

// CreateBackgroundRequest 创建背景请求
type CreateBackgroundRequest struct {
	ConfigID       uint       `json:"config_id" binding:"required"`
	BackgroundID   string     `json:"background_id" binding:"required"`
	Name           string     `json:"name" binding:"required"`
	Description    string     `json:"description"`
	BackgroundType string     `json:"background_type" binding:"omitempty,oneof=image blur color video"`
	ImageURL       string     `json:"image_url"`
	OrderWeight    int        `json:"order_weight"`
	ExpirationTime *time.Time `json:"expiration_time"`
}

// Create 创建背景
func (h *BackgroundHandler) Create(c *gin.Context) {
	var req CreateBackgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	background, err := h.backgroundService.Create(services.CreateBackgroundParams{
		ConfigID:       req.ConfigID,
		BackgroundID:   req.BackgroundID,
		Name:           req.Name,
		Description:    req.Description,
		BackgroundType: req.BackgroundType,
		ImageURL:       req.ImageURL,
		OrderWeight:    req.OrderWeight,
		ExpirationTime: req.ExpirationTime,
	})
	if err != nil {
		handleServiceError(c, err, "创建背景")
		return
	}
	response.Success(c, background)
}

// List 背景列表
func (h *BackgroundHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	backgrounds, total, err := h.backgroundService.GetWithFiltersAndPage(
		configID,
		c.Query("background_type"),
		c.Query("status"),
		c.Query("keyword"),
		params.Page, params.PageSize,
	)
	if err != nil {
		response.ServerError(c, "查询背景失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, backgrounds, pageInfo)
}

// GetByID 背景详情
func (h *BackgroundHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	background, err := h.backgroundService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询背景")
		return
	}
	response.Success(c, background)
}

// UpdateBackgroundRequest 更新背景请求
type UpdateBackgroundRequest struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	BackgroundType *string    `json:"background_type" binding:"omitempty,oneof=image blur color video"`
	ImageURL       *string    `json:"image_url"`
	Status         *string    `json:"status" binding:"omitempty,oneof=active inactive"`
	OrderWeight    *int       `json:"order_weight"`
	ExpirationTime *time.Time `json:"expiration_time"`
}

// Update 更新背景
func (h *BackgroundHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBackgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	background, err := h.backgroundService.Update(id, services.UpdateBackgroundParams{
		Name:           req.Name,
		Description:    req.Description,
		BackgroundType: req.BackgroundType,
		ImageURL:       req.ImageURL,
		Status:         req.Status,
		OrderWeight:    req.OrderWeight,
		ExpirationTime: req.ExpirationTime,
	})
	if err != nil {
		handleServiceError(c, err, "更新背景")
		return
	}
	response.Success(c, background)
}

// SetDefault 设为默认背景
func (h *BackgroundHandler) SetDefault(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	background, err := h.backgroundService.SetDefault(id)
	if err != nil {
		handleServiceError(c, err, "设置默认背景")
		return
	}
	response.Success(c, background)
}

// Delete 删除背景
func (h *BackgroundHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.backgroundService.Delete(id); err != nil {
		handleServiceError(c, err, "删除背景")
		return
	}
	response.Success(c, nil)
}
