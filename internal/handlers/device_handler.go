package handlers

import (
	"tmadmin/internal/services"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// DeviceHandler 设备处理器
type DeviceHandler struct {
	deviceService *services.DeviceService
}

// NewDeviceHandler 创建设备处理器
func NewDeviceHandler(deviceService *services.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

// CreateDeviceRequest 创建设备请求
type CreateDeviceRequest struct {
	ConfigID     uint           `json:"config_id" binding:"required"`
	DeviceID     string         `json:"device_id" binding:"required"`
	Name         string         `json:"name" binding:"required"`
	DeviceType   string         `json:"device_type" binding:"omitempty,oneof=camera microphone speaker display touch_screen whiteboard other"`
	RoomRefID    *uint          `json:"room_ref_id"`
	DeviceConfig datatypes.JSON `json:"device_config"`
}

// Create 创建设备
func (h *DeviceHandler) Create(c *gin.Context) {
	var req CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	device, err := h.deviceService.Create(services.CreateDeviceParams{
		ConfigID:     req.ConfigID,
		DeviceID:     req.DeviceID,
		Name:         req.Name,
		DeviceType:   req.DeviceType,
		RoomRefID:    req.RoomRefID,
		DeviceConfig: req.DeviceConfig,
	})
	if err != nil {
		handleServiceError(c, err, "创建设备")
		return
	}
	response.Success(c, device)
}

// List 设备列表
func (h *DeviceHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}
	var roomRefID *uint
	if id, ok := parseOptionalUintQuery(c, "room_ref_id"); ok {
		roomRefID = &id
	}

	devices, total, err := h.deviceService.GetWithFiltersAndPage(
		configID,
		c.Query("device_type"),
		c.Query("status"),
		c.Query("keyword"),
		roomRefID,
		params.Page, params.PageSize,
	)
	if err != nil {
		response.ServerError(c, "查询设备失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, devices, pageInfo)
}

// GetByID 设备详情
func (h *DeviceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	device, err := h.deviceService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询设备")
		return
	}
	response.Success(c, device)
}

// UpdateDeviceRequest 更新设备请求
type UpdateDeviceRequest struct {
	Name         *string        `json:"name"`
	DeviceType   *string        `json:"device_type" binding:"omitempty,oneof=camera microphone speaker display touch_screen whiteboard other"`
	DeviceConfig datatypes.JSON `json:"device_config"`
}

// Update 更新设备
func (h *DeviceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	device, err := h.deviceService.Update(id, services.UpdateDeviceParams{
		Name:         req.Name,
		DeviceType:   req.DeviceType,
		DeviceConfig: req.DeviceConfig,
	})
	if err != nil {
		handleServiceError(c, err, "更新设备")
		return
	}
	response.Success(c, device)
}

// UpdateDeviceStatusRequest 更新设备状态请求
type UpdateDeviceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=online offline maintenance error"`
}

// UpdateStatus 更新设备状态
func (h *DeviceHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDeviceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	device, err := h.deviceService.UpdateStatus(id, req.Status)
	if err != nil {
		handleServiceError(c, err, "更新设备状态")
		return
	}
	response.Success(c, device)
}

// Delete 删除设备
func (h *DeviceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deviceService.Delete(id); err != nil {
		handleServiceError(c, err, "删除设备")
		return
	}
	response.Success(c, nil)
}
