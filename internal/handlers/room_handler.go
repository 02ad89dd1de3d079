package handlers

import (
	"tmadmin/internal/services"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// RoomHandler 会议室处理器（旧版目录）
type RoomHandler struct {
	roomService *services.RoomService
}

// NewRoomHandler 创建会议室处理器
func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoomRequest 创建会议室请求
type CreateRoomRequest struct {
	ConfigID  uint   `json:"config_id" binding:"required"`
	RoomID    string `json:"room_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	RoomType  string `json:"room_type" binding:"omitempty,oneof=physical virtual hybrid"`
	Capacity  int    `json:"capacity" binding:"omitempty,min=0"`
	Location  string `json:"location"`
	Equipment string `json:"equipment"`
}

// Create 创建会议室
func (h *RoomHandler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	room, err := h.roomService.Create(services.CreateRoomParams{
		ConfigID:  req.ConfigID,
		RoomID:    req.RoomID,
		Name:      req.Name,
		RoomType:  req.RoomType,
		Capacity:  req.Capacity,
		Location:  req.Location,
		Equipment: req.Equipment,
	})
	if err != nil {
		handleServiceError(c, err, "创建会议室")
		return
	}
	response.Success(c, room)
}

// List 会议室列表
func (h *RoomHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	rooms, total, err := h.roomService.GetWithFiltersAndPage(
		configID,
		c.Query("room_type"),
		c.Query("status"),
		c.Query("keyword"),
		params.Page, params.PageSize,
	)
	if err != nil {
		response.ServerError(c, "查询会议室失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, rooms, pageInfo)
}

// GetByID 会议室详情
func (h *RoomHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询会议室")
		return
	}
	response.Success(c, room)
}

// UpdateRoomRequest 更新会议室请求
type UpdateRoomRequest struct {
	Name      *string `json:"name"`
	RoomType  *string `json:"room_type" binding:"omitempty,oneof=physical virtual hybrid"`
	Capacity  *int    `json:"capacity"`
	Location  *string `json:"location"`
	Status    *string `json:"status" binding:"omitempty,oneof=active inactive maintenance"`
	Equipment *string `json:"equipment"`
}

// Update 更新会议室
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	room, err := h.roomService.Update(id, services.UpdateRoomParams{
		Name:      req.Name,
		RoomType:  req.RoomType,
		Capacity:  req.Capacity,
		Location:  req.Location,
		Status:    req.Status,
		Equipment: req.Equipment,
	})
	if err != nil {
		handleServiceError(c, err, "更新会议室")
		return
	}
	response.Success(c, room)
}

// Delete 删除会议室
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.Delete(id); err != nil {
		handleServiceError(c, err, "删除会议室")
		return
	}
	response.Success(c, nil)
}
