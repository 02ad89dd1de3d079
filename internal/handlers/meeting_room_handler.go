package handlers

import (
	"tmadmin/internal/services"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// MeetingRoomHandler 新版会议室处理器
type MeetingRoomHandler struct {
	meetingRoomService *services.MeetingRoomService
}

// NewMeetingRoomHandler 创建新版会议室处理器
func NewMeetingRoomHandler(meetingRoomService *services.MeetingRoomService) *MeetingRoomHandler {
	return &MeetingRoomHandler{meetingRoomService: meetingRoomService}
}

// CreateMeetingRoomRequest 创建会议室请求
type CreateMeetingRoomRequest struct {
	ConfigID            uint   `json:"config_id" binding:"required"`
	RoomID              string `json:"room_id" binding:"required"`
	Name                string `json:"name" binding:"required"`
	RoomType            string `json:"room_type" binding:"omitempty,oneof=huddle_room conference_room training_room auditorium"`
	Capacity            int    `json:"capacity" binding:"omitempty,min=0"`
	Location            string `json:"location"`
	SupportsRecording   bool   `json:"supports_recording"`
	SupportsLive        bool   `json:"supports_live"`
	SupportsScreenShare bool   `json:"supports_screen_share"`
}

// Create 创建会议室
func (h *MeetingRoomHandler) Create(c *gin.Context) {
	var req CreateMeetingRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	room, err := h.meetingRoomService.Create(services.CreateMeetingRoomParams{
		ConfigID:            req.ConfigID,
		RoomID:              req.RoomID,
		Name:                req.Name,
		RoomType:            req.RoomType,
		Capacity:            req.Capacity,
		Location:            req.Location,
		SupportsRecording:   req.SupportsRecording,
		SupportsLive:        req.SupportsLive,
		SupportsScreenShare: req.SupportsScreenShare,
	})
	if err != nil {
		handleServiceError(c, err, "创建会议室")
		return
	}
	response.Success(c, room)
}

// List 会议室列表
func (h *MeetingRoomHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	rooms, total, err := h.meetingRoomService.GetWithFiltersAndPage(
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

// GetByID 会议室详情（含设备列表）
func (h *MeetingRoomHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.meetingRoomService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询会议室")
		return
	}
	response.Success(c, room)
}

// UpdateMeetingRoomRequest 更新会议室请求
type UpdateMeetingRoomRequest struct {
	Name                *string `json:"name"`
	RoomType            *string `json:"room_type" binding:"omitempty,oneof=huddle_room conference_room training_room auditorium"`
	Capacity            *int    `json:"capacity"`
	Location            *string `json:"location"`
	Status              *string `json:"status" binding:"omitempty,oneof=active inactive maintenance"`
	SupportsRecording   *bool   `json:"supports_recording"`
	SupportsLive        *bool   `json:"supports_live"`
	SupportsScreenShare *bool   `json:"supports_screen_share"`
}

// Update 更新会议室
func (h *MeetingRoomHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMeetingRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	room, err := h.meetingRoomService.Update(id, services.UpdateMeetingRoomParams{
		Name:                req.Name,
		RoomType:            req.RoomType,
		Capacity:            req.Capacity,
		Location:            req.Location,
		Status:              req.Status,
		SupportsRecording:   req.SupportsRecording,
		SupportsLive:        req.SupportsLive,
		SupportsScreenShare: req.SupportsScreenShare,
	})
	if err != nil {
		handleServiceError(c, err, "更新会议室")
		return
	}
	response.Success(c, room)
}

// Delete 删除会议室
func (h *MeetingRoomHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.meetingRoomService.Delete(id); err != nil {
		handleServiceError(c, err, "删除会议室")
		return
	}
	response.Success(c, nil)
}

// AssignDevice 将设备划归会议室
func (h *MeetingRoomHandler) AssignDevice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deviceID, ok := parseIDParam(c, "deviceId")
	if !ok {
		return
	}

	device, err := h.meetingRoomService.AssignDevice(id, deviceID)
	if err != nil {
		handleServiceError(c, err, "划归设备")
		return
	}
	response.Success(c, device)
}

// UnassignDevice 将设备移出会议室
func (h *MeetingRoomHandler) UnassignDevice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deviceID, ok := parseIDParam(c, "deviceId")
	if !ok {
		return
	}

	if err := h.meetingRoomService.UnassignDevice(id, deviceID); err != nil {
		handleServiceError(c, err, "移出设备")
		return
	}
	response.Success(c, nil)
}
