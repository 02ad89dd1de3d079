package handlers

import (
	"time"

	"tmadmin/internal/services"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// RecordingHandler 录制文件处理器
type RecordingHandler struct {
	recordingService *services.RecordingService
}

// NewRecordingHandler 创建录制文件处理器
func NewRecordingHandler(recordingService *services.RecordingService) *RecordingHandler {
	return &RecordingHandler{recordingService: recordingService}
}

// CreateRecordingRequest 创建录制记录请求
type CreateRecordingRequest struct {
	ConfigID      uint       `json:"config_id" binding:"required"`
	RecordingID   string     `json:"recording_id" binding:"required"`
	MeetingRefID  uint       `json:"meeting_ref_id"`
	RecordingType string     `json:"recording_type" binding:"omitempty,oneof=cloud local"`
	FileURL       string     `json:"file_url" binding:"required"`
	FileSize      int64      `json:"file_size"`
	StartTime     time.Time  `json:"start_time" binding:"required"`
	EndTime       *time.Time `json:"end_time"`
}

// Create 创建录制记录
func (h *RecordingHandler) Create(c *gin.Context) {
	var req CreateRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	recording, err := h.recordingService.Create(services.CreateRecordingParams{
		ConfigID:      req.ConfigID,
		RecordingID:   req.RecordingID,
		MeetingRefID:  req.MeetingRefID,
		RecordingType: req.RecordingType,
		FileURL:       req.FileURL,
		FileSize:      req.FileSize,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	})
	if err != nil {
		handleServiceError(c, err, "创建录制记录")
		return
	}
	response.Success(c, recording)
}

// List 录制列表
func (h *RecordingHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID, meetingRefID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}
	if id, ok := parseOptionalUintQuery(c, "meeting_ref_id"); ok {
		meetingRefID = id
	}

	recordings, total, err := h.recordingService.GetWithFiltersAndPage(
		configID, meetingRefID,
		c.Query("status"),
		c.Query("share_status"),
		c.Query("keyword"),
		params.Page, params.PageSize,
	)
	if err != nil {
		response.ServerError(c, "查询录制失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, recordings, pageInfo)
}

// GetByID 录制详情
func (h *RecordingHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	recording, err := h.recordingService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询录制")
		return
	}
	response.Success(c, recording)
}

// UpdateShareStatusRequest 更新共享状态请求
type UpdateShareStatusRequest struct {
	ShareStatus string `json:"share_status" binding:"required,oneof=private internal public"`
}

// UpdateShareStatus 更新共享状态
func (h *RecordingHandler) UpdateShareStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateShareStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	recording, err := h.recordingService.UpdateShareStatus(id, req.ShareStatus)
	if err != nil {
		handleServiceError(c, err, "更新共享状态")
		return
	}
	response.Success(c, recording)
}

// MarkViewed 记录查看
func (h *RecordingHandler) MarkViewed(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.recordingService.MarkViewed(id); err != nil {
		handleServiceError(c, err, "记录查看")
		return
	}
	response.Success(c, nil)
}

// MarkDownloaded 记录下载
func (h *RecordingHandler) MarkDownloaded(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.recordingService.MarkDownloaded(id); err != nil {
		handleServiceError(c, err, "记录下载")
		return
	}
	response.Success(c, nil)
}

// Delete 删除录制
func (h *RecordingHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.recordingService.Delete(id); err != nil {
		handleServiceError(c, err, "删除录制")
		return
	}
	response.Success(c, nil)
}
