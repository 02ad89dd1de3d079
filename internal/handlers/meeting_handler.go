package handlers

import (
	"time"

	"tmadmin/internal/models"
	"tmadmin/internal/services"
	"tmadmin/pkg/jwt"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// MeetingHandler 会议处理器
type MeetingHandler struct {
	meetingService *services.MeetingService
}

// NewMeetingHandler 创建会议处理器
func NewMeetingHandler(meetingService *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

// CreateMeetingRequest 创建会议请求
type CreateMeetingRequest struct {
	ConfigID    uint       `json:"config_id" binding:"required"`
	MeetingID   string     `json:"meeting_id"`
	MeetingCode string     `json:"meeting_code"`
	Subject     string     `json:"subject" binding:"required"`
	StartTime   time.Time  `json:"start_time" binding:"required"`
	EndTime     *time.Time `json:"end_time"`
	Duration    int        `json:"duration"`
	UserID      string     `json:"user_id"`
	Timezone    string     `json:"timezone"`
	MeetingURL  string     `json:"meeting_url"`
	Password    string     `json:"password"`
}

// Create 创建会议
func (h *MeetingHandler) Create(c *gin.Context) {
	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	meeting, err := h.meetingService.Create(services.CreateMeetingParams{
		ConfigID:    req.ConfigID,
		MeetingID:   req.MeetingID,
		MeetingCode: req.MeetingCode,
		Subject:     req.Subject,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Duration:    req.Duration,
		UserID:      req.UserID,
		Timezone:    req.Timezone,
		MeetingURL:  req.MeetingURL,
		Password:    req.Password,
	})
	if err != nil {
		handleServiceError(c, err, "创建会议")
		return
	}
	response.Success(c, meeting)
}

// List 会议列表
func (h *MeetingHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	meetings, total, err := h.meetingService.GetWithFiltersAndPage(
		configID,
		c.Query("status"),
		c.Query("user_id"),
		c.Query("keyword"),
		params.Page, params.PageSize,
	)
	if err != nil {
		response.ServerError(c, "查询会议失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, meetings, pageInfo)
}

// GetByID 会议详情
func (h *MeetingHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	meeting, err := h.meetingService.GetDetail(id)
	if err != nil {
		handleServiceError(c, err, "查询会议")
		return
	}
	response.Success(c, meeting)
}

// UpdateMeetingRequest 更新会议请求
type UpdateMeetingRequest struct {
	Subject   *string    `json:"subject"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Duration  *int       `json:"duration"`
	Timezone  *string    `json:"timezone"`
	Password  *string    `json:"password"`
}

// Update 更新会议
func (h *MeetingHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	meeting, err := h.meetingService.Update(id, services.UpdateMeetingParams{
		Subject:   req.Subject,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Duration:  req.Duration,
		Timezone:  req.Timezone,
		Password:  req.Password,
	})
	if err != nil {
		handleServiceError(c, err, "更新会议")
		return
	}
	response.Success(c, meeting)
}

// Delete 删除会议
func (h *MeetingHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.meetingService.Delete(id); err != nil {
		handleServiceError(c, err, "删除会议")
		return
	}
	response.Success(c, nil)
}

// Start 开始会议
func (h *MeetingHandler) Start(c *gin.Context) {
	h.transition(c, h.meetingService.Start, "开始会议")
}

// End 结束会议
func (h *MeetingHandler) End(c *gin.Context) {
	h.transition(c, h.meetingService.End, "结束会议")
}

// Cancel 取消会议
func (h *MeetingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.meetingService.Cancel, "取消会议")
}

func (h *MeetingHandler) transition(c *gin.Context, fn func(uint) (*models.Meeting, error), opName string) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	meeting, err := fn(id)
	if err != nil {
		handleServiceError(c, err, opName)
		return
	}
	response.Success(c, meeting)
}

// ========== 参会人与访客 ==========

// AddAttendeeRequest 添加参会人请求
type AddAttendeeRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Username string `json:"username"`
}

// AddAttendee 添加参会人
func (h *MeetingHandler) AddAttendee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddAttendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	attendee, err := h.meetingService.AddAttendee(id, req.UserID, req.Username)
	if err != nil {
		handleServiceError(c, err, "添加参会人")
		return
	}
	response.Success(c, attendee)
}

// RemoveAttendee 移除参会人
func (h *MeetingHandler) RemoveAttendee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	attendeeID, ok := parseIDParam(c, "attendeeId")
	if !ok {
		return
	}

	if err := h.meetingService.RemoveAttendee(id, attendeeID); err != nil {
		handleServiceError(c, err, "移除参会人")
		return
	}
	response.Success(c, nil)
}

// AddGuestRequest 添加访客请求
type AddGuestRequest struct {
	GuestName string  `json:"guest_name" binding:"required"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// AddGuest 添加访客
func (h *MeetingHandler) AddGuest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	guest, err := h.meetingService.AddGuest(id, req.GuestName, req.Email, req.Phone)
	if err != nil {
		handleServiceError(c, err, "添加访客")
		return
	}
	response.Success(c, guest)
}

// RemoveGuest 移除访客
func (h *MeetingHandler) RemoveGuest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	guestID, ok := parseIDParam(c, "guestId")
	if !ok {
		return
	}

	if err := h.meetingService.RemoveGuest(id, guestID); err != nil {
		handleServiceError(c, err, "移除访客")
		return
	}
	response.Success(c, nil)
}

// ========== 角色分配 ==========

// AssignRoleRequest 分配会议角色请求
type AssignRoleRequest struct {
	RoleID         uint       `json:"role_id" binding:"required"`
	UserID         string     `json:"user_id" binding:"required"`
	ExpirationTime *time.Time `json:"expiration_time"`
}

// AssignRole 分配会议角色
func (h *MeetingHandler) AssignRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	assignment, err := h.meetingService.AssignRole(id, req.RoleID, req.UserID, operatorName(c), req.ExpirationTime)
	if err != nil {
		handleServiceError(c, err, "分配会议角色")
		return
	}
	response.Success(c, assignment)
}

// RevokeRole 撤销会议角色
func (h *MeetingHandler) RevokeRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(c, "assignmentId")
	if !ok {
		return
	}

	assignment, err := h.meetingService.RevokeRole(id, assignmentID)
	if err != nil {
		handleServiceError(c, err, "撤销会议角色")
		return
	}
	response.Success(c, assignment)
}

// ========== 布局与背景 ==========

// ApplyStyleRequest 应用布局/背景请求
type ApplyStyleRequest struct {
	TargetID     uint           `json:"target_id" binding:"required"`
	CustomConfig datatypes.JSON `json:"custom_config"`
}

// ApplyLayout 应用布局
func (h *MeetingHandler) ApplyLayout(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ApplyStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	applied, err := h.meetingService.ApplyLayout(id, req.TargetID, operatorName(c), req.CustomConfig)
	if err != nil {
		handleServiceError(c, err, "应用布局")
		return
	}
	response.Success(c, applied)
}

// ApplyBackground 应用背景
func (h *MeetingHandler) ApplyBackground(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ApplyStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	applied, err := h.meetingService.ApplyBackground(id, req.TargetID, operatorName(c), req.CustomConfig)
	if err != nil {
		handleServiceError(c, err, "应用背景")
		return
	}
	response.Success(c, applied)
}

// ========== 投票与文档 ==========

// CreateVote 创建投票
func (h *MeetingHandler) CreateVote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var vote models.MeetingVote
	if err := c.ShouldBindJSON(&vote); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	vote.CreatedBy = operatorName(c)

	created, err := h.meetingService.CreateVote(id, &vote)
	if err != nil {
		handleServiceError(c, err, "创建投票")
		return
	}
	response.Success(c, created)
}

// CreateDocument 添加文档
func (h *MeetingHandler) CreateDocument(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var doc models.MeetingDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	doc.UploadedBy = operatorName(c)

	created, err := h.meetingService.CreateDocument(id, &doc)
	if err != nil {
		handleServiceError(c, err, "添加文档")
		return
	}
	response.Success(c, created)
}

// GetStats 会议统计
func (h *MeetingHandler) GetStats(c *gin.Context) {
	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	stats, err := h.meetingService.GetStats(configID)
	if err != nil {
		response.ServerError(c, "查询统计失败: "+err.Error())
		return
	}
	response.Success(c, stats)
}

// operatorName 从登录态取操作人用户名
func operatorName(c *gin.Context) string {
	claims, exists := c.Get("claims")
	if !exists {
		return ""
	}
	return claims.(*jwt.JWTClaims).Username
}
