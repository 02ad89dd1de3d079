package services

import (
	stderrors "errors"
	"fmt"
	"time"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MeetingService 会议服务
type MeetingService struct {
	db *gorm.DB
}

// NewMeetingService 创建会议服务
func NewMeetingService(db *gorm.DB) *MeetingService {
	return &MeetingService{db: db}
}

// CreateMeetingParams 创建会议参数
type CreateMeetingParams struct {
	ConfigID    uint
	MeetingID   string
	MeetingCode string
	Subject     string
	StartTime   time.Time
	EndTime     *time.Time
	Duration    int
	UserID      string
	Timezone    string
	MeetingURL  string
	Password    string
}

// Create 创建会议
func (s *MeetingService) Create(params CreateMeetingParams) (*models.Meeting, error) {
	meeting := &models.Meeting{
		ConfigID:    params.ConfigID,
		MeetingID:   params.MeetingID,
		MeetingCode: params.MeetingCode,
		Subject:     params.Subject,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		Duration:    params.Duration,
		UserID:      params.UserID,
		Timezone:    params.Timezone,
		MeetingURL:  params.MeetingURL,
		Password:    params.Password,
		Status:      models.MeetingStatusScheduled,
	}
	if meeting.MeetingID == "" {
		meeting.MeetingID = uuid.New().String()
	}
	if meeting.Duration == 0 {
		meeting.Duration = 60
	}
	if meeting.Timezone == "" {
		meeting.Timezone = "Asia/Shanghai"
	}

	if err := meeting.Validate(); err != nil {
		return nil, err
	}

	// 会议ID重复预检查
	var count int64
	s.db.Model(&models.Meeting{}).Where("meeting_id = ?", meeting.MeetingID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	if err := s.db.Create(meeting).Error; err != nil {
		return nil, err
	}
	return meeting, nil
}

// GetByID 根据ID获取会议
func (s *MeetingService) GetByID(id uint) (*models.Meeting, error) {
	var meeting models.Meeting
	err := s.db.First(&meeting, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &meeting, err
}

// GetByMeetingID 根据会议ID获取会议
func (s *MeetingService) GetByMeetingID(meetingID string) (*models.Meeting, error) {
	var meeting models.Meeting
	err := s.db.Where("meeting_id = ?", meetingID).First(&meeting).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &meeting, err
}

// GetDetail 获取会议详情，预加载所有子集合
func (s *MeetingService) GetDetail(id uint) (*models.Meeting, error) {
	var meeting models.Meeting
	err := s.db.
		Preload("Attendees").
		Preload("Guests").
		Preload("Recordings").
		Preload("Votes").
		Preload("Documents").
		Preload("MeetingRoles.Role").
		Preload("MeetingLayouts.Layout").
		Preload("MeetingBackgrounds.Background").
		First(&meeting, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &meeting, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *MeetingService) GetWithFiltersAndPage(configID uint, status, userID, keyword string, page, pageSize int) ([]*models.Meeting, int64, error) {
	var meetings []*models.Meeting
	var total int64

	query := s.db.Model(&models.Meeting{})

	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("subject LIKE ? OR meeting_id LIKE ? OR meeting_code LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("start_time DESC").Offset(offset).Limit(pageSize).Find(&meetings).Error
	if err != nil {
		return nil, 0, err
	}

	return meetings, total, nil
}

// UpdateMeetingParams 更新会议参数
type UpdateMeetingParams struct {
	Subject   *string
	StartTime *time.Time
	EndTime   *time.Time
	Duration  *int
	Timezone  *string
	Password  *string
}

// Update 更新会议
func (s *MeetingService) Update(id uint, params UpdateMeetingParams) (*models.Meeting, error) {
	meeting, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if params.Subject != nil {
		meeting.Subject = *params.Subject
	}
	if params.StartTime != nil {
		meeting.StartTime = *params.StartTime
	}
	if params.EndTime != nil {
		meeting.EndTime = params.EndTime
	}
	if params.Duration != nil {
		meeting.Duration = *params.Duration
	}
	if params.Timezone != nil {
		meeting.Timezone = *params.Timezone
	}
	if params.Password != nil {
		meeting.Password = *params.Password
	}

	if err := meeting.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.Save(meeting).Error; err != nil {
		return nil, err
	}
	return meeting, nil
}

// Delete 删除会议
func (s *MeetingService) Delete(id uint) error {
	result := s.db.Delete(&models.Meeting{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// ========== 会议状态流转 ==========

// Start 开始会议：scheduled -> in_progress
func (s *MeetingService) Start(id uint) (*models.Meeting, error) {
	return s.transition(id, []string{models.MeetingStatusScheduled}, models.MeetingStatusInProgress)
}

// End 结束会议：in_progress -> ended
func (s *MeetingService) End(id uint) (*models.Meeting, error) {
	return s.transition(id, []string{models.MeetingStatusInProgress}, models.MeetingStatusEnded)
}

// Cancel 取消会议：scheduled/in_progress -> cancelled
func (s *MeetingService) Cancel(id uint) (*models.Meeting, error) {
	return s.transition(id, []string{models.MeetingStatusScheduled, models.MeetingStatusInProgress}, models.MeetingStatusCancelled)
}

// transition 条件状态流转
func (s *MeetingService) transition(id uint, fromStatuses []string, toStatus string) (*models.Meeting, error) {
	meeting, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	result := s.db.Model(&models.Meeting{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Update("status", toStatus)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return meeting, errors.ErrInvalidStateTransition
	}

	meeting.Status = toStatus
	return meeting, nil
}

// ========== 参会人 ==========

// AddAttendee 添加参会人，同一用户重复添加幂等
func (s *MeetingService) AddAttendee(meetingID uint, userID, username string) (*models.MeetingUser, error) {
	meeting, err := s.GetByID(meetingID)
	if err != nil {
		return nil, err
	}

	var existing models.MeetingUser
	err = s.db.Where("meeting_ref_id = ? AND user_id = ?", meeting.ID, userID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}

	mu := &models.MeetingUser{
		MeetingRefID: meeting.ID,
		UserID:       userID,
		Username:     username,
		InviteStatus: models.InviteStatusInvited,
	}
	if err := s.db.Create(mu).Error; err != nil {
		return nil, err
	}
	return mu, nil
}

// RemoveAttendee 移除参会人
func (s *MeetingService) RemoveAttendee(meetingID, attendeeID uint) error {
	result := s.db.Where("meeting_ref_id = ?", meetingID).Delete(&models.MeetingUser{}, attendeeID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// AddGuest 添加访客
func (s *MeetingService) AddGuest(meetingID uint, guestName string, email, phone *string) (*models.MeetingGuest, error) {
	meeting, err := s.GetByID(meetingID)
	if err != nil {
		return nil, err
	}
	if guestName == "" {
		return nil, errors.NewValidationError("guest_name", "访客姓名不能为空")
	}

	guest := &models.MeetingGuest{
		MeetingRefID: meeting.ID,
		GuestName:    guestName,
		Email:        email,
		Phone:        phone,
		InviteStatus: models.InviteStatusInvited,
	}
	if err := s.db.Create(guest).Error; err != nil {
		return nil, err
	}
	return guest, nil
}

// RemoveGuest 移除访客
func (s *MeetingService) RemoveGuest(meetingID, guestID uint) error {
	result := s.db.Where("meeting_ref_id = ?", meetingID).Delete(&models.MeetingGuest{}, guestID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// ========== 角色 / 布局 / 背景分配（单事务维护关联） ==========

// AssignRole 为参会用户分配会议角色
func (s *MeetingService) AssignRole(meetingID, roleID uint, userID, assignedBy string, expirationTime *time.Time) (*models.MeetingRole, error) {
	mr := &models.MeetingRole{
		MeetingRefID:   meetingID,
		RoleRefID:      roleID,
		UserID:         userID,
		Status:         models.AssignmentStatusActive,
		AssignmentTime: time.Now(),
		ExpirationTime: expirationTime,
		AssignedBy:     assignedBy,
	}
	if err := mr.Validate(); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var meeting models.Meeting
		if err := tx.First(&meeting, meetingID).Error; err != nil {
			return errors.ErrNotFound
		}
		var role models.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			return errors.NewValidationError("role_id", "角色不存在")
		}
		return tx.Create(mr).Error
	})
	if err != nil {
		return nil, err
	}
	return mr, nil
}

// RevokeRole 撤销会议角色分配，仅生效中的分配可撤销
func (s *MeetingService) RevokeRole(meetingID, assignmentID uint) (*models.MeetingRole, error) {
	var mr models.MeetingRole
	err := s.db.Where("meeting_ref_id = ?", meetingID).First(&mr, assignmentID).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	if !mr.CanRevoke() {
		return &mr, errors.ErrInvalidStateTransition
	}

	mr.Status = models.AssignmentStatusRevoked
	if err := s.db.Save(&mr).Error; err != nil {
		return nil, err
	}
	return &mr, nil
}

// ApplyLayout 为会议应用布局
func (s *MeetingService) ApplyLayout(meetingID, layoutID uint, appliedBy string, customConfig []byte) (*models.MeetingLayout, error) {
	ml := &models.MeetingLayout{
		MeetingRefID:    meetingID,
		LayoutRefID:     layoutID,
		ApplicationTime: time.Now(),
		Status:          models.ApplicationStatusActive,
		AppliedBy:       appliedBy,
		CustomConfig:    customConfig,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var meeting models.Meeting
		if err := tx.First(&meeting, meetingID).Error; err != nil {
			return errors.ErrNotFound
		}
		var layout models.Layout
		if err := tx.First(&layout, layoutID).Error; err != nil {
			return errors.NewValidationError("layout_id", "布局不存在")
		}

		// 同一会议同时只有一个生效布局
		if err := tx.Model(&models.MeetingLayout{}).
			Where("meeting_ref_id = ? AND status = ?", meetingID, models.ApplicationStatusActive).
			Update("status", models.ApplicationStatusInactive).Error; err != nil {
			return err
		}
		return tx.Create(ml).Error
	})
	if err != nil {
		return nil, err
	}
	return ml, nil
}

// ApplyBackground 为会议应用背景
func (s *MeetingService) ApplyBackground(meetingID, backgroundID uint, appliedBy string, customConfig []byte) (*models.MeetingBackground, error) {
	mb := &models.MeetingBackground{
		MeetingRefID:    meetingID,
		BackgroundRefID: backgroundID,
		ApplicationTime: time.Now(),
		Status:          models.ApplicationStatusActive,
		AppliedBy:       appliedBy,
		CustomConfig:    customConfig,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var meeting models.Meeting
		if err := tx.First(&meeting, meetingID).Error; err != nil {
			return errors.ErrNotFound
		}
		var background models.Background
		if err := tx.First(&background, backgroundID).Error; err != nil {
			return errors.NewValidationError("background_id", "背景不存在")
		}

		if err := tx.Model(&models.MeetingBackground{}).
			Where("meeting_ref_id = ? AND status = ?", meetingID, models.ApplicationStatusActive).
			Update("status", models.ApplicationStatusInactive).Error; err != nil {
			return err
		}
		return tx.Create(mb).Error
	})
	if err != nil {
		return nil, err
	}
	return mb, nil
}

// ========== 投票 / 文档 ==========

// CreateVote 创建会议投票
func (s *MeetingService) CreateVote(meetingID uint, vote *models.MeetingVote) (*models.MeetingVote, error) {
	meeting, err := s.GetByID(meetingID)
	if err != nil {
		return nil, err
	}
	vote.MeetingRefID = meeting.ID
	if vote.Status == "" {
		vote.Status = models.VoteStatusDraft
	}

	if err := vote.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Create(vote).Error; err != nil {
		return nil, err
	}
	return vote, nil
}

// CreateDocument 添加会议文档
func (s *MeetingService) CreateDocument(meetingID uint, doc *models.MeetingDocument) (*models.MeetingDocument, error) {
	meeting, err := s.GetByID(meetingID)
	if err != nil {
		return nil, err
	}
	if doc.Title == "" {
		return nil, errors.NewValidationError("title", "文档标题不能为空")
	}
	doc.MeetingRefID = meeting.ID
	if doc.Status == "" {
		doc.Status = models.DocumentStatusUploaded
	}

	if err := s.db.Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// GetStats 会议统计
func (s *MeetingService) GetStats(configID uint) (map[string]int64, error) {
	stats := make(map[string]int64)
	for _, status := range []string{
		models.MeetingStatusScheduled,
		models.MeetingStatusInProgress,
		models.MeetingStatusEnded,
		models.MeetingStatusCancelled,
	} {
		var count int64
		query := s.db.Model(&models.Meeting{}).Where("status = ?", status)
		if configID > 0 {
			query = query.Where("config_id = ?", configID)
		}
		if err := query.Count(&count).Error; err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, nil
}
