package services

import (
	stderrors "errors"
	"fmt"
	"time"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"gorm.io/gorm"
)

// RecordingService 录制文件服务
type RecordingService struct {
	db *gorm.DB
}

// NewRecordingService 创建录制文件服务
func NewRecordingService(db *gorm.DB) *RecordingService {
	return &RecordingService{db: db}
}

// CreateRecordingParams 创建录制记录参数
type CreateRecordingParams struct {
	ConfigID      uint
	RecordingID   string
	MeetingRefID  uint
	RecordingType string
	FileURL       string
	FileSize      int64
	StartTime     time.Time
	EndTime       *time.Time
}

// Create 创建录制记录
func (s *RecordingService) Create(params CreateRecordingParams) (*models.Recording, error) {
	if params.RecordingID == "" {
		return nil, errors.NewValidationError("recording_id", "录制ID不能为空")
	}

	var count int64
	s.db.Model(&models.Recording{}).Where("recording_id = ?", params.RecordingID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	recording := &models.Recording{
		ConfigID:      params.ConfigID,
		RecordingID:   params.RecordingID,
		MeetingRefID:  params.MeetingRefID,
		RecordingType: params.RecordingType,
		FileURL:       params.FileURL,
		FileSize:      params.FileSize,
		Status:        models.RecordingStatusRecording,
		StartTime:     params.StartTime,
		EndTime:       params.EndTime,
		ShareStatus:   models.ShareStatusPrivate,
	}
	if recording.RecordingType == "" {
		recording.RecordingType = models.RecordingTypeCloud
	}

	if err := recording.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Create(recording).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateKey
		}
		return nil, err
	}
	return recording, nil
}

// GetByID 根据ID获取录制记录
func (s *RecordingService) GetByID(id uint) (*models.Recording, error) {
	var recording models.Recording
	err := s.db.Preload("Meeting").First(&recording, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &recording, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *RecordingService) GetWithFiltersAndPage(configID, meetingRefID uint, status, shareStatus, keyword string, page, pageSize int) ([]*models.Recording, int64, error) {
	var recordings []*models.Recording
	var total int64

	query := s.db.Model(&models.Recording{})

	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if meetingRefID > 0 {
		query = query.Where("meeting_ref_id = ?", meetingRefID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if shareStatus != "" {
		query = query.Where("share_status = ?", shareStatus)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("recording_id LIKE ?", pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("start_time DESC").Offset(offset).Limit(pageSize).Find(&recordings).Error
	if err != nil {
		return nil, 0, err
	}

	return recordings, total, nil
}

// UpdateShareStatus 更新共享状态
func (s *RecordingService) UpdateShareStatus(id uint, shareStatus string) (*models.Recording, error) {
	switch shareStatus {
	case models.ShareStatusPrivate, models.ShareStatusInternal, models.ShareStatusPublic:
	default:
		return nil, errors.NewValidationError("share_status", "无效的共享状态")
	}

	recording, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	recording.ShareStatus = shareStatus
	if err := s.db.Model(recording).Update("share_status", shareStatus).Error; err != nil {
		return nil, err
	}
	return recording, nil
}

// MarkViewed 累加查看次数
func (s *RecordingService) MarkViewed(id uint) error {
	result := s.db.Model(&models.Recording{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// MarkDownloaded 累加下载次数
func (s *RecordingService) MarkDownloaded(id uint) error {
	result := s.db.Model(&models.Recording{}).Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// Delete 删除录制记录，录制中的文件拒绝删除
func (s *RecordingService) Delete(id uint) error {
	recording, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if recording.Status == models.RecordingStatusRecording {
		return errors.ErrInvalidStateTransition
	}
	return s.db.Delete(recording).Error
}
