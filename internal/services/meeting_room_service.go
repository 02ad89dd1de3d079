package services

import (
	stderrors "errors"
	"fmt"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"gorm.io/gorm"
)

// MeetingRoomService 新版会议室服务，管理会议室目录与设备归属
type MeetingRoomService struct {
	db *gorm.DB
}

// NewMeetingRoomService 创建新版会议室服务
func NewMeetingRoomService(db *gorm.DB) *MeetingRoomService {
	return &MeetingRoomService{db: db}
}

// CreateMeetingRoomParams 创建会议室参数
type CreateMeetingRoomParams struct {
	ConfigID            uint
	RoomID              string
	Name                string
	RoomType            string
	Capacity            int
	Location            string
	SupportsRecording   bool
	SupportsLive        bool
	SupportsScreenShare bool
}

// Create 创建会议室
func (s *MeetingRoomService) Create(params CreateMeetingRoomParams) (*models.MeetingRoom, error) {
	if params.RoomID == "" {
		return nil, errors.NewValidationError("room_id", "会议室ID不能为空")
	}
	if params.Name == "" {
		return nil, errors.NewValidationError("name", "会议室名称不能为空")
	}
	if params.Capacity < 0 {
		return nil, errors.NewValidationError("capacity", "容量不能为负数")
	}

	var count int64
	s.db.Model(&models.MeetingRoom{}).Where("room_id = ?", params.RoomID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	room := &models.MeetingRoom{
		ConfigID:            params.ConfigID,
		RoomID:              params.RoomID,
		Name:                params.Name,
		RoomType:            params.RoomType,
		Capacity:            params.Capacity,
		Location:            params.Location,
		Status:              models.RoomStatusActive,
		SupportsRecording:   params.SupportsRecording,
		SupportsLive:        params.SupportsLive,
		SupportsScreenShare: params.SupportsScreenShare,
	}
	if room.RoomType == "" {
		room.RoomType = models.MeetingRoomTypeConference
	}

	if err := s.db.Create(room).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateKey
		}
		return nil, err
	}
	return room, nil
}

// GetByID 根据ID获取会议室，预加载设备列表
func (s *MeetingRoomService) GetByID(id uint) (*models.MeetingRoom, error) {
	var room models.MeetingRoom
	err := s.db.Preload("Devices").First(&room, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &room, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *MeetingRoomService) GetWithFiltersAndPage(configID uint, roomType, status, keyword string, page, pageSize int) ([]*models.MeetingRoom, int64, error) {
	var rooms []*models.MeetingRoom
	var total int64

	query := s.db.Model(&models.MeetingRoom{})

	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if roomType != "" {
		query = query.Where("room_type = ?", roomType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR room_id LIKE ? OR location LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Devices").Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&rooms).Error
	if err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

// UpdateMeetingRoomParams 更新会议室参数
type UpdateMeetingRoomParams struct {
	Name                *string
	RoomType            *string
	Capacity            *int
	Location            *string
	Status              *string
	SupportsRecording   *bool
	SupportsLive        *bool
	SupportsScreenShare *bool
}

// Update 更新会议室，会议室ID不可变更
func (s *MeetingRoomService) Update(id uint, params UpdateMeetingRoomParams) (*models.MeetingRoom, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, errors.NewValidationError("name", "会议室名称不能为空")
		}
		room.Name = *params.Name
	}
	if params.RoomType != nil {
		room.RoomType = *params.RoomType
	}
	if params.Capacity != nil {
		if *params.Capacity < 0 {
			return nil, errors.NewValidationError("capacity", "容量不能为负数")
		}
		room.Capacity = *params.Capacity
	}
	if params.Location != nil {
		room.Location = *params.Location
	}
	if params.Status != nil {
		room.Status = *params.Status
	}
	if params.SupportsRecording != nil {
		room.SupportsRecording = *params.SupportsRecording
	}
	if params.SupportsLive != nil {
		room.SupportsLive = *params.SupportsLive
	}
	if params.SupportsScreenShare != nil {
		room.SupportsScreenShare = *params.SupportsScreenShare
	}

	if err := s.db.Save(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// Delete 删除会议室，仍有设备归属时拒绝删除
func (s *MeetingRoomService) Delete(id uint) error {
	room, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var deviceCount int64
	s.db.Model(&models.Device{}).Where("room_ref_id = ?", id).Count(&deviceCount)
	if deviceCount > 0 {
		return errors.NewValidationError("room", fmt.Sprintf("会议室仍有 %d 个设备，无法删除", deviceCount))
	}

	return s.db.Delete(room).Error
}

// AssignDevice 将设备划归会议室，同一租户校验
func (s *MeetingRoomService) AssignDevice(roomID, deviceID uint) (*models.Device, error) {
	var device models.Device

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var room models.MeetingRoom
		if err := tx.First(&room, roomID).Error; err != nil {
			return errors.ErrNotFound
		}
		if err := tx.First(&device, deviceID).Error; err != nil {
			return errors.NewValidationError("device_id", "设备不存在")
		}
		if device.ConfigID != room.ConfigID {
			return errors.NewValidationError("device_id", "设备与会议室不属于同一租户配置")
		}
		return tx.Model(&device).Update("room_ref_id", room.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// UnassignDevice 将设备移出会议室
func (s *MeetingRoomService) UnassignDevice(roomID, deviceID uint) error {
	result := s.db.Model(&models.Device{}).
		Where("id = ? AND room_ref_id = ?", deviceID, roomID).
		Update("room_ref_id", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}
