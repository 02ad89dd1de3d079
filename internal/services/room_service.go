package services

import (
	stderrors "errors"
	"fmt"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"gorm.io/gorm"
)

// RoomService 会议室服务（旧版目录）
type RoomService struct {
	db *gorm.DB
}

// NewRoomService 创建会议室服务
func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

// CreateRoomParams 创建会议室参数
type CreateRoomParams struct {
	ConfigID  uint
	RoomID    string
	Name      string
	RoomType  string
	Capacity  int
	Location  string
	Equipment string
}

// Create 创建会议室
func (s *RoomService) Create(params CreateRoomParams) (*models.Room, error) {
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
	s.db.Model(&models.Room{}).Where("room_id = ?", params.RoomID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	room := &models.Room{
		ConfigID:  params.ConfigID,
		RoomID:    params.RoomID,
		Name:      params.Name,
		RoomType:  params.RoomType,
		Capacity:  params.Capacity,
		Location:  params.Location,
		Status:    models.RoomStatusActive,
		Equipment: params.Equipment,
	}
	if room.RoomType == "" {
		room.RoomType = models.RoomTypePhysical
	}

	if err := s.db.Create(room).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateKey
		}
		return nil, err
	}
	return room, nil
}

// GetByID 根据ID获取会议室
func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	err := s.db.First(&room, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &room, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *RoomService) GetWithFiltersAndPage(configID uint, roomType, status, keyword string, page, pageSize int) ([]*models.Room, int64, error) {
	var rooms []*models.Room
	var total int64

	query := s.db.Model(&models.Room{})

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
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&rooms).Error
	if err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

// UpdateRoomParams 更新会议室参数
type UpdateRoomParams struct {
	Name      *string
	RoomType  *string
	Capacity  *int
	Location  *string
	Status    *string
	Equipment *string
}

// Update 更新会议室，会议室ID不可变更
func (s *RoomService) Update(id uint, params UpdateRoomParams) (*models.Room, error) {
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
	if params.Equipment != nil {
		room.Equipment = *params.Equipment
	}

	if err := s.db.Save(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// Delete 删除会议室
func (s *RoomService) Delete(id uint) error {
	result := s.db.Delete(&models.Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}
