package services

import (
	stderrors "errors"
	"fmt"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DeviceService 设备服务
type DeviceService struct {
	db *gorm.DB
}

// NewDeviceService 创建设备服务
func NewDeviceService(db *gorm.DB) *DeviceService {
	return &DeviceService{db: db}
}

// CreateDeviceParams 创建设备参数
type CreateDeviceParams struct {
	ConfigID     uint
	DeviceID     string
	Name         string
	DeviceType   string
	RoomRefID    *uint
	DeviceConfig datatypes.JSON
}

// Create 创建设备
func (s *DeviceService) Create(params CreateDeviceParams) (*models.Device, error) {
	if params.DeviceID == "" {
		return nil, errors.NewValidationError("device_id", "设备ID不能为空")
	}
	if params.Name == "" {
		return nil, errors.NewValidationError("name", "设备名称不能为空")
	}

	var count int64
	s.db.Model(&models.Device{}).Where("device_id = ?", params.DeviceID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	device := &models.Device{
		ConfigID:     params.ConfigID,
		DeviceID:     params.DeviceID,
		Name:         params.Name,
		DeviceType:   params.DeviceType,
		Status:       models.DeviceStatusOffline,
		RoomRefID:    params.RoomRefID,
		DeviceConfig: params.DeviceConfig,
	}
	if device.DeviceType == "" {
		device.DeviceType = models.DeviceTypeOther
	}

	// 校验归属会议室存在且属于同一租户
	if device.RoomRefID != nil {
		var room models.MeetingRoom
		if err := s.db.First(&room, *device.RoomRefID).Error; err != nil {
			return nil, errors.NewValidationError("room_ref_id", "归属会议室不存在")
		}
		if room.ConfigID != device.ConfigID {
			return nil, errors.NewValidationError("room_ref_id", "设备与会议室不属于同一租户配置")
		}
	}

	if err := s.db.Create(device).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateKey
		}
		return nil, err
	}
	return device, nil
}

// GetByID 根据ID获取设备
func (s *DeviceService) GetByID(id uint) (*models.Device, error) {
	var device models.Device
	err := s.db.Preload("Room").First(&device, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &device, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *DeviceService) GetWithFiltersAndPage(configID uint, deviceType, status, keyword string, roomRefID *uint, page, pageSize int) ([]*models.Device, int64, error) {
	var devices []*models.Device
	var total int64

	query := s.db.Model(&models.Device{})

	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if deviceType != "" {
		query = query.Where("device_type = ?", deviceType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if roomRefID != nil {
		query = query.Where("room_ref_id = ?", *roomRefID)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR device_id LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&devices).Error
	if err != nil {
		return nil, 0, err
	}

	return devices, total, nil
}

// UpdateDeviceParams 更新设备参数
type UpdateDeviceParams struct {
	Name         *string
	DeviceType   *string
	DeviceConfig datatypes.JSON
}

// Update 更新设备，设备ID不可变更
func (s *DeviceService) Update(id uint, params UpdateDeviceParams) (*models.Device, error) {
	device, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, errors.NewValidationError("name", "设备名称不能为空")
		}
		device.Name = *params.Name
	}
	if params.DeviceType != nil {
		device.DeviceType = *params.DeviceType
	}
	if params.DeviceConfig != nil {
		device.DeviceConfig = params.DeviceConfig
	}

	if err := s.db.Save(device).Error; err != nil {
		return nil, err
	}
	return device, nil
}

// UpdateStatus 更新设备状态
func (s *DeviceService) UpdateStatus(id uint, status string) (*models.Device, error) {
	switch status {
	case models.DeviceStatusOnline, models.DeviceStatusOffline,
		models.DeviceStatusMaintenance, models.DeviceStatusError:
	default:
		return nil, errors.NewValidationError("status", "无效的设备状态")
	}

	device, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	device.Status = status
	if err := s.db.Model(device).Update("status", status).Error; err != nil {
		return nil, err
	}
	return device, nil
}

// Delete 删除设备
func (s *DeviceService) Delete(id uint) error {
	result := s.db.Delete(&models.Device{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}
