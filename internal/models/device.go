package models

import (
	"gorm.io/datatypes"
)

// Device 会议室设备
type Device struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	DeviceID     string         `gorm:"unique;not null;size:64;index" json:"device_id"`
	Name         string         `gorm:"not null;size:100" json:"name"`
	DeviceType   string         `gorm:"size:20;default:'other'" json:"device_type"`
	Status       string         `gorm:"size:20;default:'offline';index" json:"status"`
	RoomRefID    *uint          `gorm:"index" json:"room_ref_id"`
	DeviceConfig datatypes.JSON `gorm:"type:jsonb" json:"device_config"` // 设备配置块，无固定Schema

	// 关联
	Config *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
	Room   *MeetingRoom          `gorm:"foreignKey:RoomRefID" json:"room,omitempty"`
}

// TableName 表名
func (d *Device) TableName() string {
	return "devices"
}

// 设备类型常量
const (
	DeviceTypeCamera      = "camera"
	DeviceTypeMicrophone  = "microphone"
	DeviceTypeSpeaker     = "speaker"
	DeviceTypeDisplay     = "display"
	DeviceTypeTouchScreen = "touch_screen"
	DeviceTypeWhiteboard  = "whiteboard"
	DeviceTypeOther       = "other"
)

// 设备状态常量
const (
	DeviceStatusOnline      = "online"
	DeviceStatusOffline     = "offline"
	DeviceStatusMaintenance = "maintenance"
	DeviceStatusError       = "error"
)

// IsOnline 设备是否在线
func (d *Device) IsOnline() bool {
	return d.Status == DeviceStatusOnline
}
