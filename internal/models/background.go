package models

import (
	"time"

	"gorm.io/datatypes"
)

// Background 背景样式目录
type Background struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	BackgroundID   string     `gorm:"unique;not null;size:64;index" json:"background_id"`
	Name           string     `gorm:"not null;size:100" json:"name"`
	Description    string     `gorm:"size:500" json:"description"`
	BackgroundType string     `gorm:"size:20;default:'image'" json:"background_type"`
	ImageURL       string     `gorm:"size:500" json:"image_url"`
	IsDefault      bool       `gorm:"default:false" json:"is_default"`
	IsBuiltIn      bool       `gorm:"default:false" json:"is_built_in"`
	OrderWeight    int        `gorm:"default:0" json:"order_weight"`
	Status         string     `gorm:"size:20;default:'active'" json:"status"`
	ExpirationTime *time.Time `json:"expiration_time"`

	// 关联
	Config *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
}

// TableName 表名
func (b *Background) TableName() string {
	return "backgrounds"
}

// 背景类型常量
const (
	BackgroundTypeImage = "image" // 图片背景
	BackgroundTypeBlur  = "blur"  // 虚化背景
	BackgroundTypeColor = "color" // 纯色背景
	BackgroundTypeVideo = "video" // 视频背景
)

// 背景状态常量
const (
	BackgroundStatusActive   = "active"
	BackgroundStatusInactive = "inactive"
)

// MeetingBackground 会议背景应用记录
type MeetingBackground struct {
	BaseModel
	MeetingRefID    uint           `gorm:"not null;index" json:"meeting_ref_id"`
	BackgroundRefID uint           `gorm:"not null;index" json:"background_ref_id"`
	ApplicationTime time.Time      `gorm:"not null" json:"application_time"`
	Status          string         `gorm:"size:20;default:'active'" json:"status"`
	AppliedBy       string         `gorm:"size:64" json:"applied_by"`
	CustomConfig    datatypes.JSON `gorm:"type:jsonb" json:"custom_config"`
	Remark          string         `gorm:"size:255" json:"remark"`

	// 关联
	Meeting    *Meeting    `gorm:"foreignKey:MeetingRefID" json:"meeting,omitempty"`
	Background *Background `gorm:"foreignKey:BackgroundRefID" json:"background,omitempty"`
}

// TableName 表名
func (mb *MeetingBackground) TableName() string {
	return "meeting_backgrounds"
}
