package models

import (
	"time"

	"gorm.io/datatypes"
)

// Layout 布局样式目录
type Layout struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	LayoutID     string         `gorm:"unique;not null;size:64;index" json:"layout_id"`
	Name         string         `gorm:"not null;size:100" json:"name"`
	Description  string         `gorm:"size:500" json:"description"`
	LayoutType   string         `gorm:"size:20;default:'grid'" json:"layout_type"`
	LayoutConfig datatypes.JSON `gorm:"type:jsonb" json:"layout_config"` // 布局配置块
	IsDefault    bool           `gorm:"default:false" json:"is_default"`
	IsBuiltIn    bool           `gorm:"default:false" json:"is_built_in"`
	OrderWeight  int            `gorm:"default:0" json:"order_weight"`
	Status       string         `gorm:"size:20;default:'active'" json:"status"`
	ExpirationTime *time.Time   `json:"expiration_time"`

	// 关联
	Config *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
}

// TableName 表名
func (l *Layout) TableName() string {
	return "layouts"
}

// 布局类型常量
const (
	LayoutTypeGrid     = "grid"     // 宫格
	LayoutTypeSpeaker  = "speaker"  // 演讲者视图
	LayoutTypeSidebar  = "sidebar"  // 侧边栏
	LayoutTypeCustom   = "custom"   // 自定义
)

// 布局状态常量
const (
	LayoutStatusActive   = "active"
	LayoutStatusInactive = "inactive"
)

// MeetingLayout 会议布局应用记录
type MeetingLayout struct {
	BaseModel
	MeetingRefID    uint           `gorm:"not null;index" json:"meeting_ref_id"`
	LayoutRefID     uint           `gorm:"not null;index" json:"layout_ref_id"`
	ApplicationTime time.Time      `gorm:"not null" json:"application_time"`
	Status          string         `gorm:"size:20;default:'active'" json:"status"`
	AppliedBy       string         `gorm:"size:64" json:"applied_by"`
	CustomConfig    datatypes.JSON `gorm:"type:jsonb" json:"custom_config"` // 应用时的个性化配置
	Remark          string         `gorm:"size:255" json:"remark"`

	// 关联
	Meeting *Meeting `gorm:"foreignKey:MeetingRefID" json:"meeting,omitempty"`
	Layout  *Layout  `gorm:"foreignKey:LayoutRefID" json:"layout,omitempty"`
}

// TableName 表名
func (ml *MeetingLayout) TableName() string {
	return "meeting_layouts"
}

// 应用记录状态常量（区别于目录状态，表示该次应用是否仍然生效）
const (
	ApplicationStatusActive   = "active"
	ApplicationStatusInactive = "inactive"
)
