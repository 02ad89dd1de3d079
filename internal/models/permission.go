package models

import (
	"gorm.io/datatypes"
)

// Permission 权限目录
type Permission struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	PermissionID     string         `gorm:"unique;not null;size:64;index" json:"permission_id"`
	Name             string         `gorm:"not null;size:100" json:"name"`
	Description      string         `gorm:"size:500" json:"description"`
	PermissionType   string         `gorm:"size:20;default:'function'" json:"permission_type"`
	Status           string         `gorm:"size:20;default:'active'" json:"status"`
	Attributes       datatypes.JSON `gorm:"type:jsonb" json:"attributes"`        // 属性块，无固定Schema
	PermissionConfig datatypes.JSON `gorm:"type:jsonb" json:"permission_config"` // 权限配置块
	OrderWeight      int            `gorm:"default:0" json:"order_weight"`
	IsBuiltIn        bool           `gorm:"default:false" json:"is_built_in"`

	// 关联
	Config *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
}

// TableName 表名
func (p *Permission) TableName() string {
	return "permissions"
}

// 权限类型常量
const (
	PermissionTypeFunction = "function" // 功能权限
	PermissionTypeData     = "data"     // 数据权限
)

// 权限状态常量
const (
	PermissionStatusActive   = "active"
	PermissionStatusInactive = "inactive"
)
