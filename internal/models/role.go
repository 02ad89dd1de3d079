package models

import (
	"time"

	"tmadmin/pkg/errors"

	"gorm.io/datatypes"
)

// Role 角色目录
type Role struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	RoleID      string         `gorm:"unique;not null;size:64;index" json:"role_id"`
	Name        string         `gorm:"not null;size:100" json:"name"`
	Description string         `gorm:"size:500" json:"description"`
	RoleType    string         `gorm:"size:20;default:'custom'" json:"role_type"`
	Status      string         `gorm:"size:20;default:'active'" json:"status"`
	Permissions datatypes.JSON `gorm:"type:jsonb" json:"permissions"` // 权限配置块，无固定Schema
	OrderWeight int            `gorm:"default:0" json:"order_weight"`
	IsBuiltIn   bool           `gorm:"default:false" json:"is_built_in"`

	// 关联
	Config *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
}

// TableName 表名
func (r *Role) TableName() string {
	return "roles"
}

// 角色类型常量
const (
	RoleTypeSystem = "system" // 系统角色
	RoleTypeCustom = "custom" // 自定义角色
)

// 角色状态常量
const (
	RoleStatusActive   = "active"
	RoleStatusInactive = "inactive"
)

// 内置角色常量
const (
	RoleHost     = "host"      // 主持人
	RoleCoHost   = "co_host"   // 联席主持人
	RoleAttendee = "attendee"  // 普通参会人
)

// ========== 角色分配关联实体 ==========

// UserRole 用户角色分配
type UserRole struct {
	BaseModel
	UserRefID      uint       `gorm:"not null;index" json:"user_ref_id"`
	RoleRefID      uint       `gorm:"not null;index" json:"role_ref_id"`
	Status         string     `gorm:"size:20;default:'active'" json:"status"`
	AssignmentTime time.Time  `gorm:"not null" json:"assignment_time"`
	ExpirationTime *time.Time `json:"expiration_time"`
	AssignedBy     string     `gorm:"size:64" json:"assigned_by"`
	Remark         string     `gorm:"size:255" json:"remark"`

	// 关联
	User *User `gorm:"foreignKey:UserRefID" json:"user,omitempty"`
	Role *Role `gorm:"foreignKey:RoleRefID" json:"role,omitempty"`
}

// TableName 表名
func (ur *UserRole) TableName() string {
	return "user_roles"
}

// MeetingRole 会议角色分配
type MeetingRole struct {
	BaseModel
	MeetingRefID   uint       `gorm:"not null;index" json:"meeting_ref_id"`
	RoleRefID      uint       `gorm:"not null;index" json:"role_ref_id"`
	UserID         string     `gorm:"size:64;index" json:"user_id"` // 被分配角色的参会用户
	Status         string     `gorm:"size:20;default:'active'" json:"status"`
	AssignmentTime time.Time  `gorm:"not null" json:"assignment_time"`
	ExpirationTime *time.Time `json:"expiration_time"`
	AssignedBy     string     `gorm:"size:64" json:"assigned_by"`
	Remark         string     `gorm:"size:255" json:"remark"`

	// 关联
	Meeting *Meeting `gorm:"foreignKey:MeetingRefID" json:"meeting,omitempty"`
	Role    *Role    `gorm:"foreignKey:RoleRefID" json:"role,omitempty"`
}

// TableName 表名
func (mr *MeetingRole) TableName() string {
	return "meeting_roles"
}

// 角色分配状态常量
const (
	AssignmentStatusActive  = "active"  // 生效中
	AssignmentStatusExpired = "expired" // 已过期
	AssignmentStatusRevoked = "revoked" // 已撤销
)

// Validate 校验分配时间顺序
func (ur *UserRole) Validate() error {
	if ur.ExpirationTime != nil && !ur.ExpirationTime.After(ur.AssignmentTime) {
		return errors.NewValidationError("expiration_time", "过期时间必须晚于分配时间")
	}
	return nil
}

// CanRevoke 仅生效中的分配可以撤销
func (ur *UserRole) CanRevoke() bool {
	return ur.Status == AssignmentStatusActive
}

// Validate 校验分配时间顺序
func (mr *MeetingRole) Validate() error {
	if mr.ExpirationTime != nil && !mr.ExpirationTime.After(mr.AssignmentTime) {
		return errors.NewValidationError("expiration_time", "过期时间必须晚于分配时间")
	}
	return nil
}

// CanRevoke 仅生效中的分配可以撤销
func (mr *MeetingRole) CanRevoke() bool {
	return mr.Status == AssignmentStatusActive
}
