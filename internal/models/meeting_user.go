package models

import (
	"time"
)

// MeetingUser 参会人记录 - 绑定会议与企业用户，带参会状态与时长统计
type MeetingUser struct {
	BaseModel
	MeetingRefID uint `gorm:"not null;index" json:"meeting_ref_id"`

	UserID           string     `gorm:"not null;size:64;index" json:"user_id"`
	Username         string     `gorm:"size:100" json:"username"`
	InviteStatus     string     `gorm:"size:20;default:'invited'" json:"invite_status"`
	AttendanceStatus string     `gorm:"size:20;default:'absent'" json:"attendance_status"`
	JoinTime         *time.Time `json:"join_time"`
	LeaveTime        *time.Time `json:"leave_time"`
	AttendDuration   int        `gorm:"default:0" json:"attend_duration"` // 参会时长（分钟）
	IsMuted          bool       `gorm:"default:false" json:"is_muted"`
	Remark           string     `gorm:"size:255" json:"remark"`

	// 关联
	Meeting *Meeting `gorm:"foreignKey:MeetingRefID" json:"meeting,omitempty"`
}

// TableName 表名
func (mu *MeetingUser) TableName() string {
	return "meeting_users"
}

// 邀请状态常量
const (
	InviteStatusInvited  = "invited"  // 已邀请
	InviteStatusAccepted = "accepted" // 已接受
	InviteStatusDeclined = "declined" // 已拒绝
)

// 出席状态常量
const (
	AttendanceStatusAbsent   = "absent"   // 未出席
	AttendanceStatusPresent  = "present"  // 出席中
	AttendanceStatusLeft     = "left"     // 已离开
)
