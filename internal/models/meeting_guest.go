package models

import (
	"time"
)

// MeetingGuest 会议访客 - 企业外参会者
type MeetingGuest struct {
	BaseModel
	MeetingRefID uint `gorm:"not null;index" json:"meeting_ref_id"`

	GuestName    string     `gorm:"not null;size:100" json:"guest_name"`
	Email        *string    `gorm:"size:100" json:"email"`
	Phone        *string    `gorm:"size:20" json:"phone"`
	InviteStatus string     `gorm:"size:20;default:'invited'" json:"invite_status"`
	JoinTime     *time.Time `json:"join_time"`
	LeaveTime    *time.Time `json:"leave_time"`
	Remark       string     `gorm:"size:255" json:"remark"`

	// 关联
	Meeting *Meeting `gorm:"foreignKey:MeetingRefID" json:"meeting,omitempty"`
}

// TableName 表名
func (g *MeetingGuest) TableName() string {
	return "meeting_guests"
}
