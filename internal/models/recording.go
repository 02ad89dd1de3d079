package models

import (
	"time"

	"tmadmin/pkg/errors"
)

// Recording 会议录制记录
type Recording struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	RecordingID   string     `gorm:"unique;not null;size:64;index" json:"recording_id"`
	MeetingRefID  uint       `gorm:"index" json:"meeting_ref_id"`
	RecordingType string     `gorm:"size:20;default:'cloud'" json:"recording_type"`
	FileURL       string     `gorm:"not null;size:500" json:"file_url"`
	FileSize      int64      `gorm:"default:0" json:"file_size"` // 字节
	Status        string     `gorm:"size:20;default:'recording';index" json:"status"`
	StartTime     time.Time  `gorm:"not null" json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	ShareStatus   string     `gorm:"size:20;default:'private'" json:"share_status"`
	ViewCount     int        `gorm:"default:0" json:"view_count"`
	DownloadCount int        `gorm:"default:0" json:"download_count"`

	// 关联
	Config  *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
	Meeting *Meeting              `gorm:"foreignKey:MeetingRefID" json:"meeting,omitempty"`
}

// TableName 表名
func (r *Recording) TableName() string {
	return "recordings"
}

// 录制类型常量
const (
	RecordingTypeCloud = "cloud" // 云端录制
	RecordingTypeLocal = "local" // 本地录制
)

// 录制状态常量
const (
	RecordingStatusRecording  = "recording"
	RecordingStatusProcessing = "processing"
	RecordingStatusAvailable  = "available"
	RecordingStatusFailed     = "failed"
	RecordingStatusDeleted    = "deleted"
)

// 共享状态常量
const (
	ShareStatusPrivate  = "private"  // 仅自己可见
	ShareStatusInternal = "internal" // 企业内可见
	ShareStatusPublic   = "public"   // 公开
)

// Validate 校验录制字段
func (r *Recording) Validate() error {
	if r.FileURL == "" {
		return errors.NewValidationError("file_url", "文件地址不能为空")
	}
	if r.EndTime != nil && !r.EndTime.After(r.StartTime) {
		return errors.NewValidationError("end_time", "结束时间必须晚于开始时间")
	}
	return nil
}
