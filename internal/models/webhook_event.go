package models

import (
	"time"
)

// WebhookEvent Webhook事件 - 一条入站通知及其处理生命周期的持久化记录
// 事件只追加不删除，作为投递历史的审计日志
type WebhookEvent struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	// 事件内容
	EventID   string     `gorm:"size:64;index" json:"event_id"`     // 事件ID（来自载荷，缺失时生成）
	EventType string     `gorm:"size:100;index" json:"event_type"`  // 事件类型，如 meeting.started
	Payload   string     `gorm:"type:text;not null" json:"payload"` // 原始载荷，原样保存
	MeetingID string     `gorm:"size:64;index" json:"meeting_id"`   // 关联会议（可选）
	UserID    string     `gorm:"size:64;index" json:"user_id"`      // 关联用户（可选）
	EventTime *time.Time `json:"event_time"`

	// 处理状态机：pending -> processing -> success/failed，failed可重试回pending
	ProcessStatus  string     `gorm:"size:20;default:'pending';index" json:"process_status"`
	ProcessResult  string     `gorm:"type:text" json:"process_result"` // 处理结果摘要（JSON）
	ProcessingTime *time.Time `json:"processing_time"`                 // 处理完成时间
	RetryCount     int        `gorm:"default:0" json:"retry_count"`
	NextRetryTime  *time.Time `gorm:"index" json:"next_retry_time"`
	ErrorMessage   string     `gorm:"size:1000" json:"error_message"`

	// 来源信息
	SignatureVerified bool   `gorm:"default:false" json:"signature_verified"`
	SourceIP          string `gorm:"size:45" json:"source_ip"`
	UserAgent         string `gorm:"size:255" json:"user_agent"`

	// 关联
	Config *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
}

// TableName 表名
func (e *WebhookEvent) TableName() string {
	return "webhook_events"
}

// 事件处理状态常量
const (
	WebhookStatusPending    = "pending"    // 待处理
	WebhookStatusProcessing = "processing" // 处理中
	WebhookStatusSuccess    = "success"    // 处理成功
	WebhookStatusFailed     = "failed"     // 处理失败
)

// 事件类型常量
const (
	EventMeetingCreated     = "meeting.created"
	EventMeetingStarted     = "meeting.started"
	EventMeetingEnded       = "meeting.ended"
	EventMeetingCancelled   = "meeting.cancelled"
	EventRecordingCompleted = "recording.completed"
	EventUserJoined         = "meeting.participant_joined"
	EventUserLeft           = "meeting.participant_left"
)

// CanRetry 当前状态是否允许重试
func (e *WebhookEvent) CanRetry() bool {
	return e.ProcessStatus == WebhookStatusPending || e.ProcessStatus == WebhookStatusFailed
}

// CanProcess 当前状态是否允许进入处理
func (e *WebhookEvent) CanProcess() bool {
	return e.ProcessStatus == WebhookStatusPending || e.ProcessStatus == WebhookStatusFailed
}

// IsFinished 是否已处理成功
func (e *WebhookEvent) IsFinished() bool {
	return e.ProcessStatus == WebhookStatusSuccess
}

// IsDue 是否到达重试时间
func (e *WebhookEvent) IsDue(now time.Time) bool {
	if e.ProcessStatus != WebhookStatusPending {
		return false
	}
	if e.NextRetryTime == nil {
		return true
	}
	return !e.NextRetryTime.After(now)
}
