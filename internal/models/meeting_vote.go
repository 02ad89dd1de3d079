package models

import (
	"encoding/json"
	"time"

	"tmadmin/pkg/errors"

	"gorm.io/datatypes"
)

// MeetingVote 会议投票
type MeetingVote struct {
	BaseModel
	MeetingRefID uint `gorm:"not null;index" json:"meeting_ref_id"`

	Title       string         `gorm:"not null;size:200" json:"title"`
	VoteType    string         `gorm:"size:20;default:'single'" json:"vote_type"`
	Status      string         `gorm:"size:20;default:'draft'" json:"status"`
	Options     datatypes.JSON `gorm:"type:jsonb" json:"options"` // 选项列表，至少一项
	IsAnonymous bool           `gorm:"default:false" json:"is_anonymous"`
	StartTime   *time.Time     `json:"start_time"`
	EndTime     *time.Time     `json:"end_time"`
	CreatedBy   string         `gorm:"size:64" json:"created_by"`

	// 关联
	Meeting *Meeting `gorm:"foreignKey:MeetingRefID" json:"meeting,omitempty"`
}

// TableName 表名
func (v *MeetingVote) TableName() string {
	return "meeting_votes"
}

// 投票类型常量
const (
	VoteTypeSingle   = "single"   // 单选
	VoteTypeMultiple = "multiple" // 多选
)

// 投票状态常量
const (
	VoteStatusDraft    = "draft"    // 草稿
	VoteStatusOngoing  = "ongoing"  // 进行中
	VoteStatusFinished = "finished" // 已结束
)

// Validate 校验投票字段，选项列表不能为空
func (v *MeetingVote) Validate() error {
	if v.Title == "" {
		return errors.NewValidationError("title", "投票标题不能为空")
	}
	if len(v.Options) == 0 {
		return errors.NewValidationError("options", "至少需要一个选项")
	}
	var options []interface{}
	if err := json.Unmarshal(v.Options, &options); err != nil {
		return errors.NewValidationError("options", "选项格式错误")
	}
	if len(options) == 0 {
		return errors.NewValidationError("options", "至少需要一个选项")
	}
	return nil
}
