package models

import (
	"time"

	"tmadmin/pkg/errors"
)

// Meeting 会议模型
type Meeting struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	MeetingID    string     `gorm:"unique;not null;size:64;index" json:"meeting_id"`
	MeetingCode  string     `gorm:"size:32" json:"meeting_code"`
	Subject      string     `gorm:"not null;size:200" json:"subject"`
	StartTime    time.Time  `gorm:"not null" json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	Status       string     `gorm:"size:20;default:'scheduled';index" json:"status"`
	Duration     int        `gorm:"default:60" json:"duration"` // 会议时长（分钟）
	UserID       string     `gorm:"size:64;index" json:"user_id"` // 主持人
	Timezone     string     `gorm:"size:50;default:'Asia/Shanghai'" json:"timezone"`
	MeetingURL   string     `gorm:"size:500" json:"meeting_url"`
	Password     string     `gorm:"size:32" json:"-"`
	ReminderSent bool       `gorm:"default:false" json:"reminder_sent"`

	// 关联
	Config             *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
	Attendees          []*MeetingUser        `gorm:"foreignKey:MeetingRefID" json:"attendees,omitempty"`
	Guests             []*MeetingGuest       `gorm:"foreignKey:MeetingRefID" json:"guests,omitempty"`
	Recordings         []*Recording          `gorm:"foreignKey:MeetingRefID" json:"recordings,omitempty"`
	Votes              []*MeetingVote        `gorm:"foreignKey:MeetingRefID" json:"votes,omitempty"`
	Documents          []*MeetingDocument    `gorm:"foreignKey:MeetingRefID" json:"documents,omitempty"`
	MeetingRoles       []*MeetingRole        `gorm:"foreignKey:MeetingRefID" json:"meeting_roles,omitempty"`
	MeetingLayouts     []*MeetingLayout      `gorm:"foreignKey:MeetingRefID" json:"meeting_layouts,omitempty"`
	MeetingBackgrounds []*MeetingBackground  `gorm:"foreignKey:MeetingRefID" json:"meeting_backgrounds,omitempty"`
}

// TableName 表名
func (m *Meeting) TableName() string {
	return "meetings"
}

// 会议状态常量
const (
	MeetingStatusScheduled  = "scheduled"   // 已预定
	MeetingStatusInProgress = "in_progress" // 进行中
	MeetingStatusEnded      = "ended"       // 已结束
	MeetingStatusCancelled  = "cancelled"   // 已取消
)

// Validate 校验会议字段
func (m *Meeting) Validate() error {
	if m.Subject == "" {
		return errors.NewValidationError("subject", "会议主题不能为空")
	}
	if m.Duration <= 0 {
		return errors.NewValidationError("duration", "会议时长必须大于0")
	}
	if m.EndTime != nil && !m.EndTime.After(m.StartTime) {
		return errors.NewValidationError("end_time", "结束时间必须晚于开始时间")
	}
	return nil
}

// ========== 拥有集合的增删方法：双向关联同步维护，重复添加幂等 ==========

// AddAttendee 添加参会人，同时维护反向指针
func (m *Meeting) AddAttendee(mu *MeetingUser) {
	for _, existing := range m.Attendees {
		if existing == mu {
			return
		}
	}
	mu.Meeting = m
	mu.MeetingRefID = m.ID
	m.Attendees = append(m.Attendees, mu)
}

// RemoveAttendee 移除参会人，反向指针置空
func (m *Meeting) RemoveAttendee(mu *MeetingUser) {
	for i, existing := range m.Attendees {
		if existing == mu {
			m.Attendees = append(m.Attendees[:i], m.Attendees[i+1:]...)
			if mu.Meeting == m {
				mu.Meeting = nil
				mu.MeetingRefID = 0
			}
			return
		}
	}
}

// AddGuest 添加访客
func (m *Meeting) AddGuest(g *MeetingGuest) {
	for _, existing := range m.Guests {
		if existing == g {
			return
		}
	}
	g.Meeting = m
	g.MeetingRefID = m.ID
	m.Guests = append(m.Guests, g)
}

// RemoveGuest 移除访客
func (m *Meeting) RemoveGuest(g *MeetingGuest) {
	for i, existing := range m.Guests {
		if existing == g {
			m.Guests = append(m.Guests[:i], m.Guests[i+1:]...)
			if g.Meeting == m {
				g.Meeting = nil
				g.MeetingRefID = 0
			}
			return
		}
	}
}

// AddRecording 添加录制
func (m *Meeting) AddRecording(r *Recording) {
	for _, existing := range m.Recordings {
		if existing == r {
			return
		}
	}
	r.Meeting = m
	r.MeetingRefID = m.ID
	m.Recordings = append(m.Recordings, r)
}

// RemoveRecording 移除录制
func (m *Meeting) RemoveRecording(r *Recording) {
	for i, existing := range m.Recordings {
		if existing == r {
			m.Recordings = append(m.Recordings[:i], m.Recordings[i+1:]...)
			if r.Meeting == m {
				r.Meeting = nil
				r.MeetingRefID = 0
			}
			return
		}
	}
}

// AddVote 添加投票
func (m *Meeting) AddVote(v *MeetingVote) {
	for _, existing := range m.Votes {
		if existing == v {
			return
		}
	}
	v.Meeting = m
	v.MeetingRefID = m.ID
	m.Votes = append(m.Votes, v)
}

// RemoveVote 移除投票
func (m *Meeting) RemoveVote(v *MeetingVote) {
	for i, existing := range m.Votes {
		if existing == v {
			m.Votes = append(m.Votes[:i], m.Votes[i+1:]...)
			if v.Meeting == m {
				v.Meeting = nil
				v.MeetingRefID = 0
			}
			return
		}
	}
}

// AddDocument 添加文档
func (m *Meeting) AddDocument(d *MeetingDocument) {
	for _, existing := range m.Documents {
		if existing == d {
			return
		}
	}
	d.Meeting = m
	d.MeetingRefID = m.ID
	m.Documents = append(m.Documents, d)
}

// RemoveDocument 移除文档
func (m *Meeting) RemoveDocument(d *MeetingDocument) {
	for i, existing := range m.Documents {
		if existing == d {
			m.Documents = append(m.Documents[:i], m.Documents[i+1:]...)
			if d.Meeting == m {
				d.Meeting = nil
				d.MeetingRefID = 0
			}
			return
		}
	}
}

// AddMeetingRole 添加会议角色分配
func (m *Meeting) AddMeetingRole(mr *MeetingRole) {
	for _, existing := range m.MeetingRoles {
		if existing == mr {
			return
		}
	}
	mr.Meeting = m
	mr.MeetingRefID = m.ID
	m.MeetingRoles = append(m.MeetingRoles, mr)
}

// RemoveMeetingRole 移除会议角色分配
func (m *Meeting) RemoveMeetingRole(mr *MeetingRole) {
	for i, existing := range m.MeetingRoles {
		if existing == mr {
			m.MeetingRoles = append(m.MeetingRoles[:i], m.MeetingRoles[i+1:]...)
			if mr.Meeting == m {
				mr.Meeting = nil
				mr.MeetingRefID = 0
			}
			return
		}
	}
}

// AddMeetingLayout 添加布局应用记录
func (m *Meeting) AddMeetingLayout(ml *MeetingLayout) {
	for _, existing := range m.MeetingLayouts {
		if existing == ml {
			return
		}
	}
	ml.Meeting = m
	ml.MeetingRefID = m.ID
	m.MeetingLayouts = append(m.MeetingLayouts, ml)
}

// RemoveMeetingLayout 移除布局应用记录
func (m *Meeting) RemoveMeetingLayout(ml *MeetingLayout) {
	for i, existing := range m.MeetingLayouts {
		if existing == ml {
			m.MeetingLayouts = append(m.MeetingLayouts[:i], m.MeetingLayouts[i+1:]...)
			if ml.Meeting == m {
				ml.Meeting = nil
				ml.MeetingRefID = 0
			}
			return
		}
	}
}

// AddMeetingBackground 添加背景应用记录
func (m *Meeting) AddMeetingBackground(mb *MeetingBackground) {
	for _, existing := range m.MeetingBackgrounds {
		if existing == mb {
			return
		}
	}
	mb.Meeting = m
	mb.MeetingRefID = m.ID
	m.MeetingBackgrounds = append(m.MeetingBackgrounds, mb)
}

// RemoveMeetingBackground 移除背景应用记录
func (m *Meeting) RemoveMeetingBackground(mb *MeetingBackground) {
	for i, existing := range m.MeetingBackgrounds {
		if existing == mb {
			m.MeetingBackgrounds = append(m.MeetingBackgrounds[:i], m.MeetingBackgrounds[i+1:]...)
			if mb.Meeting == m {
				mb.Meeting = nil
				mb.MeetingRefID = 0
			}
			return
		}
	}
}
