package models

// MeetingRoom 新版会议室目录，拥有设备列表和能力开关
type MeetingRoom struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	RoomID   string `gorm:"unique;not null;size:64;index" json:"room_id"`
	Name     string `gorm:"not null;size:100" json:"name"`
	RoomType string `gorm:"size:30;default:'conference_room'" json:"room_type"`
	Capacity int    `gorm:"default:0" json:"capacity"`
	Location string `gorm:"size:200" json:"location"`
	Status   string `gorm:"size:20;default:'active'" json:"status"`

	// 能力开关
	SupportsRecording   bool `gorm:"default:false" json:"supports_recording"`
	SupportsLive        bool `gorm:"default:false" json:"supports_live"`
	SupportsScreenShare bool `gorm:"default:true" json:"supports_screen_share"`

	// 关联
	Config  *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
	Devices []*Device             `gorm:"foreignKey:RoomRefID" json:"devices,omitempty"`
}

// TableName 表名
func (r *MeetingRoom) TableName() string {
	return "meeting_rooms"
}

// 新版会议室类型常量
const (
	MeetingRoomTypeHuddle     = "huddle_room"     // 讨论间
	MeetingRoomTypeConference = "conference_room" // 会议室
	MeetingRoomTypeTraining   = "training_room"   // 培训室
	MeetingRoomTypeAuditorium = "auditorium"      // 报告厅
)

// AddDevice 添加设备，维护反向指针，重复添加幂等
func (r *MeetingRoom) AddDevice(d *Device) {
	for _, existing := range r.Devices {
		if existing == d {
			return
		}
	}
	d.Room = r
	d.RoomRefID = &r.ID
	r.Devices = append(r.Devices, d)
}

// RemoveDevice 移除设备，反向指针置空
func (r *MeetingRoom) RemoveDevice(d *Device) {
	for i, existing := range r.Devices {
		if existing == d {
			r.Devices = append(r.Devices[:i], r.Devices[i+1:]...)
			if d.Room == r {
				d.Room = nil
				d.RoomRefID = nil
			}
			return
		}
	}
}
