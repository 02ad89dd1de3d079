package models

// Room 旧版会议室目录（与MeetingRoom并存的历史遗留目录）
type Room struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	RoomID    string `gorm:"unique;not null;size:64;index" json:"room_id"`
	Name      string `gorm:"not null;size:100" json:"name"`
	RoomType  string `gorm:"size:20;default:'physical'" json:"room_type"`
	Capacity  int    `gorm:"default:0" json:"capacity"`
	Location  string `gorm:"size:200" json:"location"`
	Status    string `gorm:"size:20;default:'active'" json:"status"`
	Equipment string `gorm:"size:500" json:"equipment"` // 设备描述，平铺字符串

	// 关联
	Config *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
}

// TableName 表名
func (r *Room) TableName() string {
	return "rooms"
}

// 旧版会议室类型常量
const (
	RoomTypePhysical = "physical" // 实体会议室
	RoomTypeVirtual  = "virtual"  // 虚拟会议室
	RoomTypeHybrid   = "hybrid"   // 混合会议室
)

// 会议室状态常量
const (
	RoomStatusActive      = "active"
	RoomStatusInactive    = "inactive"
	RoomStatusMaintenance = "maintenance"
)
