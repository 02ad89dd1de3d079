package models

import (
	"time"
)

// BaseModel 所有管理端实体共用的主键与时间戳，时间戳由GORM在写入时维护
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
