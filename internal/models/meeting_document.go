package models

// MeetingDocument 会议文档
type MeetingDocument struct {
	BaseModel
	MeetingRefID uint `gorm:"not null;index" json:"meeting_ref_id"`

	Title         string `gorm:"not null;size:200" json:"title"`
	DocumentType  string `gorm:"size:20;default:'file'" json:"document_type"`
	FileURL       string `gorm:"size:500" json:"file_url"`
	FileSize      int64  `gorm:"default:0" json:"file_size"` // 字节
	Status        string `gorm:"size:20;default:'uploaded'" json:"status"`
	UploadedBy    string `gorm:"size:64" json:"uploaded_by"`
	ViewCount     int    `gorm:"default:0" json:"view_count"`
	DownloadCount int    `gorm:"default:0" json:"download_count"`

	// 关联
	Meeting *Meeting `gorm:"foreignKey:MeetingRefID" json:"meeting,omitempty"`
}

// TableName 表名
func (d *MeetingDocument) TableName() string {
	return "meeting_documents"
}

// 文档类型常量
const (
	DocumentTypeFile       = "file"       // 普通文件
	DocumentTypeShared     = "shared"     // 共享文档
	DocumentTypeWhiteboard = "whiteboard" // 白板导出
)

// 文档状态常量
const (
	DocumentStatusUploaded = "uploaded" // 已上传
	DocumentStatusShared   = "shared"   // 共享中
	DocumentStatusArchived = "archived" // 已归档
	DocumentStatusDeleted  = "deleted"  // 已删除
)
