package models

// TencentMeetingConfig 腾讯会议租户配置 - 所有业务实体都挂在某个配置下
type TencentMeetingConfig struct {
	BaseModel
	AppID        string `json:"app_id" gorm:"unique;not null;size:50;index"`
	SecretID     string `json:"secret_id" gorm:"not null;size:100"`
	SecretKey    string `json:"-" gorm:"not null;size:255"` // 敏感字段，不对外输出
	AuthType     string `json:"auth_type" gorm:"size:20;default:'jwt'"`
	WebhookToken string `json:"-" gorm:"size:255"` // Webhook签名Token，可选
	Enabled      bool   `json:"enabled" gorm:"default:true"`
	Description  string `json:"description" gorm:"size:255"`
}

// TableName 表名
func (c *TencentMeetingConfig) TableName() string {
	return "tencent_meeting_configs"
}

// 认证类型常量
const (
	AuthTypeJWT    = "jwt"
	AuthTypeOAuth2 = "oauth2"
)

// IsEnabled 配置是否启用
func (c *TencentMeetingConfig) IsEnabled() bool {
	return c.Enabled
}

// HasWebhookToken 是否配置了Webhook签名Token
func (c *TencentMeetingConfig) HasWebhookToken() bool {
	return c.WebhookToken != ""
}
