package services

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"tmadmin/internal/models"
	"tmadmin/pkg/config"
	"tmadmin/pkg/errors"

	"gorm.io/gorm"
)

// ConfigService 腾讯会议配置服务
type ConfigService struct {
	db *gorm.DB
}

// NewConfigService 创建配置服务
func NewConfigService(db *gorm.DB) *ConfigService {
	return &ConfigService{db: db}
}

// ConfigStats 配置统计信息
type ConfigStats struct {
	Total    int64 `json:"total"`
	Enabled  int64 `json:"enabled"`
	Disabled int64 `json:"disabled"`
}

// CreateConfigParams 创建配置参数
type CreateConfigParams struct {
	AppID        string
	SecretID     string
	SecretKey    string
	AuthType     string
	WebhookToken string
	Description  string
}

// Create 创建配置，AppID全局唯一
func (s *ConfigService) Create(params CreateConfigParams) (*models.TencentMeetingConfig, error) {
	if params.AppID == "" {
		return nil, errors.NewValidationError("app_id", "AppID不能为空")
	}
	if params.SecretID == "" || params.SecretKey == "" {
		return nil, errors.NewValidationError("secret", "SecretID和SecretKey不能为空")
	}
	if params.AuthType == "" {
		params.AuthType = models.AuthTypeJWT
	}
	if params.AuthType != models.AuthTypeJWT && params.AuthType != models.AuthTypeOAuth2 {
		return nil, errors.NewValidationError("auth_type", "认证类型只能是jwt或oauth2")
	}

	// AppID重复预检查
	var count int64
	s.db.Model(&models.TencentMeetingConfig{}).Where("app_id = ?", params.AppID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	cfg := &models.TencentMeetingConfig{
		AppID:        params.AppID,
		SecretID:     params.SecretID,
		SecretKey:    params.SecretKey,
		AuthType:     params.AuthType,
		WebhookToken: params.WebhookToken,
		Description:  params.Description,
		Enabled:      true,
	}

	if err := s.db.Create(cfg).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateKey
		}
		return nil, err
	}
	return cfg, nil
}

// GetByID 根据ID获取配置
func (s *ConfigService) GetByID(id uint) (*models.TencentMeetingConfig, error) {
	var cfg models.TencentMeetingConfig
	err := s.db.First(&cfg, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &cfg, err
}

// GetByAppID 根据AppID获取配置
func (s *ConfigService) GetByAppID(appID string) (*models.TencentMeetingConfig, error) {
	var cfg models.TencentMeetingConfig
	err := s.db.Where("app_id = ?", appID).First(&cfg).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &cfg, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *ConfigService) GetWithFiltersAndPage(enabled *bool, keyword string, page, pageSize int) ([]*models.TencentMeetingConfig, int64, error) {
	var configs []*models.TencentMeetingConfig
	var total int64

	query := s.db.Model(&models.TencentMeetingConfig{})

	if enabled != nil {
		query = query.Where("enabled = ?", *enabled)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("app_id LIKE ? OR description LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&configs).Error
	if err != nil {
		return nil, 0, err
	}

	return configs, total, nil
}

// UpdateConfigParams 更新配置参数
type UpdateConfigParams struct {
	SecretID     *string
	SecretKey    *string
	AuthType     *string
	WebhookToken *string
	Description  *string
}

// Update 更新配置，AppID不可变更
func (s *ConfigService) Update(id uint, params UpdateConfigParams) (*models.TencentMeetingConfig, error) {
	cfg, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if params.AuthType != nil {
		if *params.AuthType != models.AuthTypeJWT && *params.AuthType != models.AuthTypeOAuth2 {
			return nil, errors.NewValidationError("auth_type", "认证类型只能是jwt或oauth2")
		}
		cfg.AuthType = *params.AuthType
	}
	if params.SecretID != nil {
		cfg.SecretID = *params.SecretID
	}
	if params.SecretKey != nil {
		cfg.SecretKey = *params.SecretKey
	}
	if params.WebhookToken != nil {
		cfg.WebhookToken = *params.WebhookToken
	}
	if params.Description != nil {
		cfg.Description = *params.Description
	}

	if err := s.db.Save(cfg).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}

// Delete 删除配置
func (s *ConfigService) Delete(id uint) error {
	result := s.db.Delete(&models.TencentMeetingConfig{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// Enable 启用配置
func (s *ConfigService) Enable(id uint) (*models.TencentMeetingConfig, error) {
	return s.setEnabled(id, true)
}

// Disable 禁用配置 - 禁用后Webhook接收和连接测试都会被拒绝
func (s *ConfigService) Disable(id uint) (*models.TencentMeetingConfig, error) {
	return s.setEnabled(id, false)
}

func (s *ConfigService) setEnabled(id uint, enabled bool) (*models.TencentMeetingConfig, error) {
	cfg, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	cfg.Enabled = enabled
	if err := s.db.Save(cfg).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}

// TestConnection 测试与腾讯会议API的连通性
// 禁用的配置直接拒绝，传输错误和HTTP错误分别报告
func (s *ConfigService) TestConnection(id uint) error {
	cfg, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if !cfg.IsEnabled() {
		return errors.ErrAuthentication
	}

	baseURL := config.GetConfig().Webhook.APIBaseURL
	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequest(http.MethodGet, baseURL+"/v1/ping", nil)
	if err != nil {
		return fmt.Errorf("构造请求失败: %v", err)
	}
	req.Header.Set("AppId", cfg.AppID)
	req.Header.Set("SdkId", cfg.SecretID)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("连接失败: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errors.ErrAuthentication
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("服务端异常: HTTP %d", resp.StatusCode)
	}
	return nil
}

// GetStats 配置统计
func (s *ConfigService) GetStats() (*ConfigStats, error) {
	stats := &ConfigStats{}

	s.db.Model(&models.TencentMeetingConfig{}).Count(&stats.Total)
	s.db.Model(&models.TencentMeetingConfig{}).Where("enabled = ?", true).Count(&stats.Enabled)
	s.db.Model(&models.TencentMeetingConfig{}).Where("enabled = ?", false).Count(&stats.Disabled)

	return stats, nil
}
