package services

import (
	stderrors "errors"
	"fmt"
	"time"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"gorm.io/gorm"
)

// BackgroundService 背景目录服务
type BackgroundService struct {
	db *gorm.DB
}

// NewBackgroundService 创建背景目录服务
func NewBackgroundService(db *gorm.DB) *BackgroundService {
	return &BackgroundService{db: db}
}

// CreateBackgroundParams 创建背景参数
type CreateBackgroundParams struct {
	ConfigID       uint
	BackgroundID   string
	Name           string
	Description    string
	BackgroundType string
	ImageURL       string
	OrderWeight    int
	ExpirationTime *time.Time
}

// Create 创建背景
func (s *BackgroundService) Create(params CreateBackgroundParams) (*models.Background, error) {
	if params.BackgroundID == "" {
		return nil, errors.NewValidationError("background_id", "背景ID不能为空")
	}
	if params.Name == "" {
		return nil, errors.NewValidationError("name", "背景名称不能为空")
	}
	if params.BackgroundType == models.BackgroundTypeImage && params.ImageURL == "" {
		return nil, errors.NewValidationError("image_url", "图片背景必须提供图片地址")
	}

	var count int64
	s.db.Model(&models.Background{}).Where("background_id = ?", params.BackgroundID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	background := &models.Background{
		ConfigID:       params.ConfigID,
		BackgroundID:   params.BackgroundID,
		Name:           params.Name,
		Description:    params.Description,
		BackgroundType: params.BackgroundType,
		ImageURL:       params.ImageURL,
		Status:         models.BackgroundStatusActive,
		OrderWeight:    params.OrderWeight,
		ExpirationTime: params.ExpirationTime,
	}
	if background.BackgroundType == "" {
		background.BackgroundType = models.BackgroundTypeImage
	}

	if err := s.db.Create(background).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateKey
		}
		return nil, err
	}
	return background, nil
}

// GetByID 根据ID获取背景
func (s *BackgroundService) GetByID(id uint) (*models.Background, error) {
	var background models.Background
	err := s.db.First(&background, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &background, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *BackgroundService) GetWithFiltersAndPage(configID uint, backgroundType, status, keyword string, page, pageSize int) ([]*models.Background, int64, error) {
	var backgrounds []*models.Background
	var total int64

	query := s.db.Model(&models.Background{})

	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if backgroundType != "" {
		query = query.Where("background_type = ?", backgroundType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR background_id LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("order_weight ASC, created_at DESC").Offset(offset).Limit(pageSize).Find(&backgrounds).Error
	if err != nil {
		return nil, 0, err
	}

	return backgrounds, total, nil
}

// UpdateBackgroundParams 更新背景参数
type UpdateBackgroundParams struct {
	Name           *string
	Description    *string
	BackgroundType *string
	ImageURL       *string
	Status         *string
	OrderWeight    *int
	ExpirationTime *time.Time
}

// Update 更新背景，内置背景拒绝修改
func (s *BackgroundService) Update(id uint, params UpdateBackgroundParams) (*models.Background, error) {
	background, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if background.IsBuiltIn {
		return nil, errors.NewValidationError("is_built_in", "内置背景不允许修改")
	}

	if params.Name != nil {
		background.Name = *params.Name
	}
	if params.Description != nil {
		background.Description = *params.Description
	}
	if params.BackgroundType != nil {
		background.BackgroundType = *params.BackgroundType
	}
	if params.ImageURL != nil {
		background.ImageURL = *params.ImageURL
	}
	if params.Status != nil {
		background.Status = *params.Status
	}
	if params.OrderWeight != nil {
		background.OrderWeight = *params.OrderWeight
	}
	if params.ExpirationTime != nil {
		background.ExpirationTime = params.ExpirationTime
	}

	if err := s.db.Save(background).Error; err != nil {
		return nil, err
	}
	return background, nil
}

// SetDefault 设为默认背景，同一租户仅一个默认项
func (s *BackgroundService) SetDefault(id uint) (*models.Background, error) {
	background, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Background{}).
			Where("config_id = ? AND is_default = ?", background.ConfigID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(background).Update("is_default", true).Error
	})
	if err != nil {
		return nil, err
	}

	background.IsDefault = true
	return background, nil
}

// Delete 删除背景，内置背景拒绝删除
func (s *BackgroundService) Delete(id uint) error {
	background, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if background.IsBuiltIn {
		return errors.NewValidationError("is_built_in", "内置背景不允许删除")
	}
	return s.db.Delete(background).Error
}
