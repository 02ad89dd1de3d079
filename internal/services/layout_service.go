package services

import (
	stderrors "errors"
	"fmt"
	"time"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LayoutService 布局目录服务
type LayoutService struct {
	db *gorm.DB
}

// NewLayoutService 创建布局目录服务
func NewLayoutService(db *gorm.DB) *LayoutService {
	return &LayoutService{db: db}
}

// CreateLayoutParams 创建布局参数
type CreateLayoutParams struct {
	ConfigID       uint
	LayoutID       string
	Name           string
	Description    string
	LayoutType     string
	LayoutConfig   datatypes.JSON
	OrderWeight    int
	ExpirationTime *time.Time
}

// Create 创建布局
func (s *LayoutService) Create(params CreateLayoutParams) (*models.Layout, error) {
	if params.LayoutID == "" {
		return nil, errors.NewValidationError("layout_id", "布局ID不能为空")
	}
	if params.Name == "" {
		return nil, errors.NewValidationError("name", "布局名称不能为空")
	}

	var count int64
	s.db.Model(&models.Layout{}).Where("layout_id = ?", params.LayoutID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	layout := &models.Layout{
		ConfigID:       params.ConfigID,
		LayoutID:       params.LayoutID,
		Name:           params.Name,
		Description:    params.Description,
		LayoutType:     params.LayoutType,
		LayoutConfig:   params.LayoutConfig,
		Status:         models.LayoutStatusActive,
		OrderWeight:    params.OrderWeight,
		ExpirationTime: params.ExpirationTime,
	}
	if layout.LayoutType == "" {
		layout.LayoutType = models.LayoutTypeGrid
	}

	if err := s.db.Create(layout).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateKey
		}
		return nil, err
	}
	return layout, nil
}

// GetByID 根据ID获取布局
func (s *LayoutService) GetByID(id uint) (*models.Layout, error) {
	var layout models.Layout
	err := s.db.First(&layout, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &layout, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *LayoutService) GetWithFiltersAndPage(configID uint, layoutType, status, keyword string, page, pageSize int) ([]*models.Layout, int64, error) {
	var layouts []*models.Layout
	var total int64

	query := s.db.Model(&models.Layout{})

	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if layoutType != "" {
		query = query.Where("layout_type = ?", layoutType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR layout_id LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("order_weight ASC, created_at DESC").Offset(offset).Limit(pageSize).Find(&layouts).Error
	if err != nil {
		return nil, 0, err
	}

	return layouts, total, nil
}

// UpdateLayoutParams 更新布局参数
type UpdateLayoutParams struct {
	Name           *string
	Description    *string
	LayoutType     *string
	LayoutConfig   datatypes.JSON
	Status         *string
	OrderWeight    *int
	ExpirationTime *time.Time
}

// Update 更新布局，内置布局拒绝修改
func (s *LayoutService) Update(id uint, params UpdateLayoutParams) (*models.Layout, error) {
	layout, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if layout.IsBuiltIn {
		return nil, errors.NewValidationError("is_built_in", "内置布局不允许修改")
	}

	if params.Name != nil {
		layout.Name = *params.Name
	}
	if params.Description != nil {
		layout.Description = *params.Description
	}
	if params.LayoutType != nil {
		layout.LayoutType = *params.LayoutType
	}
	if params.LayoutConfig != nil {
		layout.LayoutConfig = params.LayoutConfig
	}
	if params.Status != nil {
		layout.Status = *params.Status
	}
	if params.OrderWeight != nil {
		layout.OrderWeight = *params.OrderWeight
	}
	if params.ExpirationTime != nil {
		layout.ExpirationTime = params.ExpirationTime
	}

	if err := s.db.Save(layout).Error; err != nil {
		return nil, err
	}
	return layout, nil
}

// SetDefault 设为默认布局，同一租户仅一个默认项
func (s *LayoutService) SetDefault(id uint) (*models.Layout, error) {
	layout, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Layout{}).
			Where("config_id = ? AND is_default = ?", layout.ConfigID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(layout).Update("is_default", true).Error
	})
	if err != nil {
		return nil, err
	}

	layout.IsDefault = true
	return layout, nil
}

// Delete 删除布局，内置布局拒绝删除
func (s *LayoutService) Delete(id uint) error {
	layout, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if layout.IsBuiltIn {
		return errors.NewValidationError("is_built_in", "内置布局不允许删除")
	}
	return s.db.Delete(layout).Error
}
