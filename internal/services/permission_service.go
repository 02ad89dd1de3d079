package services

import (
	stderrors "errors"
	"fmt"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PermissionService 权限服务
type PermissionService struct {
	db *gorm.DB
}

// NewPermissionService 创建权限服务
func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// CreatePermissionParams 创建权限参数
type CreatePermissionParams struct {
	ConfigID         uint
	PermissionID     string
	Name             string
	Description      string
	PermissionType   string
	Attributes       datatypes.JSON
	PermissionConfig datatypes.JSON
	OrderWeight      int
}

// Create 创建权限
func (s *PermissionService) Create(params CreatePermissionParams) (*models.Permission, error) {
	if params.PermissionID == "" {
		return nil, errors.NewValidationError("permission_id", "权限ID不能为空")
	}
	if params.Name == "" {
		return nil, errors.NewValidationError("name", "权限名称不能为空")
	}

	var count int64
	s.db.Model(&models.Permission{}).Where("permission_id = ?", params.PermissionID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	perm := &models.Permission{
		ConfigID:         params.ConfigID,
		PermissionID:     params.PermissionID,
		Name:             params.Name,
		Description:      params.Description,
		PermissionType:   params.PermissionType,
		Status:           models.PermissionStatusActive,
		Attributes:       params.Attributes,
		PermissionConfig: params.PermissionConfig,
		OrderWeight:      params.OrderWeight,
	}
	if perm.PermissionType == "" {
		perm.PermissionType = models.PermissionTypeFunction
	}

	if err := s.db.Create(perm).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateKey
		}
		return nil, err
	}
	return perm, nil
}

// GetByID 根据ID获取权限
func (s *PermissionService) GetByID(id uint) (*models.Permission, error) {
	var perm models.Permission
	err := s.db.First(&perm, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &perm, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *PermissionService) GetWithFiltersAndPage(configID uint, permissionType, status, keyword string, page, pageSize int) ([]*models.Permission, int64, error) {
	var perms []*models.Permission
	var total int64

	query := s.db.Model(&models.Permission{})

	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if permissionType != "" {
		query = query.Where("permission_type = ?", permissionType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR permission_id LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("order_weight ASC, created_at DESC").Offset(offset).Limit(pageSize).Find(&perms).Error
	if err != nil {
		return nil, 0, err
	}

	return perms, total, nil
}

// UpdatePermissionParams 更新权限参数
type UpdatePermissionParams struct {
	Name             *string
	Description      *string
	Status           *string
	Attributes       datatypes.JSON
	PermissionConfig datatypes.JSON
	OrderWeight      *int
}

// Update 更新权限
func (s *PermissionService) Update(id uint, params UpdatePermissionParams) (*models.Permission, error) {
	perm, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if perm.IsBuiltIn && (params.Name != nil || params.Status != nil) {
		return nil, errors.NewValidationError("is_built_in", "内置权限不允许修改名称或状态")
	}

	if params.Name != nil {
		perm.Name = *params.Name
	}
	if params.Description != nil {
		perm.Description = *params.Description
	}
	if params.Status != nil {
		perm.Status = *params.Status
	}
	if params.Attributes != nil {
		perm.Attributes = params.Attributes
	}
	if params.PermissionConfig != nil {
		perm.PermissionConfig = params.PermissionConfig
	}
	if params.OrderWeight != nil {
		perm.OrderWeight = *params.OrderWeight
	}

	if err := s.db.Save(perm).Error; err != nil {
		return nil, err
	}
	return perm, nil
}

// Delete 删除权限，内置权限拒绝删除
func (s *PermissionService) Delete(id uint) error {
	perm, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if perm.IsBuiltIn {
		return errors.NewValidationError("is_built_in", "内置权限不允许删除")
	}
	return s.db.Delete(perm).Error
}
