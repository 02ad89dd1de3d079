package services

import (
	stderrors "errors"
	"fmt"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoleService 角色服务
type RoleService struct {
	db *gorm.DB
}

// NewRoleService 创建角色服务
func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

// CreateRoleParams 创建角色参数
type CreateRoleParams struct {
	ConfigID    uint
	RoleID      string
	RoleName    string
	RoleType    string
	Description string
	Permissions datatypes.JSON
}

// Create 创建角色
func (s *RoleService) Create(params CreateRoleParams) (*models.Role, error) {
	if params.RoleID == "" {
		return nil, errors.NewValidationError("role_id", "角色ID不能为空")
	}
	if params.RoleName == "" {
		return nil, errors.NewValidationError("role_name", "角色名称不能为空")
	}

	// 角色ID重复预检查
	var count int64
	s.db.Model(&models.Role{}).Where("role_id = ?", params.RoleID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	role := &models.Role{
		ConfigID:    params.ConfigID,
		RoleID:      params.RoleID,
		Name:        params.RoleName,
		RoleType:    params.RoleType,
		Description: params.Description,
		Permissions: params.Permissions,
		Status:      models.RoleStatusActive,
		IsBuiltIn:   false,
	}
	if role.RoleType == "" {
		role.RoleType = models.RoleTypeCustom
	}

	if err := s.db.Create(role).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateKey
		}
		return nil, err
	}
	return role, nil
}

// GetByID 根据ID获取角色
func (s *RoleService) GetByID(id uint) (*models.Role, error) {
	var role models.Role
	err := s.db.First(&role, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &role, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *RoleService) GetWithFiltersAndPage(configID uint, roleType, status, keyword string, page, pageSize int) ([]*models.Role, int64, error) {
	var roles []*models.Role
	var total int64

	query := s.db.Model(&models.Role{})

	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if roleType != "" {
		query = query.Where("role_type = ?", roleType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("role_name LIKE ? OR role_id LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&roles).Error
	if err != nil {
		return nil, 0, err
	}

	return roles, total, nil
}

// UpdateRoleParams 更新角色参数
type UpdateRoleParams struct {
	RoleName    *string
	Description *string
	Permissions datatypes.JSON
	Status      *string
}

// Update 更新角色，内置角色仅允许修改描述
func (s *RoleService) Update(id uint, params UpdateRoleParams) (*models.Role, error) {
	role, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if role.IsBuiltIn {
		if params.RoleName != nil || params.Permissions != nil || params.Status != nil {
			return nil, errors.NewValidationError("is_built_in", "内置角色仅允许修改描述")
		}
	}

	if params.RoleName != nil {
		role.Name = *params.RoleName
	}
	if params.Description != nil {
		role.Description = *params.Description
	}
	if params.Permissions != nil {
		role.Permissions = params.Permissions
	}
	if params.Status != nil {
		role.Status = *params.Status
	}

	if err := s.db.Save(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// Delete 删除角色，内置角色和仍被分配的角色拒绝删除
func (s *RoleService) Delete(id uint) error {
	role, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if role.IsBuiltIn {
		return errors.NewValidationError("is_built_in", "内置角色不允许删除")
	}

	var assignedCount int64
	s.db.Model(&models.UserRole{}).
		Where("role_ref_id = ? AND status = ?", id, models.AssignmentStatusActive).
		Count(&assignedCount)
	if assignedCount > 0 {
		return errors.NewValidationError("role", fmt.Sprintf("角色仍有 %d 个生效中的用户分配，无法删除", assignedCount))
	}
	var meetingAssignedCount int64
	s.db.Model(&models.MeetingRole{}).
		Where("role_ref_id = ? AND status = ?", id, models.AssignmentStatusActive).
		Count(&meetingAssignedCount)
	if meetingAssignedCount > 0 {
		return errors.NewValidationError("role", fmt.Sprintf("角色仍有 %d 个生效中的会议分配，无法删除", meetingAssignedCount))
	}

	return s.db.Delete(role).Error
}

// ExpireAssignments 将已过期的角色分配置为过期状态，供定时任务调用
func (s *RoleService) ExpireAssignments() (int64, error) {
	var expired int64

	result := s.db.Model(&models.UserRole{}).
		Where("status = ? AND expiration_time IS NOT NULL AND expiration_time <= NOW()", models.AssignmentStatusActive).
		Update("status", models.AssignmentStatusExpired)
	if result.Error != nil {
		return 0, result.Error
	}
	expired += result.RowsAffected

	result = s.db.Model(&models.MeetingRole{}).
		Where("status = ? AND expiration_time IS NOT NULL AND expiration_time <= NOW()", models.AssignmentStatusActive).
		Update("status", models.AssignmentStatusExpired)
	if result.Error != nil {
		return expired, result.Error
	}
	expired += result.RowsAffected

	return expired, nil
}
