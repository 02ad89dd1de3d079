package services

import (
	stderrors "errors"
	"fmt"
	"time"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 用户服务
type UserService struct {
	db *gorm.DB
}

// NewUserService 创建用户服务
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUserParams 创建用户参数
type CreateUserParams struct {
	ConfigID     uint
	UserID       string
	Username     string
	Email        string
	Phone        string
	UserType     string
	DepartmentID *uint
	Password     string
	IsAdmin      bool
}

// Create 创建用户
func (s *UserService) Create(params CreateUserParams) (*models.User, error) {
	if params.UserID == "" {
		return nil, errors.NewValidationError("user_id", "用户ID不能为空")
	}
	if params.Username == "" {
		return nil, errors.NewValidationError("username", "用户名不能为空")
	}

	user := &models.User{
		ConfigID:     params.ConfigID,
		UserID:       params.UserID,
		Username:     params.Username,
		Email:        params.Email,
		Phone:        params.Phone,
		UserType:     params.UserType,
		DepartmentID: params.DepartmentID,
		Status:       models.UserStatusActive,
		IsAdmin:      params.IsAdmin,
	}
	if user.UserType == "" {
		user.UserType = models.UserTypeEnterprise
	}

	// 用户ID重复预检查
	var count int64
	s.db.Model(&models.User{}).Where("user_id = ?", user.UserID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	// 校验所属部门存在且属于同一租户
	if user.DepartmentID != nil {
		var dept models.Department
		if err := s.db.First(&dept, *user.DepartmentID).Error; err != nil {
			return nil, errors.NewValidationError("department_id", "所属部门不存在")
		}
		if dept.ConfigID != user.ConfigID {
			return nil, errors.NewValidationError("department_id", "所属部门与用户不属于同一租户配置")
		}
	}

	if params.Password != "" {
		if err := user.SetPassword(params.Password); err != nil {
			return nil, fmt.Errorf("设置密码失败: %w", err)
		}
	}

	if err := s.db.Create(user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateKey
		}
		return nil, err
	}
	return user, nil
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &user, err
}

// GetByUserID 根据用户ID获取用户
func (s *UserService) GetByUserID(userID string) (*models.User, error) {
	var user models.User
	err := s.db.Where("user_id = ?", userID).First(&user).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &user, err
}

// GetByUsername 根据用户名获取用户
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &user, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *UserService) GetWithFiltersAndPage(configID uint, status, userType, keyword string, departmentID *uint, page, pageSize int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := s.db.Model(&models.User{})

	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if userType != "" {
		query = query.Where("user_type = ?", userType)
	}
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("username LIKE ? OR user_id LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateUserParams 更新用户参数
type UpdateUserParams struct {
	Username     *string
	Email        *string
	Phone        *string
	UserType     *string
	DepartmentID *uint
	Status       *string
}

// Update 更新用户，用户ID不可变更
func (s *UserService) Update(id uint, params UpdateUserParams) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if params.Username != nil {
		if *params.Username == "" {
			return nil, errors.NewValidationError("username", "用户名不能为空")
		}
		user.Username = *params.Username
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Phone != nil {
		user.Phone = *params.Phone
	}
	if params.UserType != nil {
		user.UserType = *params.UserType
	}
	if params.Status != nil {
		user.Status = *params.Status
	}
	if params.DepartmentID != nil {
		var dept models.Department
		if err := s.db.First(&dept, *params.DepartmentID).Error; err != nil {
			return nil, errors.NewValidationError("department_id", "所属部门不存在")
		}
		if dept.ConfigID != user.ConfigID {
			return nil, errors.NewValidationError("department_id", "所属部门与用户不属于同一租户配置")
		}
		user.DepartmentID = params.DepartmentID
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateStatus 更新用户状态（激活/停用/禁用）
func (s *UserService) UpdateStatus(id uint, status string) (*models.User, error) {
	switch status {
	case models.UserStatusActive, models.UserStatusInactive, models.UserStatusDisabled:
	default:
		return nil, errors.NewValidationError("status", "无效的用户状态")
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := s.db.Model(user).Update("status", status).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete 删除用户
func (s *UserService) Delete(id uint) error {
	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(id uint, oldPassword, newPassword string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if !user.CheckPassword(oldPassword) {
		return errors.ErrAuthentication
	}
	if len(newPassword) < 6 {
		return errors.NewValidationError("new_password", "新密码长度至少6位")
	}

	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("设置密码失败: %w", err)
	}
	return s.db.Model(user).Update("password_hash", user.PasswordHash).Error
}

// Authenticate 用户名密码认证，仅活跃用户可登录
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.GetByUsername(username)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return nil, errors.ErrAuthentication
		}
		return nil, err
	}

	if user.Status != models.UserStatusActive {
		return nil, errors.ErrAuthentication
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errors.ErrAuthentication
	}
	return user, nil
}

// ========== 用户角色 ==========

// AssignRole 为用户分配角色
func (s *UserService) AssignRole(userRefID, roleID uint, assignedBy string, expirationTime *time.Time) (*models.UserRole, error) {
	ur := &models.UserRole{
		UserRefID:      userRefID,
		RoleRefID:      roleID,
		Status:         models.AssignmentStatusActive,
		AssignmentTime: time.Now(),
		ExpirationTime: expirationTime,
		AssignedBy:     assignedBy,
	}
	if err := ur.Validate(); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userRefID).Error; err != nil {
			return errors.ErrNotFound
		}
		var role models.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			return errors.NewValidationError("role_id", "角色不存在")
		}
		return tx.Create(ur).Error
	})
	if err != nil {
		return nil, err
	}
	return ur, nil
}

// RevokeRole 撤销用户角色分配，仅生效中的分配可撤销
func (s *UserService) RevokeRole(userRefID, assignmentID uint) (*models.UserRole, error) {
	var ur models.UserRole
	err := s.db.Where("user_ref_id = ?", userRefID).First(&ur, assignmentID).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	if !ur.CanRevoke() {
		return &ur, errors.ErrInvalidStateTransition
	}

	ur.Status = models.AssignmentStatusRevoked
	if err := s.db.Save(&ur).Error; err != nil {
		return nil, err
	}
	return &ur, nil
}

// GetUserRoles 获取用户的角色分配列表
func (s *UserService) GetUserRoles(userRefID uint) ([]*models.UserRole, error) {
	var roles []*models.UserRole
	err := s.db.Preload("Role").Where("user_ref_id = ?", userRefID).
		Order("assignment_time DESC").Find(&roles).Error
	return roles, err
}
