package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User 用户模型
type User struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	UserID       string `gorm:"unique;not null;size:64;index" json:"userid"`
	UUID         string `gorm:"size:64" json:"uuid"`
	Username     string `gorm:"not null;size:100;index" json:"username"`
	Email        string `gorm:"size:100" json:"email"`
	Phone        string `gorm:"size:20" json:"phone"`
	UserType     string `gorm:"size:20;default:'enterprise'" json:"user_type"`
	Status       string `gorm:"size:20;default:'active';index" json:"status"`
	DepartmentID *uint  `gorm:"index" json:"department_id"`
	PasswordHash string `gorm:"size:255" json:"-"` // 管理端登录口令，业务用户可为空
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`

	// 关联
	Config     *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
	Department *Department           `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	UserRoles  []*UserRole           `gorm:"foreignKey:UserRefID" json:"user_roles,omitempty"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// 用户类型常量
const (
	UserTypeEnterprise = "enterprise" // 企业用户
	UserTypePersonal   = "personal"   // 个人用户
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusDisabled = "disabled"
)

// SetPassword 设置密码
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsActive 用户是否激活
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// AddUserRole 添加角色分配，维护反向指针，重复添加幂等
func (u *User) AddUserRole(ur *UserRole) {
	for _, existing := range u.UserRoles {
		if existing == ur {
			return
		}
	}
	ur.User = u
	ur.UserRefID = u.ID
	u.UserRoles = append(u.UserRoles, ur)
}

// RemoveUserRole 移除角色分配，反向指针置空
func (u *User) RemoveUserRole(ur *UserRole) {
	for i, existing := range u.UserRoles {
		if existing == ur {
			u.UserRoles = append(u.UserRoles[:i], u.UserRoles[i+1:]...)
			if ur.User == u {
				ur.User = nil
				ur.UserRefID = 0
			}
			return
		}
	}
}
