package models

import (
	"fmt"
	"strings"
)

// Department 部门模型 - 自引用树，Level和Path由服务层推导，不信任调用方
type Department struct {
	BaseModel
	ConfigID uint `gorm:"not null;index" json:"config_id"`

	DepartmentID string `gorm:"unique;not null;size:64;index" json:"department_id"`
	Name         string `gorm:"not null;size:100" json:"name"`
	Description  string `gorm:"size:500" json:"description"`
	ParentID     *uint  `gorm:"index" json:"parent_id"`
	Path         string `gorm:"size:500;index" json:"path"`
	Level        int    `gorm:"default:0" json:"level"`
	OrderWeight  int    `gorm:"default:0" json:"order_weight"`
	Status       string `gorm:"size:20;default:'active'" json:"status"`

	// 关联
	Config   *TencentMeetingConfig `gorm:"foreignKey:ConfigID" json:"config,omitempty"`
	Parent   *Department           `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []*Department         `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Users    []*User               `gorm:"foreignKey:DepartmentID" json:"users,omitempty"`
}

// TableName 表名
func (d *Department) TableName() string {
	return "departments"
}

// 部门状态常量
const (
	DepartmentStatusActive   = "active"
	DepartmentStatusInactive = "inactive"
)

// DepartmentTreeNode 部门树节点
type DepartmentTreeNode struct {
	*Department
	Children []*DepartmentTreeNode `json:"children,omitempty"`
}

// ChildLevel 计算挂在parent下的层级，根节点为0
func ChildLevel(parent *Department) int {
	if parent == nil {
		return 0
	}
	return parent.Level + 1
}

// ChildPath 计算挂在parent下的路径，根节点路径为自身ID
func ChildPath(parent *Department, departmentID string) string {
	if parent == nil {
		return departmentID
	}
	return fmt.Sprintf("%s/%s", parent.Path, departmentID)
}

// IsRoot 是否为根部门
func (d *Department) IsRoot() bool {
	return d.ParentID == nil
}

// IsDescendantOf 判断当前部门是否为other的子孙（基于路径前缀）
func (d *Department) IsDescendantOf(other *Department) bool {
	return strings.HasPrefix(d.Path, other.Path+"/")
}
