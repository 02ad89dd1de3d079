package services

import (
	stderrors "errors"
	"fmt"
	"strings"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"gorm.io/gorm"
)

// DepartmentService 部门服务 - 自引用树，层级和路径由服务推导
type DepartmentService struct {
	db *gorm.DB
}

// NewDepartmentService 创建部门服务
func NewDepartmentService(db *gorm.DB) *DepartmentService {
	return &DepartmentService{db: db}
}

// CreateDepartmentParams 创建部门参数
type CreateDepartmentParams struct {
	ConfigID     uint
	DepartmentID string
	Name         string
	Description  string
	ParentID     *uint
	OrderWeight  int
}

// Create 创建部门，Level和Path根据父部门推导
func (s *DepartmentService) Create(params CreateDepartmentParams) (*models.Department, error) {
	if params.DepartmentID == "" {
		return nil, errors.NewValidationError("department_id", "部门ID不能为空")
	}
	if params.Name == "" {
		return nil, errors.NewValidationError("name", "部门名称不能为空")
	}

	// 部门ID重复预检查
	var count int64
	s.db.Model(&models.Department{}).Where("department_id = ?", params.DepartmentID).Count(&count)
	if count > 0 {
		return nil, errors.ErrDuplicateKey
	}

	dept := &models.Department{
		ConfigID:     params.ConfigID,
		DepartmentID: params.DepartmentID,
		Name:         params.Name,
		Description:  params.Description,
		ParentID:     params.ParentID,
		OrderWeight:  params.OrderWeight,
		Status:       models.DepartmentStatusActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var parent *models.Department
		if params.ParentID != nil {
			parent = &models.Department{}
			if err := tx.First(parent, *params.ParentID).Error; err != nil {
				return errors.NewValidationError("parent_id", "父部门不存在")
			}
			if parent.ConfigID != params.ConfigID {
				return errors.NewValidationError("parent_id", "父部门不属于当前配置")
			}
		}

		dept.Level = models.ChildLevel(parent)
		dept.Path = models.ChildPath(parent, dept.DepartmentID)
		return tx.Create(dept).Error
	})
	if err != nil {
		return nil, err
	}
	return dept, nil
}

// GetByID 根据ID获取部门
func (s *DepartmentService) GetByID(id uint) (*models.Department, error) {
	var dept models.Department
	err := s.db.Preload("Parent").First(&dept, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &dept, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *DepartmentService) GetWithFiltersAndPage(configID uint, status, keyword string, page, pageSize int) ([]*models.Department, int64, error) {
	var depts []*models.Department
	var total int64

	query := s.db.Model(&models.Department{})

	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR department_id LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("order_weight ASC, id ASC").Offset(offset).Limit(pageSize).Find(&depts).Error
	if err != nil {
		return nil, 0, err
	}

	return depts, total, nil
}

// GetTree 获取整棵部门树
func (s *DepartmentService) GetTree(configID uint) ([]*models.DepartmentTreeNode, error) {
	var depts []*models.Department
	query := s.db.Order("order_weight ASC, id ASC")
	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if err := query.Find(&depts).Error; err != nil {
		return nil, err
	}

	// 构建树：先建节点索引，再挂父子关系
	nodeMap := make(map[uint]*models.DepartmentTreeNode, len(depts))
	for _, dept := range depts {
		nodeMap[dept.ID] = &models.DepartmentTreeNode{Department: dept}
	}

	var roots []*models.DepartmentTreeNode
	for _, dept := range depts {
		node := nodeMap[dept.ID]
		if dept.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodeMap[*dept.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots, nil
}

// UpdateDepartmentParams 更新部门参数
type UpdateDepartmentParams struct {
	Name        *string
	Description *string
	OrderWeight *int
	Status      *string
}

// Update 更新部门基本信息，移动用Move
func (s *DepartmentService) Update(id uint, params UpdateDepartmentParams) (*models.Department, error) {
	dept, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, errors.NewValidationError("name", "部门名称不能为空")
		}
		dept.Name = *params.Name
	}
	if params.Description != nil {
		dept.Description = *params.Description
	}
	if params.OrderWeight != nil {
		dept.OrderWeight = *params.OrderWeight
	}
	if params.Status != nil {
		if *params.Status != models.DepartmentStatusActive && *params.Status != models.DepartmentStatusInactive {
			return nil, errors.NewValidationError("status", "状态只能是active或inactive")
		}
		dept.Status = *params.Status
	}

	if err := s.db.Save(dept).Error; err != nil {
		return nil, err
	}
	return dept, nil
}

// Move 移动部门到新的父节点
// 拒绝移动到自己或自己的子孙节点，移动后重算本节点及所有子孙的层级和路径
func (s *DepartmentService) Move(id uint, newParentID *uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		dept := &models.Department{}
		if err := tx.First(dept, id).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrNotFound
			}
			return err
		}

		// 不能移动到自己
		if newParentID != nil && *newParentID == id {
			return errors.ErrCyclicHierarchy
		}

		var newParent *models.Department
		if newParentID != nil {
			newParent = &models.Department{}
			if err := tx.First(newParent, *newParentID).Error; err != nil {
				return errors.NewValidationError("parent_id", "目标父部门不存在")
			}
			if newParent.ConfigID != dept.ConfigID {
				return errors.NewValidationError("parent_id", "目标父部门不属于当前配置")
			}

			// 目标父节点是自己的子孙则构成环
			if newParent.IsDescendantOf(dept) {
				return errors.ErrCyclicHierarchy
			}
		}

		oldPath := dept.Path
		newLevel := models.ChildLevel(newParent)
		newPath := models.ChildPath(newParent, dept.DepartmentID)

		if err := tx.Model(dept).Updates(map[string]interface{}{
			"parent_id": newParentID,
			"level":     newLevel,
			"path":      newPath,
		}).Error; err != nil {
			return err
		}

		return s.updateDescendantPaths(tx, id, oldPath, newPath, newLevel)
	})
}

// updateDescendantPaths 重算子孙节点的路径和层级
func (s *DepartmentService) updateDescendantPaths(tx *gorm.DB, deptID uint, oldPath, newPath string, newLevel int) error {
	var descendants []models.Department
	if err := tx.Where("path LIKE ? AND id != ?", oldPath+"/%", deptID).Find(&descendants).Error; err != nil {
		return err
	}

	for _, desc := range descendants {
		relativePath := strings.TrimPrefix(desc.Path, oldPath)
		desc.Path = newPath + relativePath
		desc.Level = newLevel + strings.Count(relativePath, "/")

		if err := tx.Model(&desc).Updates(map[string]interface{}{
			"path":  desc.Path,
			"level": desc.Level,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete 删除部门，有子部门或成员时拒绝
func (s *DepartmentService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var dept models.Department
		if err := tx.First(&dept, id).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrNotFound
			}
			return err
		}

		var childCount int64
		if err := tx.Model(&models.Department{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
			return err
		}
		if childCount > 0 {
			return errors.NewValidationError("children", "部门下存在子部门，不能删除")
		}

		var userCount int64
		if err := tx.Model(&models.User{}).Where("department_id = ?", id).Count(&userCount).Error; err != nil {
			return err
		}
		if userCount > 0 {
			return errors.NewValidationError("users", "部门下存在成员，不能删除")
		}

		return tx.Delete(&dept).Error
	})
}
