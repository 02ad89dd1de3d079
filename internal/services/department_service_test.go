package services

import (
	"testing"

	"tmadmin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentMoveCycleRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewDepartmentService(db)

	root, err := svc.Create(CreateDepartmentParams{ConfigID: 1, DepartmentID: "d-root", Name: "总部"})
	require.NoError(t, err)
	sub, err := svc.Create(CreateDepartmentParams{ConfigID: 1, DepartmentID: "d-sub", Name: "研发部", ParentID: &root.ID})
	require.NoError(t, err)
	leaf, err := svc.Create(CreateDepartmentParams{ConfigID: 1, DepartmentID: "d-leaf", Name: "后端组", ParentID: &sub.ID})
	require.NoError(t, err)

	// 移到自己
	err = svc.Move(root.ID, &root.ID)
	assert.ErrorIs(t, err, errors.ErrCyclicHierarchy)

	// 移到直接子部门
	err = svc.Move(root.ID, &sub.ID)
	assert.ErrorIs(t, err, errors.ErrCyclicHierarchy)

	// 移到间接子孙
	err = svc.Move(root.ID, &leaf.ID)
	assert.ErrorIs(t, err, errors.ErrCyclicHierarchy)

	// 被拒绝的移动不留痕
	stored, err := svc.GetByID(root.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ParentID)
	assert.Equal(t, 0, stored.Level)
	assert.Equal(t, "d-root", stored.Path)
}

func TestDepartmentMoveRewritesDescendantPaths(t *testing.T) {
	db := newTestDB(t)
	svc := NewDepartmentService(db)

	rootA, err := svc.Create(CreateDepartmentParams{ConfigID: 1, DepartmentID: "d-a", Name: "A"})
	require.NoError(t, err)
	rootB, err := svc.Create(CreateDepartmentParams{ConfigID: 1, DepartmentID: "d-b", Name: "B"})
	require.NoError(t, err)
	sub, err := svc.Create(CreateDepartmentParams{ConfigID: 1, DepartmentID: "d-sub", Name: "研发部", ParentID: &rootA.ID})
	require.NoError(t, err)
	leaf, err := svc.Create(CreateDepartmentParams{ConfigID: 1, DepartmentID: "d-leaf", Name: "后端组", ParentID: &sub.ID})
	require.NoError(t, err)

	// 挂到另一棵树下，子孙路径整体重写
	require.NoError(t, svc.Move(sub.ID, &rootB.ID))

	movedSub, err := svc.GetByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, movedSub.Level)
	assert.Equal(t, "d-b/d-sub", movedSub.Path)

	movedLeaf, err := svc.GetByID(leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, movedLeaf.Level)
	assert.Equal(t, "d-b/d-sub/d-leaf", movedLeaf.Path)

	// 提升为根部门
	require.NoError(t, svc.Move(sub.ID, nil))

	promoted, err := svc.GetByID(sub.ID)
	require.NoError(t, err)
	assert.Nil(t, promoted.ParentID)
	assert.Equal(t, 0, promoted.Level)
	assert.Equal(t, "d-sub", promoted.Path)

	promotedLeaf, err := svc.GetByID(leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, promotedLeaf.Level)
	assert.Equal(t, "d-sub/d-leaf", promotedLeaf.Path)
}
