package services

import (
	"testing"

	"tmadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleServiceCreateAndRename(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)

	role, err := svc.Create(CreateRoleParams{
		ConfigID: 1,
		RoleID:   "moderator",
		RoleName: "会控员",
	})
	require.NoError(t, err)
	assert.Equal(t, "会控员", role.Name)
	assert.Equal(t, models.RoleTypeCustom, role.RoleType)
	assert.False(t, role.IsBuiltIn)

	newName := "高级会控员"
	updated, err := svc.Update(role.ID, UpdateRoleParams{RoleName: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	stored, err := svc.GetByID(role.ID)
	require.NoError(t, err)
	assert.Equal(t, newName, stored.Name)
	assert.Equal(t, "moderator", stored.RoleID)
}

func TestRoleServiceBuiltInProtected(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)

	builtIn := &models.Role{
		ConfigID:  1,
		RoleID:    "host",
		Name:      "主持人",
		RoleType:  models.RoleTypeSystem,
		Status:    models.RoleStatusActive,
		IsBuiltIn: true,
	}
	require.NoError(t, db.Create(builtIn).Error)

	// 内置角色只允许修改描述
	newName := "改名"
	_, err := svc.Update(builtIn.ID, UpdateRoleParams{RoleName: &newName})
	assert.Error(t, err)

	desc := "会议主持人"
	updated, err := svc.Update(builtIn.ID, UpdateRoleParams{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, "主持人", updated.Name)

	// 内置角色不允许删除
	assert.Error(t, svc.Delete(builtIn.ID))
}
