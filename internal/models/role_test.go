package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserRoleValidate(t *testing.T) {
	now := time.Now()
	later := now.Add(24 * time.Hour)
	earlier := now.Add(-time.Hour)

	ur := &UserRole{AssignmentTime: now, ExpirationTime: &later}
	assert.NoError(t, ur.Validate())

	ur.ExpirationTime = &earlier
	assert.Error(t, ur.Validate())

	// 无过期时间表示永久有效
	ur.ExpirationTime = nil
	assert.NoError(t, ur.Validate())
}

func TestMeetingRoleValidate(t *testing.T) {
	now := time.Now()
	same := now

	mr := &MeetingRole{AssignmentTime: now, ExpirationTime: &same}
	assert.Error(t, mr.Validate(), "过期时间等于分配时间应当拒绝")
}

func TestAssignmentCanRevoke(t *testing.T) {
	assert.True(t, (&UserRole{Status: AssignmentStatusActive}).CanRevoke())
	assert.False(t, (&UserRole{Status: AssignmentStatusExpired}).CanRevoke())
	assert.False(t, (&UserRole{Status: AssignmentStatusRevoked}).CanRevoke())

	assert.True(t, (&MeetingRole{Status: AssignmentStatusActive}).CanRevoke())
	assert.False(t, (&MeetingRole{Status: AssignmentStatusRevoked}).CanRevoke())
}

func TestUserRoleSync(t *testing.T) {
	user := &User{BaseModel: BaseModel{ID: 7}}
	ur := &UserRole{RoleRefID: 1}

	user.AddUserRole(ur)
	assert.Len(t, user.UserRoles, 1)
	assert.Equal(t, user.ID, ur.UserRefID)
	assert.Equal(t, user, ur.User)

	user.RemoveUserRole(ur)
	assert.Empty(t, user.UserRoles)
	assert.Nil(t, ur.User)
	assert.Zero(t, ur.UserRefID)
}
