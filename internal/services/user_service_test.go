package services

import (
	"testing"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceCreateAndUpdateContact(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Create(CreateUserParams{
		ConfigID: 1,
		UserID:   "u-1001",
		Username: "张三",
		Email:    "zhangsan@example.com",
		Phone:    "13800000000",
		Password: "Secret@1",
	})
	require.NoError(t, err)
	assert.Equal(t, "zhangsan@example.com", user.Email)
	assert.Equal(t, "13800000000", user.Phone)
	assert.Equal(t, models.UserTypeEnterprise, user.UserType)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.True(t, user.CheckPassword("Secret@1"))

	newEmail := "zs@example.com"
	newPhone := "13900000000"
	updated, err := svc.Update(user.ID, UpdateUserParams{Email: &newEmail, Phone: &newPhone})
	require.NoError(t, err)
	assert.Equal(t, newEmail, updated.Email)
	assert.Equal(t, newPhone, updated.Phone)

	stored, err := svc.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, newEmail, stored.Email)
	assert.Equal(t, newPhone, stored.Phone)
	// 未更新的字段保持不变
	assert.Equal(t, "u-1001", stored.UserID)
	assert.Equal(t, "张三", stored.Username)
}

func TestUserServiceCreateDuplicateUserID(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Create(CreateUserParams{ConfigID: 1, UserID: "u-1001", Username: "张三"})
	require.NoError(t, err)

	_, err = svc.Create(CreateUserParams{ConfigID: 1, UserID: "u-1001", Username: "李四"})
	assert.ErrorIs(t, err, errors.ErrDuplicateKey)
}
