package services

import (
	"testing"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigServiceCreateDuplicateAppID(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfigService(db)

	first, err := svc.Create(CreateConfigParams{
		AppID:     "wemeet-a",
		SecretID:  "sid-1",
		SecretKey: "skey-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AuthTypeJWT, first.AuthType)
	assert.True(t, first.Enabled)

	// 重复AppID被拒绝
	_, err = svc.Create(CreateConfigParams{
		AppID:     "wemeet-a",
		SecretID:  "sid-2",
		SecretKey: "skey-2",
	})
	assert.ErrorIs(t, err, errors.ErrDuplicateKey)

	// 第一条配置未被改动
	var count int64
	db.Model(&models.TencentMeetingConfig{}).Count(&count)
	assert.Equal(t, int64(1), count)

	stored, err := svc.GetByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", stored.SecretID)
	assert.Equal(t, "skey-1", stored.SecretKey)
}

func TestConfigServiceCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfigService(db)

	_, err := svc.Create(CreateConfigParams{SecretID: "sid", SecretKey: "skey"})
	assert.True(t, errors.IsValidationError(err))

	_, err = svc.Create(CreateConfigParams{AppID: "wemeet-b", SecretID: "sid", SecretKey: "skey", AuthType: "basic"})
	assert.True(t, errors.IsValidationError(err))
}
