package services

import (
	"fmt"
	"testing"
	"time"

	"tmadmin/internal/models"
	"tmadmin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedWebhookEvent(t *testing.T, db *gorm.DB, status string, retryCount int, verified bool) *models.WebhookEvent {
	t.Helper()
	event := &models.WebhookEvent{
		ConfigID:          1,
		EventID:           fmt.Sprintf("evt-%s-%d", status, retryCount),
		EventType:         models.EventMeetingStarted,
		Payload:           `{"event":"meeting.started","data":{"meeting_id":"m1"}}`,
		ProcessStatus:     status,
		RetryCount:        retryCount,
		SignatureVerified: verified,
	}
	if status == models.WebhookStatusFailed {
		event.ErrorMessage = "处理失败"
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func TestWebhookRetryIncrements(t *testing.T) {
	db := newTestDB(t)
	svc := newTestWebhookService(db)

	event := seedWebhookEvent(t, db, models.WebhookStatusFailed, 0, true)

	got, err := svc.Retry(event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RetryCount)
	assert.Equal(t, models.WebhookStatusPending, got.ProcessStatus)
	assert.Empty(t, got.ErrorMessage)
	require.NotNil(t, got.NextRetryTime)
	assert.True(t, got.NextRetryTime.After(time.Now()))

	var stored models.WebhookEvent
	require.NoError(t, db.First(&stored, event.ID).Error)
	assert.Equal(t, 1, stored.RetryCount)
	assert.Equal(t, models.WebhookStatusPending, stored.ProcessStatus)
	assert.Empty(t, stored.ErrorMessage)
	require.NotNil(t, stored.NextRetryTime)
}

func TestWebhookRetryGuard(t *testing.T) {
	db := newTestDB(t)
	svc := newTestWebhookService(db)

	// 已成功的事件重试是无操作
	done := seedWebhookEvent(t, db, models.WebhookStatusSuccess, 0, true)
	_, err := svc.Retry(done.ID)
	assert.ErrorIs(t, err, errors.ErrInvalidStateTransition)

	var stored models.WebhookEvent
	require.NoError(t, db.First(&stored, done.ID).Error)
	assert.Equal(t, models.WebhookStatusSuccess, stored.ProcessStatus)
	assert.Equal(t, 0, stored.RetryCount)

	// 处理中的事件同样拒绝
	busy := seedWebhookEvent(t, db, models.WebhookStatusProcessing, 0, true)
	_, err = svc.Retry(busy.ID)
	assert.ErrorIs(t, err, errors.ErrInvalidStateTransition)

	// 签名未通过的事件永不重试
	unverified := seedWebhookEvent(t, db, models.WebhookStatusFailed, 0, false)
	_, err = svc.Retry(unverified.ID)
	assert.ErrorIs(t, err, errors.ErrInvalidStateTransition)

	// 不存在的事件
	_, err = svc.Retry(99999)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestWebhookRetryExhaustion(t *testing.T) {
	db := newTestDB(t)
	svc := newTestWebhookService(db)

	// 重试计数已达上限（maxRetry=3）
	event := seedWebhookEvent(t, db, models.WebhookStatusFailed, 3, true)

	got, err := svc.Retry(event.ID)
	assert.ErrorIs(t, err, errors.ErrInvalidStateTransition)
	assert.Equal(t, models.WebhookStatusFailed, got.ProcessStatus)

	var stored models.WebhookEvent
	require.NoError(t, db.First(&stored, event.ID).Error)
	assert.Equal(t, models.WebhookStatusFailed, stored.ProcessStatus)
	assert.Equal(t, 3, stored.RetryCount)
	assert.Contains(t, stored.ErrorMessage, "最大重试次数")
}

func TestWebhookProcessLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newTestWebhookService(db)

	// 处理器先失败后成功
	shouldFail := true
	svc.RegisterHandler(models.EventMeetingStarted, func(tx *gorm.DB, event *models.WebhookEvent, data map[string]interface{}) (string, error) {
		if shouldFail {
			return "", fmt.Errorf("下游暂不可用")
		}
		return `{"action":"meeting_started"}`, nil
	})

	event := seedWebhookEvent(t, db, models.WebhookStatusPending, 0, true)

	// 首次处理失败：failed + 错误信息，重试计数不自动增长
	err := svc.Process(event.ID)
	require.Error(t, err)

	var stored models.WebhookEvent
	require.NoError(t, db.First(&stored, event.ID).Error)
	assert.Equal(t, models.WebhookStatusFailed, stored.ProcessStatus)
	assert.Contains(t, stored.ErrorMessage, "下游暂不可用")
	assert.Equal(t, 0, stored.RetryCount)

	// 显式重试一次：retry_count=1，回到pending
	got, err := svc.Retry(event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RetryCount)
	assert.Equal(t, models.WebhookStatusPending, got.ProcessStatus)

	// 第二次处理成功
	shouldFail = false
	require.NoError(t, svc.Process(event.ID))

	require.NoError(t, db.First(&stored, event.ID).Error)
	assert.Equal(t, models.WebhookStatusSuccess, stored.ProcessStatus)
	assert.Equal(t, `{"action":"meeting_started"}`, stored.ProcessResult)
	require.NotNil(t, stored.ProcessingTime)
	assert.Equal(t, 1, stored.RetryCount)
}

func TestWebhookProcessClaimGuard(t *testing.T) {
	db := newTestDB(t)
	svc := newTestWebhookService(db)

	// 已被其他Worker抢占的事件无法重复处理
	busy := seedWebhookEvent(t, db, models.WebhookStatusProcessing, 0, true)
	assert.ErrorIs(t, svc.Process(busy.ID), errors.ErrInvalidStateTransition)

	// 已成功的事件不再处理
	done := seedWebhookEvent(t, db, models.WebhookStatusSuccess, 0, true)
	assert.ErrorIs(t, svc.Process(done.ID), errors.ErrInvalidStateTransition)

	// 签名未通过的事件不会被抢占
	unverified := seedWebhookEvent(t, db, models.WebhookStatusPending, 0, false)
	assert.ErrorIs(t, svc.Process(unverified.ID), errors.ErrInvalidStateTransition)
}

func TestWebhookIngestLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newTestWebhookService(db)

	cfg := &models.TencentMeetingConfig{
		AppID:        "wemeet-a",
		SecretID:     "sid",
		SecretKey:    "skey",
		WebhookToken: "abc",
		Enabled:      true,
	}
	require.NoError(t, db.Create(cfg).Error)

	payload := []byte(`{"event":"meeting.started","data":{"meeting_id":"m1"}}`)
	sig := ComputeSignature(payload, "abc")

	event, err := svc.Ingest("wemeet-a", payload, sig, "203.0.113.7", "tencent-meeting/1.0")
	require.NoError(t, err)
	assert.Equal(t, models.WebhookStatusPending, event.ProcessStatus)
	assert.True(t, event.SignatureVerified)
	assert.Equal(t, string(payload), event.Payload)
	assert.Equal(t, models.EventMeetingStarted, event.EventType)
	assert.Equal(t, "m1", event.MeetingID)
	assert.NotEmpty(t, event.EventID)

	// 错误签名：拒绝且保留审计记录，永不重试
	_, err = svc.Ingest("wemeet-a", payload, "bad-signature", "203.0.113.7", "tencent-meeting/1.0")
	assert.ErrorIs(t, err, errors.ErrAuthentication)

	var audit models.WebhookEvent
	require.NoError(t, db.Where("signature_verified = ?", false).First(&audit).Error)
	assert.Equal(t, models.WebhookStatusFailed, audit.ProcessStatus)

	// 非法载荷
	_, err = svc.Ingest("wemeet-a", []byte("not-json"), sig, "", "")
	assert.True(t, errors.IsValidationError(err))

	// 未知AppID
	_, err = svc.Ingest("wemeet-x", payload, sig, "", "")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	// 禁用的配置拒绝接收
	require.NoError(t, db.Model(cfg).Update("enabled", false).Error)
	_, err = svc.Ingest("wemeet-a", payload, sig, "", "")
	assert.ErrorIs(t, err, errors.ErrAuthentication)
}

func TestParticipantJoinedRegistersAttendance(t *testing.T) {
	db := newTestDB(t)
	svc := newTestWebhookService(db)
	svc.registerDefaultHandlers()

	meeting := &models.Meeting{
		ConfigID:  1,
		MeetingID: "m1",
		Subject:   "周会",
		StartTime: time.Now(),
		Status:    models.MeetingStatusInProgress,
	}
	require.NoError(t, db.Create(meeting).Error)

	event := &models.WebhookEvent{
		ConfigID:          1,
		EventID:           "evt-join-1",
		EventType:         models.EventUserJoined,
		Payload:           `{"event":"meeting.participant_joined","data":{"meeting_id":"m1","user_id":"u-1"}}`,
		MeetingID:         "m1",
		UserID:            "u-1",
		ProcessStatus:     models.WebhookStatusPending,
		SignatureVerified: true,
	}
	require.NoError(t, db.Create(event).Error)

	// 未被邀请的参会人也登记出席记录
	require.NoError(t, svc.Process(event.ID))

	var mu models.MeetingUser
	require.NoError(t, db.Where("meeting_ref_id = ? AND user_id = ?", meeting.ID, "u-1").First(&mu).Error)
	assert.Equal(t, models.AttendanceStatusPresent, mu.AttendanceStatus)
	require.NotNil(t, mu.JoinTime)

	// 再次加入只更新已有记录，不产生重复行
	again := &models.WebhookEvent{
		ConfigID:          1,
		EventID:           "evt-join-2",
		EventType:         models.EventUserJoined,
		Payload:           event.Payload,
		MeetingID:         "m1",
		UserID:            "u-1",
		ProcessStatus:     models.WebhookStatusPending,
		SignatureVerified: true,
	}
	require.NoError(t, db.Create(again).Error)
	require.NoError(t, svc.Process(again.ID))

	var count int64
	db.Model(&models.MeetingUser{}).Where("meeting_ref_id = ?", meeting.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
