package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWebhookEventCanRetry(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{WebhookStatusPending, true},
		{WebhookStatusFailed, true},
		{WebhookStatusProcessing, false},
		{WebhookStatusSuccess, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			event := &WebhookEvent{ProcessStatus: tt.status}
			assert.Equal(t, tt.want, event.CanRetry())
			assert.Equal(t, tt.want, event.CanProcess())
		})
	}
}

func TestWebhookEventIsFinished(t *testing.T) {
	assert.True(t, (&WebhookEvent{ProcessStatus: WebhookStatusSuccess}).IsFinished())
	assert.False(t, (&WebhookEvent{ProcessStatus: WebhookStatusFailed}).IsFinished())
	assert.False(t, (&WebhookEvent{ProcessStatus: WebhookStatusPending}).IsFinished())
}

func TestWebhookEventIsDue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	// 待处理且无重试时间，立即到期
	event := &WebhookEvent{ProcessStatus: WebhookStatusPending}
	assert.True(t, event.IsDue(now))

	// 重试时间已到
	event.NextRetryTime = &past
	assert.True(t, event.IsDue(now))

	// 重试时间未到
	event.NextRetryTime = &future
	assert.False(t, event.IsDue(now))

	// 非待处理状态永不到期
	done := &WebhookEvent{ProcessStatus: WebhookStatusSuccess}
	assert.False(t, done.IsDue(now))
}
