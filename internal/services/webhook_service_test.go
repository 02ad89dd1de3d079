package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeSignatureDeterministic(t *testing.T) {
	payload := []byte(`{"event":"meeting.started","event_id":"evt-1"}`)

	sig1 := ComputeSignature(payload, "token-a")
	sig2 := ComputeSignature(payload, "token-a")
	assert.Equal(t, sig1, sig2)
	assert.Len(t, sig1, 64) // SHA256十六进制

	// 不同token产生不同签名
	assert.NotEqual(t, sig1, ComputeSignature(payload, "token-b"))
	// 载荷变化产生不同签名
	assert.NotEqual(t, sig1, ComputeSignature([]byte(`{}`), "token-a"))
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"event":"meeting.ended"}`)
	token := "webhook-token"
	sig := ComputeSignature(payload, token)

	assert.True(t, VerifySignature(payload, token, sig))
	assert.False(t, VerifySignature(payload, token, "bad-signature"))
	assert.False(t, VerifySignature(payload, "other-token", sig))
	assert.False(t, VerifySignature([]byte("tampered"), token, sig))
}

func TestBackoffGrowth(t *testing.T) {
	s := &WebhookService{
		baseDelay: 5 * time.Minute,
		maxDelay:  2 * time.Hour,
		maxRetry:  10,
	}

	assert.Equal(t, 5*time.Minute, s.Backoff(1))
	assert.Equal(t, 10*time.Minute, s.Backoff(2))
	assert.Equal(t, 20*time.Minute, s.Backoff(3))
	assert.Equal(t, 40*time.Minute, s.Backoff(4))
	assert.Equal(t, 80*time.Minute, s.Backoff(5))
}

func TestBackoffCapped(t *testing.T) {
	s := &WebhookService{
		baseDelay: 5 * time.Minute,
		maxDelay:  2 * time.Hour,
	}

	// 5m * 2^5 = 160m > 120m，封顶
	assert.Equal(t, 2*time.Hour, s.Backoff(6))
	assert.Equal(t, 2*time.Hour, s.Backoff(10))
	assert.Equal(t, 2*time.Hour, s.Backoff(100))
}

func TestBackoffZeroOrNegative(t *testing.T) {
	s := &WebhookService{baseDelay: time.Minute, maxDelay: time.Hour}

	assert.Equal(t, time.Minute, s.Backoff(0))
	assert.Equal(t, time.Minute, s.Backoff(-1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
	assert.Equal(t, "", truncate("", 5))
}
