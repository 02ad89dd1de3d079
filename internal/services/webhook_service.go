package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"tmadmin/internal/models"
	"tmadmin/pkg/config"
	"tmadmin/pkg/errors"
	"tmadmin/pkg/logger"
	"tmadmin/pkg/queue"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventHandler 事件处理函数，返回处理结果摘要（JSON字符串）
// 处理器在事务内执行，失败时整个事务回滚
type EventHandler func(tx *gorm.DB, event *models.WebhookEvent, data map[string]interface{}) (string, error)

// WebhookService Webhook接收与重试状态机
type WebhookService struct {
	db    *gorm.DB
	queue *queue.RedisQueue

	handlers map[string]EventHandler
	mu       sync.RWMutex

	// 重试策略
	baseDelay time.Duration
	maxDelay  time.Duration
	maxRetry  int
}

// NewWebhookService 创建Webhook服务，注册默认事件处理器
func NewWebhookService(db *gorm.DB, q *queue.RedisQueue) *WebhookService {
	cfg := config.GetConfig()
	s := &WebhookService{
		db:        db,
		queue:     q,
		handlers:  make(map[string]EventHandler),
		baseDelay: cfg.Webhook.RetryBaseDelay,
		maxDelay:  cfg.Webhook.RetryMaxDelay,
		maxRetry:  cfg.Webhook.MaxRetryCount,
	}
	s.registerDefaultHandlers()
	return s
}

// RegisterHandler 注册事件类型处理器
func (s *WebhookService) RegisterHandler(eventType string, handler EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[eventType] = handler
}

// getHandler 查找事件类型处理器
func (s *WebhookService) getHandler(eventType string) (EventHandler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[eventType]
	return h, ok
}

// ========== 签名校验 ==========

// ComputeSignature 计算载荷签名：HMAC-SHA256(token, payload)的十六进制
func ComputeSignature(payload []byte, token string) string {
	h := hmac.New(sha256.New, []byte(token))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature 校验签名，纯函数，相同输入结果恒定
func VerifySignature(payload []byte, token, signature string) bool {
	expected := ComputeSignature(payload, token)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ========== 接收 ==========

// webhookPayload 入站载荷中关心的字段
type webhookPayload struct {
	Event     string `json:"event"`
	EventID   string `json:"event_id"`
	Timestamp int64  `json:"timestamp"`
	Data      struct {
		MeetingID string `json:"meeting_id"`
		UserID    string `json:"user_id"`
	} `json:"data"`
}

// Ingest 接收入站Webhook：校验签名、持久化事件、入队异步处理
// 接收与处理解耦，校验通过即确认，处理结果不影响HTTP响应
func (s *WebhookService) Ingest(appID string, payload []byte, signature, sourceIP, userAgent string) (*models.WebhookEvent, error) {
	// 查找配置
	var cfg models.TencentMeetingConfig
	if err := s.db.Where("app_id = ?", appID).First(&cfg).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	// 禁用的配置拒绝接收
	if !cfg.IsEnabled() {
		return nil, errors.ErrAuthentication
	}

	if len(payload) == 0 {
		return nil, errors.NewValidationError("payload", "载荷不能为空")
	}

	// 解析载荷，提取事件类型与关联信息
	var parsed webhookPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, errors.NewValidationError("payload", "载荷不是合法的JSON")
	}
	if parsed.Event == "" {
		return nil, errors.NewValidationError("event", "载荷缺少事件类型")
	}

	now := time.Now()
	event := &models.WebhookEvent{
		ConfigID:      cfg.ID,
		EventID:       parsed.EventID,
		EventType:     parsed.Event,
		Payload:       string(payload),
		MeetingID:     parsed.Data.MeetingID,
		UserID:        parsed.Data.UserID,
		EventTime:     &now,
		ProcessStatus: models.WebhookStatusPending,
		SourceIP:      sourceIP,
		UserAgent:     userAgent,
	}
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	if parsed.Timestamp > 0 {
		t := time.Unix(parsed.Timestamp, 0)
		event.EventTime = &t
	}

	// 配置了Token则校验签名；签名失败的事件保留审计记录但永不重试
	if cfg.HasWebhookToken() {
		if !VerifySignature(payload, cfg.WebhookToken, signature) {
			event.SignatureVerified = false
			event.ProcessStatus = models.WebhookStatusFailed
			event.ErrorMessage = "签名校验失败"
			if err := s.db.Create(event).Error; err != nil {
				logger.GetLogger().Errorf("保存签名失败事件出错: %v", err)
			}
			return nil, errors.ErrAuthentication
		}
		event.SignatureVerified = true
	} else {
		// 未配置Token视为无需校验
		event.SignatureVerified = true
	}

	if err := s.db.Create(event).Error; err != nil {
		return nil, err
	}

	// 入队异步处理，入队失败不影响接收确认，由定时扫描兜底
	if s.queue != nil {
		if err := s.queue.Enqueue(event.ID, event.EventType, cfg.ID, cfg.AppID, queue.SourceIngest); err != nil {
			logger.GetLogger().Errorf("事件 %d 入队失败: %v", event.ID, err)
		}
	}

	s.publishStatus(event)
	return event, nil
}

// ========== 处理 ==========

// Process 处理一条事件：pending/failed -> processing 的条件更新保证
// 同一事件同时只被一个Worker处理，并发Worker或重复投递下不会双重处理
func (s *WebhookService) Process(eventID uint) error {
	// 原子状态抢占：带WHERE条件的UPDATE，RowsAffected为0说明已被他人抢占
	result := s.db.Model(&models.WebhookEvent{}).
		Where("id = ? AND process_status IN ? AND signature_verified = ?",
			eventID,
			[]string{models.WebhookStatusPending, models.WebhookStatusFailed},
			true).
		Update("process_status", models.WebhookStatusProcessing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrInvalidStateTransition
	}

	var event models.WebhookEvent
	if err := s.db.First(&event, eventID).Error; err != nil {
		return err
	}

	summary, err := s.dispatch(&event)
	now := time.Now()
	if err != nil {
		// 处理失败：记录错误，重试计数不变，重试需显式触发
		updates := map[string]interface{}{
			"process_status": models.WebhookStatusFailed,
			"error_message":  truncate(err.Error(), 1000),
		}
		if uerr := s.db.Model(&event).Updates(updates).Error; uerr != nil {
			return uerr
		}
		event.ProcessStatus = models.WebhookStatusFailed
		event.ErrorMessage = truncate(err.Error(), 1000)
		s.publishStatus(&event)
		return err
	}

	updates := map[string]interface{}{
		"process_status":  models.WebhookStatusSuccess,
		"process_result":  summary,
		"processing_time": now,
		"error_message":   "",
	}
	if uerr := s.db.Model(&event).Updates(updates).Error; uerr != nil {
		return uerr
	}
	event.ProcessStatus = models.WebhookStatusSuccess
	event.ProcessResult = summary
	event.ProcessingTime = &now
	s.publishStatus(&event)
	return nil
}

// dispatch 按事件类型分发到处理器，处理器在事务内执行
func (s *WebhookService) dispatch(event *models.WebhookEvent) (string, error) {
	handler, ok := s.getHandler(event.EventType)
	if !ok {
		return "", fmt.Errorf("未注册事件类型 %s 的处理器", event.EventType)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(event.Payload), &raw); err != nil {
		return "", fmt.Errorf("解析事件载荷失败: %v", err)
	}
	data, _ := raw["data"].(map[string]interface{})

	var summary string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var herr error
		summary, herr = handler(tx, event, data)
		return herr
	})
	return summary, err
}

// ========== 重试 ==========

// Backoff 指数退避：base * 2^(n-1)，封顶maxDelay
func (s *WebhookService) Backoff(retryCount int) time.Duration {
	if retryCount <= 1 {
		return s.baseDelay
	}
	delay := s.baseDelay
	for i := 1; i < retryCount; i++ {
		delay *= 2
		if delay >= s.maxDelay {
			return s.maxDelay
		}
	}
	return delay
}

// Retry 显式重试：仅pending/failed状态允许，重试计数加一并按退避策略安排下次处理
// 超过最大重试次数后事件永久失败，等待人工介入
func (s *WebhookService) Retry(eventID uint) (*models.WebhookEvent, error) {
	var event models.WebhookEvent
	if err := s.db.First(&event, eventID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	// 签名未通过的事件不允许重试
	if !event.SignatureVerified {
		return &event, errors.ErrInvalidStateTransition
	}
	if !event.CanRetry() {
		return &event, errors.ErrInvalidStateTransition
	}

	// 重试次数封顶，超限永久失败
	if event.RetryCount >= s.maxRetry {
		updates := map[string]interface{}{
			"process_status": models.WebhookStatusFailed,
			"error_message":  fmt.Sprintf("已达到最大重试次数 %d，需人工介入", s.maxRetry),
		}
		if err := s.db.Model(&event).Updates(updates).Error; err != nil {
			return nil, err
		}
		event.ProcessStatus = models.WebhookStatusFailed
		s.publishStatus(&event)
		return &event, errors.ErrInvalidStateTransition
	}

	newRetryCount := event.RetryCount + 1
	nextRetry := time.Now().Add(s.Backoff(newRetryCount))

	// 条件更新防止与Worker并发抢占冲突
	result := s.db.Model(&models.WebhookEvent{}).
		Where("id = ? AND process_status IN ?",
			eventID,
			[]string{models.WebhookStatusPending, models.WebhookStatusFailed}).
		Updates(map[string]interface{}{
			"process_status":  models.WebhookStatusPending,
			"retry_count":     newRetryCount,
			"next_retry_time": nextRetry,
			"error_message":   "",
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return &event, errors.ErrInvalidStateTransition
	}

	event.ProcessStatus = models.WebhookStatusPending
	event.RetryCount = newRetryCount
	event.NextRetryTime = &nextRetry
	event.ErrorMessage = ""

	// 退避时间已到则立即入队，否则由定时扫描到点入队
	if s.queue != nil && !nextRetry.After(time.Now()) {
		if err := s.queue.Enqueue(event.ID, event.EventType, event.ConfigID, "", queue.SourceRetry); err != nil {
			logger.GetLogger().Errorf("重试事件 %d 入队失败: %v", event.ID, err)
		}
	}

	s.publishStatus(&event)
	return &event, nil
}

// ========== 查询 ==========

// GetByID 按ID获取事件
func (s *WebhookService) GetByID(id uint) (*models.WebhookEvent, error) {
	var event models.WebhookEvent
	err := s.db.Preload("Config").First(&event, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound
	}
	return &event, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *WebhookService) GetWithFiltersAndPage(configID uint, status, eventType, keyword string, page, pageSize int) ([]*models.WebhookEvent, int64, error) {
	var events []*models.WebhookEvent
	var total int64

	query := s.db.Model(&models.WebhookEvent{})

	if configID > 0 {
		query = query.Where("config_id = ?", configID)
	}
	if status != "" {
		query = query.Where("process_status = ?", status)
	}
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("event_id LIKE ? OR meeting_id LIKE ? OR user_id LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// GetStats 各状态事件数量统计
func (s *WebhookService) GetStats(configID uint) (map[string]int64, error) {
	stats := make(map[string]int64)
	for _, status := range []string{
		models.WebhookStatusPending,
		models.WebhookStatusProcessing,
		models.WebhookStatusSuccess,
		models.WebhookStatusFailed,
	} {
		var count int64
		query := s.db.Model(&models.WebhookEvent{}).Where("process_status = ?", status)
		if configID > 0 {
			query = query.Where("config_id = ?", configID)
		}
		if err := query.Count(&count).Error; err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, nil
}

// ========== 状态推送 ==========

// statusUpdate 推送给监控端的状态变更消息
type statusUpdate struct {
	ID            uint   `json:"id"`
	EventID       string `json:"event_id"`
	EventType     string `json:"event_type"`
	ProcessStatus string `json:"process_status"`
	RetryCount    int    `json:"retry_count"`
	ErrorMessage  string `json:"error_message,omitempty"`
	UpdatedAt     int64  `json:"updated_at"`
}

// publishStatus 向监控频道推送事件状态变更
func (s *WebhookService) publishStatus(event *models.WebhookEvent) {
	if s.queue == nil {
		return
	}
	msg := statusUpdate{
		ID:            event.ID,
		EventID:       event.EventID,
		EventType:     event.EventType,
		ProcessStatus: event.ProcessStatus,
		RetryCount:    event.RetryCount,
		ErrorMessage:  event.ErrorMessage,
		UpdatedAt:     time.Now().Unix(),
	}
	if err := s.queue.PublishMessage("webhook-events", msg); err != nil {
		logger.GetLogger().Warnf("推送事件状态失败: %v", err)
	}
}

// truncate 截断超长字符串
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
