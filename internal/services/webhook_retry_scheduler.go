package services

import (
	"sync"
	"time"

	"tmadmin/internal/models"
	"tmadmin/pkg/logger"
	"tmadmin/pkg/queue"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// 每次扫描最多入队的事件数
const sweepBatchSize = 100

// WebhookRetryScheduler 重试扫描调度器
// 定时扫描到达重试时间的pending事件重新入队，兼做入队失败的兜底
type WebhookRetryScheduler struct {
	db      *gorm.DB
	queue   *queue.RedisQueue
	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// NewWebhookRetryScheduler 创建重试扫描调度器
func NewWebhookRetryScheduler(db *gorm.DB, q *queue.RedisQueue) *WebhookRetryScheduler {
	return &WebhookRetryScheduler{
		db:    db,
		queue: q,
		cron:  cron.New(),
	}
}

// Start 启动调度器
func (s *WebhookRetryScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	log := logger.GetLogger()
	log.Info("启动Webhook重试扫描调度器")

	if _, err := s.cron.AddFunc("@every 1m", s.Sweep); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true
	return nil
}

// Stop 停止调度器
func (s *WebhookRetryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	log := logger.GetLogger()
	log.Info("停止Webhook重试扫描调度器")

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
}

// Sweep 扫描到期的pending事件重新入队
func (s *WebhookRetryScheduler) Sweep() {
	log := logger.GetLogger()
	now := time.Now()

	var events []models.WebhookEvent
	err := s.db.
		Where("process_status = ? AND signature_verified = ?", models.WebhookStatusPending, true).
		Where("next_retry_time IS NULL OR next_retry_time <= ?", now).
		Order("created_at ASC").
		Limit(sweepBatchSize).
		Find(&events).Error
	if err != nil {
		log.Errorf("扫描待重试事件失败: %v", err)
		return
	}

	enqueued := 0
	for _, event := range events {
		// 已在队列中的跳过，避免重复入队
		queued, err := s.queue.IsQueued(event.ID)
		if err != nil {
			log.Errorf("查询事件 %d 入队状态失败: %v", event.ID, err)
			continue
		}
		if queued {
			continue
		}

		if err := s.queue.Enqueue(event.ID, event.EventType, event.ConfigID, "", queue.SourceSweeper); err != nil {
			log.Errorf("事件 %d 重新入队失败: %v", event.ID, err)
			continue
		}
		enqueued++
	}

	if enqueued > 0 {
		log.Infof("重试扫描完成，入队 %d 条事件", enqueued)
	}
}
