package services

import (
	stderrors "errors"
	"sync"
	"time"

	"tmadmin/pkg/errors"
	"tmadmin/pkg/logger"
	"tmadmin/pkg/queue"
)

// WebhookWorkerPool Webhook事件处理Worker池
// 每条事件同时只被一个Worker处理，互斥由数据库条件更新保证
type WebhookWorkerPool struct {
	service *WebhookService
	queue   *queue.RedisQueue
	count   int

	wg      sync.WaitGroup
	stopCh  chan struct{}
	mu      sync.Mutex
	running bool
}

// NewWebhookWorkerPool 创建Worker池
func NewWebhookWorkerPool(service *WebhookService, q *queue.RedisQueue, count int) *WebhookWorkerPool {
	if count <= 0 {
		count = 1
	}
	return &WebhookWorkerPool{
		service: service,
		queue:   q,
		count:   count,
	}
}

// Start 启动Worker池
func (p *WebhookWorkerPool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	log := logger.GetLogger()
	log.Infof("启动Webhook处理Worker池，Worker数量: %d", p.count)

	p.stopCh = make(chan struct{})
	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.workerLoop(i)
	}
	p.running = true
	return nil
}

// Stop 停止Worker池，等待在途事件处理完成
func (p *WebhookWorkerPool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	log := logger.GetLogger()
	log.Info("停止Webhook处理Worker池")

	close(p.stopCh)
	p.wg.Wait()
	p.running = false
}

// workerLoop 单个Worker的处理循环
func (p *WebhookWorkerPool) workerLoop(id int) {
	defer p.wg.Done()
	log := logger.GetLogger()

	for {
		select {
		case <-p.stopCh:
			return
		default:
		}

		message, err := p.queue.Dequeue(1 * time.Second)
		if err != nil {
			log.Errorf("Worker %d 取事件失败: %v", id, err)
			time.Sleep(time.Second)
			continue
		}
		if message == nil {
			continue
		}

		if err := p.service.Process(message.EventID); err != nil {
			// 状态抢占失败说明事件已被处理或正在处理，不算错误
			if stderrors.Is(err, errors.ErrInvalidStateTransition) {
				log.Debugf("Worker %d 跳过事件 %d：状态已变更", id, message.EventID)
			} else {
				log.WithError(err).Errorf("Worker %d 处理事件 %d 失败", id, message.EventID)
			}
		}

		if err := p.queue.Ack(message); err != nil {
			log.Errorf("Worker %d 确认事件 %d 失败: %v", id, message.EventID, err)
		}
	}
}
