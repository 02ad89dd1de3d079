package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisQueue Redis队列实现
type RedisQueue struct {
	client *redis.Client
	prefix string
}

// EventMessage 队列中的Webhook事件消息
type EventMessage struct {
	EventID   uint   `json:"event_id"`   // WebhookEvent主键
	EventType string `json:"event_type"` // 事件类型
	ConfigID  uint   `json:"config_id"`  // 所属配置
	AppID     string `json:"app_id"`     // 配置AppID
	Source    string `json:"source"`     // 入队来源：ingest / retry / sweeper
	Created   int64  `json:"created"`
}

// 入队来源常量
const (
	SourceIngest  = "ingest"  // 接收时入队
	SourceRetry   = "retry"   // 手动重试入队
	SourceSweeper = "sweeper" // 定时扫描入队
)

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisQueue 创建Redis队列实例
func NewRedisQueue(config *Config) *RedisQueue {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "tmadmin:webhook"
	}

	return &RedisQueue{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// Ping 测试Redis连接
func (q *RedisQueue) Ping() error {
	ctx := context.Background()
	return q.client.Ping(ctx).Err()
}

// Enqueue 将Webhook事件加入处理队列
func (q *RedisQueue) Enqueue(eventID uint, eventType string, configID uint, appID, source string) error {
	ctx := context.Background()

	message := EventMessage{
		EventID:   eventID,
		EventType: eventType,
		ConfigID:  configID,
		AppID:     appID,
		Source:    source,
		Created:   time.Now().Unix(),
	}

	// 序列化消息
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("序列化事件消息失败: %v", err)
	}

	// 加入队列（左侧入队）
	if err := q.client.LPush(ctx, q.getQueueKey(), data).Err(); err != nil {
		return fmt.Errorf("事件入队失败: %v", err)
	}

	// 记录入队标记，避免扫描器重复入队
	queuedKey := q.getQueuedKey(eventID)
	if err := q.client.Set(ctx, queuedKey, source, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("记录入队状态失败: %v", err)
	}

	return nil
}

// Dequeue 取出一条待处理事件，队列为空时返回nil
func (q *RedisQueue) Dequeue(timeout time.Duration) (*EventMessage, error) {
	ctx := context.Background()

	// 使用BLMove原子性地从队列移动到处理中队列
	// 这样即使Worker崩溃，事件也不会丢失
	result, err := q.client.BLMove(ctx, q.getQueueKey(), q.getProcessingKey(), "RIGHT", "LEFT", timeout).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("获取事件失败: %v", err)
	}

	var message EventMessage
	if err := json.Unmarshal([]byte(result), &message); err != nil {
		return nil, fmt.Errorf("解析事件消息失败: %v", err)
	}

	return &message, nil
}

// Ack 处理完成后从处理中队列移除
func (q *RedisQueue) Ack(message *EventMessage) error {
	ctx := context.Background()

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("序列化事件消息失败: %v", err)
	}

	if err := q.client.LRem(ctx, q.getProcessingKey(), 1, data).Err(); err != nil {
		return fmt.Errorf("移除处理中事件失败: %v", err)
	}

	// 清除入队标记，允许后续再次入队
	return q.client.Del(ctx, q.getQueuedKey(message.EventID)).Err()
}

// IsQueued 判断事件是否已在队列中
func (q *RedisQueue) IsQueued(eventID uint) (bool, error) {
	ctx := context.Background()
	n, err := q.client.Exists(ctx, q.getQueuedKey(eventID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetQueueStats 获取队列统计信息
func (q *RedisQueue) GetQueueStats() (map[string]int64, error) {
	ctx := context.Background()

	pending, err := q.client.LLen(ctx, q.getQueueKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("获取队列长度失败: %v", err)
	}

	processing, err := q.client.LLen(ctx, q.getProcessingKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("获取处理中队列长度失败: %v", err)
	}

	return map[string]int64{
		"pending":    pending,
		"processing": processing,
	}, nil
}

// ClearQueue 清空待处理队列
func (q *RedisQueue) ClearQueue() error {
	ctx := context.Background()
	return q.client.Del(ctx, q.getQueueKey()).Err()
}

// 辅助方法

// getQueueKey 获取队列键名
func (q *RedisQueue) getQueueKey() string {
	return fmt.Sprintf("%s:events", q.prefix)
}

// getProcessingKey 获取处理中队列键名
func (q *RedisQueue) getProcessingKey() string {
	return fmt.Sprintf("%s:events:processing", q.prefix)
}

// getQueuedKey 获取入队标记键名
func (q *RedisQueue) getQueuedKey(eventID uint) string {
	return fmt.Sprintf("%s:queued:%d", q.prefix, eventID)
}

// GetClient 获取Redis客户端（用于高级操作）
func (q *RedisQueue) GetClient() *redis.Client {
	return q.client
}

// PublishMessage 发布消息到指定频道
func (q *RedisQueue) PublishMessage(channel string, message interface{}) error {
	ctx := context.Background()

	// 序列化消息
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %v", err)
	}

	// 发布消息
	channelKey := fmt.Sprintf("%s:channel:%s", q.prefix, channel)
	if err := q.client.Publish(ctx, channelKey, data).Err(); err != nil {
		return fmt.Errorf("发布消息失败: %v", err)
	}

	return nil
}

// SubscribeChannel 订阅指定频道
func (q *RedisQueue) SubscribeChannel(channel string) *redis.PubSub {
	ctx := context.Background()
	channelKey := fmt.Sprintf("%s:channel:%s", q.prefix, channel)
	return q.client.Subscribe(ctx, channelKey)
}
