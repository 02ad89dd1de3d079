package services

import (
	"testing"
	"time"

	"tmadmin/internal/models"
	"tmadmin/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 打开内存SQLite并迁移测试涉及的表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if logger.Logger == nil {
		logger.Logger = logrus.New()
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库在多连接下互相独立，限制为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.TencentMeetingConfig{},
		&models.Department{},
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Meeting{},
		&models.MeetingUser{},
		&models.MeetingRole{},
		&models.Recording{},
		&models.WebhookEvent{},
	))
	return db
}

// newTestWebhookService 构造不依赖Redis与进程级配置的Webhook服务
func newTestWebhookService(db *gorm.DB) *WebhookService {
	return &WebhookService{
		db:        db,
		handlers:  make(map[string]EventHandler),
		baseDelay: 5 * time.Minute,
		maxDelay:  2 * time.Hour,
		maxRetry:  3,
	}
}
