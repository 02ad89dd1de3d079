package database

import (
	"tmadmin/internal/models"
	"tmadmin/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		// 租户配置
		&models.TencentMeetingConfig{},
		// 组织
		&models.Department{},
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.UserRole{},
		// 会议
		&models.Meeting{},
		&models.MeetingUser{},
		&models.MeetingGuest{},
		&models.MeetingVote{},
		&models.MeetingDocument{},
		&models.MeetingRole{},
		// 录制
		&models.Recording{},
		// 会议室与设备
		&models.Room{},
		&models.MeetingRoom{},
		&models.Device{},
		// 样式目录
		&models.Layout{},
		&models.Background{},
		&models.MeetingLayout{},
		&models.MeetingBackground{},
		// Webhook
		&models.WebhookEvent{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")
	return nil
}
