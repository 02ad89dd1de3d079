package main

import (
	"fmt"

	"tmadmin/internal/database"
	"tmadmin/internal/models"
	"tmadmin/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	// 1. 创建默认租户配置
	if err := createDefaultConfig(db); err != nil {
		return fmt.Errorf("创建默认租户配置失败: %v", err)
	}

	// 2. 创建内置角色
	if err := createBuiltInRoles(db); err != nil {
		return fmt.Errorf("创建内置角色失败: %v", err)
	}

	// 3. 创建内置布局和背景
	if err := createBuiltInStyles(db); err != nil {
		return fmt.Errorf("创建内置样式失败: %v", err)
	}

	// 4. 创建默认管理员用户
	if err := createDefaultAdmin(db); err != nil {
		return fmt.Errorf("创建默认管理员失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDefaultConfig 创建默认租户配置（禁用状态，待管理员补齐密钥后启用）
func createDefaultConfig(db *gorm.DB) error {
	var count int64
	db.Model(&models.TencentMeetingConfig{}).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("租户配置已存在，跳过创建")
		return nil
	}

	cfg := &models.TencentMeetingConfig{
		AppID:       "default",
		SecretID:    "change-me",
		SecretKey:   "change-me",
		AuthType:    models.AuthTypeJWT,
		Enabled:     false,
		Description: "默认配置，请补齐密钥后启用",
	}

	if err := db.Create(cfg).Error; err != nil {
		return err
	}

	logger.GetLogger().Info("默认租户配置创建成功")
	return nil
}

// createBuiltInRoles 创建内置会议角色
func createBuiltInRoles(db *gorm.DB) error {
	builtInRoles := []models.Role{
		{RoleID: "host", Name: "主持人", RoleType: models.RoleTypeSystem, Description: "会议主持人",
			Permissions: datatypes.JSON(`["meeting:control","meeting:mute","meeting:remove"]`)},
		{RoleID: "co-host", Name: "联席主持人", RoleType: models.RoleTypeSystem, Description: "协助主持会议",
			Permissions: datatypes.JSON(`["meeting:mute","meeting:remove"]`)},
		{RoleID: "attendee", Name: "参会者", RoleType: models.RoleTypeSystem, Description: "普通参会者",
			Permissions: datatypes.JSON(`["meeting:join"]`)},
	}

	for i := range builtInRoles {
		role := &builtInRoles[i]
		var count int64
		db.Model(&models.Role{}).Where("role_id = ?", role.RoleID).Count(&count)
		if count > 0 {
			continue
		}

		role.ConfigID = 1
		role.Status = models.RoleStatusActive
		role.IsBuiltIn = true
		if err := db.Create(role).Error; err != nil {
			return err
		}
	}

	logger.GetLogger().Info("内置角色初始化完成")
	return nil
}

// createBuiltInStyles 创建内置布局和背景
func createBuiltInStyles(db *gorm.DB) error {
	builtInLayouts := []models.Layout{
		{LayoutID: "grid-default", Name: "宫格视图", LayoutType: models.LayoutTypeGrid, IsDefault: true,
			LayoutConfig: datatypes.JSON(`{"columns":3,"rows":3}`)},
		{LayoutID: "speaker-default", Name: "演讲者视图", LayoutType: models.LayoutTypeSpeaker,
			LayoutConfig: datatypes.JSON(`{"thumbnail_count":5}`)},
	}
	for i := range builtInLayouts {
		layout := &builtInLayouts[i]
		var count int64
		db.Model(&models.Layout{}).Where("layout_id = ?", layout.LayoutID).Count(&count)
		if count > 0 {
			continue
		}

		layout.ConfigID = 1
		layout.Status = models.LayoutStatusActive
		layout.IsBuiltIn = true
		if err := db.Create(layout).Error; err != nil {
			return err
		}
	}

	builtInBackgrounds := []models.Background{
		{BackgroundID: "blur-default", Name: "虚化背景", BackgroundType: models.BackgroundTypeBlur, IsDefault: true},
		{BackgroundID: "none", Name: "无背景", BackgroundType: models.BackgroundTypeColor},
	}
	for i := range builtInBackgrounds {
		background := &builtInBackgrounds[i]
		var count int64
		db.Model(&models.Background{}).Where("background_id = ?", background.BackgroundID).Count(&count)
		if count > 0 {
			continue
		}

		background.ConfigID = 1
		background.Status = models.BackgroundStatusActive
		background.IsBuiltIn = true
		if err := db.Create(background).Error; err != nil {
			return err
		}
	}

	logger.GetLogger().Info("内置样式初始化完成")
	return nil
}

// createDefaultAdmin 创建默认管理员用户
func createDefaultAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		logger.GetLogger().Info("管理员用户已存在，跳过创建")
		return nil
	}

	admin := &models.User{
		ConfigID: 1,
		UserID:   "admin",
		Username: "admin",
		UserType: models.UserTypeEnterprise,
		Status:   models.UserStatusActive,
		IsAdmin:  true,
	}
	if err := admin.SetPassword("Admin@123"); err != nil {
		return err
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Warn("默认管理员创建成功（admin/Admin@123），请尽快修改密码")
	return nil
}
