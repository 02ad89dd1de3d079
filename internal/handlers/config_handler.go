package handlers

import (
	"fmt"

	"tmadmin/internal/services"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ConfigHandler 租户配置处理器
type ConfigHandler struct {
	configService *services.ConfigService
}

// NewConfigHandler 创建租户配置处理器
func NewConfigHandler(configService *services.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// CreateConfigRequest 创建配置请求
type CreateConfigRequest struct {
	AppID        string `json:"app_id" binding:"required"`
	SecretID     string `json:"secret_id" binding:"required"`
	SecretKey    string `json:"secret_key" binding:"required"`
	AuthType     string `json:"auth_type" binding:"omitempty,oneof=jwt oauth2"`
	WebhookToken string `json:"webhook_token"`
	Description  string `json:"description"`
}

// Create 创建配置
func (h *ConfigHandler) Create(c *gin.Context) {
	var req CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 解析验证错误，提供更友好的提示
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			errorMsg := "参数验证失败"
			for _, fieldErr := range validationErr {
				switch fieldErr.Field() {
				case "AppID":
					errorMsg = "AppID 不能为空"
				case "SecretID":
					errorMsg = "SecretID 不能为空"
				case "SecretKey":
					errorMsg = "SecretKey 不能为空"
				case "AuthType":
					errorMsg = "认证类型必须是 jwt 或 oauth2"
				default:
					errorMsg = fmt.Sprintf("字段 %s 验证失败", fieldErr.Field())
				}
				break // 只返回第一个错误
			}
			response.BadRequest(c, errorMsg)
			return
		}
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	cfg, err := h.configService.Create(services.CreateConfigParams{
		AppID:        req.AppID,
		SecretID:     req.SecretID,
		SecretKey:    req.SecretKey,
		AuthType:     req.AuthType,
		WebhookToken: req.WebhookToken,
		Description:  req.Description,
	})
	if err != nil {
		handleServiceError(c, err, "创建配置")
		return
	}
	response.Success(c, cfg)
}

// List 配置列表
func (h *ConfigHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var enabled *bool
	switch c.Query("enabled") {
	case "true":
		t := true
		enabled = &t
	case "false":
		f := false
		enabled = &f
	}

	configs, total, err := h.configService.GetWithFiltersAndPage(enabled, c.Query("keyword"), params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "查询配置失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, configs, pageInfo)
}

// GetByID 配置详情
func (h *ConfigHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cfg, err := h.configService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询配置")
		return
	}
	response.Success(c, cfg)
}

// UpdateConfigRequest 更新配置请求
type UpdateConfigRequest struct {
	SecretID     *string `json:"secret_id"`
	SecretKey    *string `json:"secret_key"`
	AuthType     *string `json:"auth_type" binding:"omitempty,oneof=jwt oauth2"`
	WebhookToken *string `json:"webhook_token"`
	Description  *string `json:"description"`
}

// Update 更新配置
func (h *ConfigHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	cfg, err := h.configService.Update(id, services.UpdateConfigParams{
		SecretID:     req.SecretID,
		SecretKey:    req.SecretKey,
		AuthType:     req.AuthType,
		WebhookToken: req.WebhookToken,
		Description:  req.Description,
	})
	if err != nil {
		handleServiceError(c, err, "更新配置")
		return
	}
	response.Success(c, cfg)
}

// Delete 删除配置
func (h *ConfigHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.configService.Delete(id); err != nil {
		handleServiceError(c, err, "删除配置")
		return
	}
	response.Success(c, nil)
}

// Enable 启用配置
func (h *ConfigHandler) Enable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cfg, err := h.configService.Enable(id)
	if err != nil {
		handleServiceError(c, err, "启用配置")
		return
	}
	response.Success(c, cfg)
}

// Disable 禁用配置
func (h *ConfigHandler) Disable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cfg, err := h.configService.Disable(id)
	if err != nil {
		handleServiceError(c, err, "禁用配置")
		return
	}
	response.Success(c, cfg)
}

// TestConnection 测试连通性
func (h *ConfigHandler) TestConnection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.configService.TestConnection(id); err != nil {
		handleServiceError(c, err, "测试连接")
		return
	}
	response.SuccessWithMessage(c, "连接正常", nil)
}

// GetStats 配置统计
func (h *ConfigHandler) GetStats(c *gin.Context) {
	stats, err := h.configService.GetStats()
	if err != nil {
		response.ServerError(c, "查询统计失败: "+err.Error())
		return
	}
	response.Success(c, stats)
}
