package handlers

import (
	stderrors "errors"
	"encoding/json"
	"io"
	"net/http"

	"tmadmin/internal/services"
	"tmadmin/pkg/errors"
	"tmadmin/pkg/pagination"
	"tmadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookHandler Webhook接收与事件管理处理器
type WebhookHandler struct {
	webhookService *services.WebhookService
}

// NewWebhookHandler 创建Webhook处理器
func NewWebhookHandler(webhookService *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// Ingest 接收腾讯会议回调
// 对外端点，返回原生HTTP状态码：202已受理 / 401签名或配置问题 / 400载荷非法
func (h *WebhookHandler) Ingest(c *gin.Context) {
	appID := c.Param("appId")

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取载荷失败"})
		return
	}

	signature := c.GetHeader("X-TM-Signature")
	event, err := h.webhookService.Ingest(appID, payload, signature, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case stderrors.Is(err, errors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "应用配置不存在"})
		case stderrors.Is(err, errors.ErrAuthentication):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "接收失败"})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"event_id": event.EventID})
}

// List 事件列表
func (h *WebhookHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	events, total, err := h.webhookService.GetWithFiltersAndPage(
		configID,
		c.Query("status"),
		c.Query("event_type"),
		c.Query("keyword"),
		params.Page, params.PageSize,
	)
	if err != nil {
		response.ServerError(c, "查询事件失败: "+err.Error())
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, events, pageInfo)
}

// GetByID 事件详情
func (h *WebhookHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.webhookService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询事件")
		return
	}
	response.Success(c, event)
}

// GetPayload 查看事件原始载荷与处理结果
func (h *WebhookHandler) GetPayload(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.webhookService.GetByID(id)
	if err != nil {
		handleServiceError(c, err, "查询事件")
		return
	}

	var payload interface{}
	if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
		// 载荷不是合法JSON时原样返回
		payload = event.Payload
	}
	var result interface{}
	if event.ProcessResult != "" {
		if err := json.Unmarshal([]byte(event.ProcessResult), &result); err != nil {
			result = event.ProcessResult
		}
	}

	response.Success(c, gin.H{
		"event_id":       event.EventID,
		"event_type":     event.EventType,
		"payload":        payload,
		"process_result": result,
	})
}

// Retry 手动重试事件
// 状态不允许重试时返回提示而非错误，便于控制台批量操作
func (h *WebhookHandler) Retry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.webhookService.Retry(id)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidStateTransition) {
			response.SuccessWithMessage(c, err.Error(), event)
			return
		}
		handleServiceError(c, err, "重试事件")
		return
	}
	response.SuccessWithMessage(c, "已重新入队", event)
}

// GetStats 事件统计
func (h *WebhookHandler) GetStats(c *gin.Context) {
	var configID uint
	if id, ok := parseOptionalUintQuery(c, "config_id"); ok {
		configID = id
	}

	stats, err := h.webhookService.GetStats(configID)
	if err != nil {
		response.ServerError(c, "查询统计失败: "+err.Error())
		return
	}
	response.Success(c, stats)
}
