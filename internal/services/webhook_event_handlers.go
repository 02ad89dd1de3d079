package services

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"tmadmin/internal/models"

	"gorm.io/gorm"
)

// registerDefaultHandlers 注册内置的事件处理器
// 会议生命周期、录制完成、参会人进出，与外部系统推送的事件类型一一对应
func (s *WebhookService) registerDefaultHandlers() {
	s.RegisterHandler(models.EventMeetingCreated, s.handleMeetingCreated)
	s.RegisterHandler(models.EventMeetingStarted, s.meetingStatusHandler(models.MeetingStatusInProgress))
	s.RegisterHandler(models.EventMeetingEnded, s.meetingStatusHandler(models.MeetingStatusEnded))
	s.RegisterHandler(models.EventMeetingCancelled, s.meetingStatusHandler(models.MeetingStatusCancelled))
	s.RegisterHandler(models.EventRecordingCompleted, s.handleRecordingCompleted)
	s.RegisterHandler(models.EventUserJoined, s.handleParticipantJoined)
	s.RegisterHandler(models.EventUserLeft, s.handleParticipantLeft)
}

// resultSummary 组装处理结果摘要
func resultSummary(action string, fields map[string]interface{}) string {
	summary := map[string]interface{}{"action": action}
	for k, v := range fields {
		summary[k] = v
	}
	data, _ := json.Marshal(summary)
	return string(data)
}

// handleMeetingCreated 会议创建事件：本地不存在时登记会议
func (s *WebhookService) handleMeetingCreated(tx *gorm.DB, event *models.WebhookEvent, data map[string]interface{}) (string, error) {
	if event.MeetingID == "" {
		return "", fmt.Errorf("事件缺少meeting_id")
	}

	var count int64
	if err := tx.Model(&models.Meeting{}).Where("meeting_id = ?", event.MeetingID).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return resultSummary("meeting_exists", map[string]interface{}{"meeting_id": event.MeetingID}), nil
	}

	subject, _ := data["subject"].(string)
	if subject == "" {
		subject = "未命名会议"
	}
	meeting := &models.Meeting{
		ConfigID:  event.ConfigID,
		MeetingID: event.MeetingID,
		Subject:   subject,
		StartTime: time.Now(),
		Status:    models.MeetingStatusScheduled,
		UserID:    event.UserID,
		Duration:  60,
	}
	if err := tx.Create(meeting).Error; err != nil {
		return "", err
	}
	return resultSummary("meeting_created", map[string]interface{}{"meeting_id": event.MeetingID}), nil
}

// meetingStatusHandler 会议状态流转事件的通用处理器
func (s *WebhookService) meetingStatusHandler(newStatus string) EventHandler {
	return func(tx *gorm.DB, event *models.WebhookEvent, data map[string]interface{}) (string, error) {
		if event.MeetingID == "" {
			return "", fmt.Errorf("事件缺少meeting_id")
		}

		result := tx.Model(&models.Meeting{}).
			Where("meeting_id = ?", event.MeetingID).
			Update("status", newStatus)
		if result.Error != nil {
			return "", result.Error
		}
		if result.RowsAffected == 0 {
			return "", fmt.Errorf("会议 %s 不存在", event.MeetingID)
		}
		return resultSummary("meeting_status_updated", map[string]interface{}{
			"meeting_id": event.MeetingID,
			"status":     newStatus,
		}), nil
	}
}

// handleRecordingCompleted 录制完成事件：录制记录置为可用
func (s *WebhookService) handleRecordingCompleted(tx *gorm.DB, event *models.WebhookEvent, data map[string]interface{}) (string, error) {
	recordingID, _ := data["recording_id"].(string)
	if recordingID == "" {
		return "", fmt.Errorf("事件缺少recording_id")
	}

	updates := map[string]interface{}{
		"status": models.RecordingStatusAvailable,
	}
	if fileURL, ok := data["file_url"].(string); ok && fileURL != "" {
		updates["file_url"] = fileURL
	}

	result := tx.Model(&models.Recording{}).
		Where("recording_id = ?", recordingID).
		Updates(updates)
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		return "", fmt.Errorf("录制 %s 不存在", recordingID)
	}
	return resultSummary("recording_available", map[string]interface{}{"recording_id": recordingID}), nil
}

// handleParticipantJoined 参会人加入事件
func (s *WebhookService) handleParticipantJoined(tx *gorm.DB, event *models.WebhookEvent, data map[string]interface{}) (string, error) {
	if event.MeetingID == "" || event.UserID == "" {
		return "", fmt.Errorf("事件缺少meeting_id或user_id")
	}

	var meeting models.Meeting
	if err := tx.Where("meeting_id = ?", event.MeetingID).First(&meeting).Error; err != nil {
		return "", fmt.Errorf("会议 %s 不存在", event.MeetingID)
	}

	now := time.Now()
	var mu models.MeetingUser
	err := tx.Where("meeting_ref_id = ? AND user_id = ?", meeting.ID, event.UserID).First(&mu).Error
	if err != nil {
		if !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		// 未邀请的参会人也登记出席记录
		mu = models.MeetingUser{
			MeetingRefID:     meeting.ID,
			UserID:           event.UserID,
			InviteStatus:     models.InviteStatusAccepted,
			AttendanceStatus: models.AttendanceStatusPresent,
			JoinTime:         &now,
		}
		if cerr := tx.Create(&mu).Error; cerr != nil {
			return "", cerr
		}
	} else {
		updates := map[string]interface{}{
			"attendance_status": models.AttendanceStatusPresent,
			"join_time":         now,
		}
		if uerr := tx.Model(&mu).Updates(updates).Error; uerr != nil {
			return "", uerr
		}
	}
	return resultSummary("participant_joined", map[string]interface{}{
		"meeting_id": event.MeetingID,
		"user_id":    event.UserID,
	}), nil
}

// handleParticipantLeft 参会人离开事件：更新离开时间并累计参会时长
func (s *WebhookService) handleParticipantLeft(tx *gorm.DB, event *models.WebhookEvent, data map[string]interface{}) (string, error) {
	if event.MeetingID == "" || event.UserID == "" {
		return "", fmt.Errorf("事件缺少meeting_id或user_id")
	}

	var meeting models.Meeting
	if err := tx.Where("meeting_id = ?", event.MeetingID).First(&meeting).Error; err != nil {
		return "", fmt.Errorf("会议 %s 不存在", event.MeetingID)
	}

	var mu models.MeetingUser
	if err := tx.Where("meeting_ref_id = ? AND user_id = ?", meeting.ID, event.UserID).First(&mu).Error; err != nil {
		return "", fmt.Errorf("参会记录不存在: %s", event.UserID)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"attendance_status": models.AttendanceStatusLeft,
		"leave_time":        now,
	}
	if mu.JoinTime != nil {
		minutes := int(now.Sub(*mu.JoinTime).Minutes())
		updates["attend_duration"] = mu.AttendDuration + minutes
	}
	if err := tx.Model(&mu).Updates(updates).Error; err != nil {
		return "", err
	}
	return resultSummary("participant_left", map[string]interface{}{
		"meeting_id": event.MeetingID,
		"user_id":    event.UserID,
	}), nil
}
