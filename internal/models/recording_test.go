package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordingValidate(t *testing.T) {
	start := time.Now()
	end := start.Add(time.Hour)
	before := start.Add(-time.Minute)

	ok := &Recording{FileURL: "https://cdn.example.com/rec.mp4", StartTime: start, EndTime: &end}
	assert.NoError(t, ok.Validate())

	noURL := &Recording{StartTime: start}
	assert.Error(t, noURL.Validate())

	badTime := &Recording{FileURL: "https://cdn.example.com/rec.mp4", StartTime: start, EndTime: &before}
	assert.Error(t, badTime.Validate())

	// 录制中允许无结束时间
	ongoing := &Recording{FileURL: "https://cdn.example.com/rec.mp4", StartTime: start}
	assert.NoError(t, ongoing.Validate())
}
