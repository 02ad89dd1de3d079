package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingValidate(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name    string
		meeting Meeting
		wantErr bool
	}{
		{
			name:    "正常会议",
			meeting: Meeting{Subject: "周会", StartTime: now, EndTime: &later, Duration: 60},
			wantErr: false,
		},
		{
			name:    "无结束时间",
			meeting: Meeting{Subject: "周会", StartTime: now, Duration: 30},
			wantErr: false,
		},
		{
			name:    "主题为空",
			meeting: Meeting{StartTime: now, Duration: 60},
			wantErr: true,
		},
		{
			name:    "结束时间早于开始时间",
			meeting: Meeting{Subject: "周会", StartTime: now, EndTime: &earlier, Duration: 60},
			wantErr: true,
		},
		{
			name:    "时长为零",
			meeting: Meeting{Subject: "周会", StartTime: now, Duration: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.meeting.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMeetingAddAttendee(t *testing.T) {
	meeting := &Meeting{BaseModel: BaseModel{ID: 1}, Subject: "周会"}
	attendee := &MeetingUser{UserID: "u-1"}

	meeting.AddAttendee(attendee)

	require.Len(t, meeting.Attendees, 1)
	assert.Equal(t, meeting, attendee.Meeting)
	assert.Equal(t, meeting.ID, attendee.MeetingRefID)
}

func TestMeetingAddAttendeeIdempotent(t *testing.T) {
	meeting := &Meeting{BaseModel: BaseModel{ID: 1}}
	attendee := &MeetingUser{UserID: "u-1"}

	meeting.AddAttendee(attendee)
	meeting.AddAttendee(attendee)

	assert.Len(t, meeting.Attendees, 1)
}

func TestMeetingRemoveAttendee(t *testing.T) {
	meeting := &Meeting{BaseModel: BaseModel{ID: 1}}
	a := &MeetingUser{UserID: "u-1"}
	b := &MeetingUser{UserID: "u-2"}
	meeting.AddAttendee(a)
	meeting.AddAttendee(b)

	meeting.RemoveAttendee(a)

	require.Len(t, meeting.Attendees, 1)
	assert.Equal(t, b, meeting.Attendees[0])
	// 反向指针已断开
	assert.Nil(t, a.Meeting)
	assert.Zero(t, a.MeetingRefID)
	// b 不受影响
	assert.Equal(t, meeting, b.Meeting)
}

func TestMeetingRemoveAttendeeNotPresent(t *testing.T) {
	meeting := &Meeting{BaseModel: BaseModel{ID: 1}}
	meeting.AddAttendee(&MeetingUser{UserID: "u-1"})

	meeting.RemoveAttendee(&MeetingUser{UserID: "u-9"})

	assert.Len(t, meeting.Attendees, 1)
}

func TestMeetingCollectionsIndependent(t *testing.T) {
	meeting := &Meeting{BaseModel: BaseModel{ID: 3}}
	meeting.AddGuest(&MeetingGuest{GuestName: "访客"})
	meeting.AddRecording(&Recording{RecordingID: "rec-1"})
	meeting.AddVote(&MeetingVote{Title: "投票"})
	meeting.AddDocument(&MeetingDocument{Title: "文档"})

	assert.Len(t, meeting.Guests, 1)
	assert.Len(t, meeting.Recordings, 1)
	assert.Len(t, meeting.Votes, 1)
	assert.Len(t, meeting.Documents, 1)
	assert.Equal(t, meeting.ID, meeting.Guests[0].MeetingRefID)
	assert.Equal(t, meeting.ID, meeting.Recordings[0].MeetingRefID)
}
