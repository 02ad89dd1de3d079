package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestMeetingVoteValidate(t *testing.T) {
	tests := []struct {
		name    string
		vote    MeetingVote
		wantErr bool
	}{
		{
			name:    "正常投票",
			vote:    MeetingVote{Title: "午饭吃什么", Options: datatypes.JSON(`["A","B"]`)},
			wantErr: false,
		},
		{
			name:    "标题为空",
			vote:    MeetingVote{Options: datatypes.JSON(`["A"]`)},
			wantErr: true,
		},
		{
			name:    "缺少选项",
			vote:    MeetingVote{Title: "投票"},
			wantErr: true,
		},
		{
			name:    "选项为空数组",
			vote:    MeetingVote{Title: "投票", Options: datatypes.JSON(`[]`)},
			wantErr: true,
		},
		{
			name:    "选项不是数组",
			vote:    MeetingVote{Title: "投票", Options: datatypes.JSON(`"oops"`)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vote.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
