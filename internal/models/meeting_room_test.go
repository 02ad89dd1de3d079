package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingRoomAddDevice(t *testing.T) {
	room := &MeetingRoom{BaseModel: BaseModel{ID: 5}}
	device := &Device{DeviceID: "cam-1"}

	room.AddDevice(device)

	require.Len(t, room.Devices, 1)
	assert.Equal(t, room, device.Room)
	require.NotNil(t, device.RoomRefID)
	assert.Equal(t, room.ID, *device.RoomRefID)

	// 重复添加幂等
	room.AddDevice(device)
	assert.Len(t, room.Devices, 1)
}

func TestMeetingRoomRemoveDevice(t *testing.T) {
	room := &MeetingRoom{BaseModel: BaseModel{ID: 5}}
	a := &Device{DeviceID: "cam-1"}
	b := &Device{DeviceID: "mic-1"}
	room.AddDevice(a)
	room.AddDevice(b)

	room.RemoveDevice(a)

	require.Len(t, room.Devices, 1)
	assert.Equal(t, b, room.Devices[0])
	assert.Nil(t, a.Room)
	assert.Nil(t, a.RoomRefID)
}
