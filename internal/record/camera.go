package record

import (
	"encoding/binary"

	"github.com/kevincowleys/dji-log-parser/internal/bitfield"
)

// Camera is the periodic camera connection/status record: SD card state,
// recording state, and storage remaining.
type Camera struct {
	IsConnect             bool
	IsUsbConnect          bool
	TimerSyncState        byte
	IsShootingSinglePhoto bool
	IsRecording           bool

	HasSdCard    bool
	SdCardState  SDCardState
	IsUpgrading  byte

	IsHeat                   bool
	IsCaptureDisable         bool
	IsDdrStoring             bool
	ContiCapture             bool
	HdmiOutputStatus         bool
	EncryptStatus            byte

	FileSynState             bool
	RcBtnForbidState         bool
	GetFocusState            bool
	PanoTimelapseGimbalState bool
	IsEnableTrackingMode     bool

	WorkMode             CameraWorkMode
	SdCardTotalCapacity  uint32 // MB
	SdCardRemainCapacity uint32 // MB
	RemainPhotoNum       uint32
	RemainVideoTimer     uint32 // seconds
	RecordTime           uint16 // seconds
	CameraType           byte
}

// ParseCamera decodes one Camera payload.
func ParseCamera(data []byte) Camera {
	var c Camera

	bitpack1 := data[0]
	c.IsConnect = bitfield.Bool(bitpack1, 0x01)
	c.IsUsbConnect = bitfield.Bool(bitpack1, 0x02)
	c.TimerSyncState = bitfield.Extract(bitpack1, 0x04)
	c.IsShootingSinglePhoto = bitfield.Bool(bitpack1, 0x38)
	c.IsRecording = bitfield.NonZero(bitpack1, 0xC0)

	bitpack2 := data[1]
	c.HasSdCard = bitfield.Bool(bitpack2, 0x02)
	c.SdCardState = newSDCardState(bitfield.Extract(bitpack2, 0x3C))
	c.IsUpgrading = bitfield.Extract(bitpack2, 0x40)

	bitpack3 := data[2]
	c.IsHeat = bitfield.Bool(bitpack3, 0x02)
	c.IsCaptureDisable = bitfield.Bool(bitpack3, 0x04)
	c.IsDdrStoring = bitfield.Bool(bitpack3, 0x08)
	c.ContiCapture = bitfield.Bool(bitpack3, 0x10)
	c.HdmiOutputStatus = bitfield.Bool(bitpack3, 0x20)
	c.EncryptStatus = bitfield.Extract(bitpack3, 0xC0)

	bitpack4 := data[3]
	c.FileSynState = bitfield.Bool(bitpack4, 0x01)
	c.RcBtnForbidState = bitfield.Bool(bitpack4, 0x02)
	c.GetFocusState = bitfield.Bool(bitpack4, 0x04)
	c.PanoTimelapseGimbalState = bitfield.Bool(bitpack4, 0x08)
	c.IsEnableTrackingMode = bitfield.Bool(bitpack4, 0x10)

	c.WorkMode = newCameraWorkMode(data[4])
	c.SdCardTotalCapacity = binary.LittleEndian.Uint32(data[5:9])
	c.SdCardRemainCapacity = binary.LittleEndian.Uint32(data[9:13])
	c.RemainPhotoNum = binary.LittleEndian.Uint32(data[13:17])
	c.RemainVideoTimer = binary.LittleEndian.Uint32(data[17:21])
	c.RecordTime = binary.LittleEndian.Uint16(data[21:23])
	c.CameraType = data[23]

	return c
}
