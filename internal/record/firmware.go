package record

import "fmt"

// Firmware reports the version string one aircraft component is running.
type Firmware struct {
	SenderType    SenderType
	SubSenderType byte
	Version       string
}

// ParseFirmware decodes one Firmware payload.
func ParseFirmware(data []byte) Firmware {
	return Firmware{
		SenderType:    newSenderType(data[0]),
		SubSenderType: data[1],
		Version:       fmt.Sprintf("%d.%d.%d", data[2], data[3], data[4]),
	}
}
