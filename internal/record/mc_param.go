package record

import "github.com/kevincowleys/dji-log-parser/internal/bitfield"

// MCParams reports flight controller fail-safe and obstacle-avoidance
// configuration in effect at the time of the record.
type MCParams struct {
	FailSafeProtection  FailSafeProtectionType
	MVOFuncEnabled      bool
	AvoidObstacleEnabled bool
	UserAvoidEnabled    bool
}

// ParseMCParams decodes one MCParams payload.
func ParseMCParams(data []byte) MCParams {
	bitpack1 := data[1]
	return MCParams{
		FailSafeProtection:   newFailSafeProtectionType(data[0]),
		MVOFuncEnabled:       bitfield.Bool(bitpack1, 0x01),
		AvoidObstacleEnabled: bitfield.Bool(bitpack1, 0x02),
		UserAvoidEnabled:     bitfield.Bool(bitpack1, 0x04),
	}
}
