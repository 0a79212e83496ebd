package record

import "github.com/kevincowleys/dji-log-parser/internal/bitfield"

// OFDM reports one radio link's signal quality; IsUp tells whether it is the
// uplink or the downlink.
type OFDM struct {
	SignalPercent byte
	IsUp          bool
}

// ParseOFDM decodes one OFDM payload.
func ParseOFDM(data []byte) OFDM {
	bitpack1 := data[0]
	return OFDM{
		SignalPercent: bitfield.Extract(bitpack1, 0x7F),
		IsUp:          bitfield.Bool(bitpack1, 0x80),
	}
}
