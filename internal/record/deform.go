package record

import "github.com/kevincowleys/dji-log-parser/internal/bitfield"

// Deform reports the arm-deployment state of foldable/transformable
// aircraft.
type Deform struct {
	IsDeformProtected bool
	DeformStatus      DeformStatus
	DeformMode        DeformMode
}

// ParseDeform decodes one Deform payload.
func ParseDeform(data []byte) Deform {
	var d Deform
	bitpack1 := data[0]
	d.IsDeformProtected = bitfield.Bool(bitpack1, 0x01)
	d.DeformStatus = newDeformStatus(bitfield.Extract(bitpack1, 0x0E))
	d.DeformMode = newDeformMode(bitfield.Extract(bitpack1, 0x30))
	return d
}
