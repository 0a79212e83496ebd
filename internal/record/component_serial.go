package record

// ComponentSerial reports the serial number of one aircraft component,
// identified by ComponentType.
type ComponentSerial struct {
	ComponentType ComponentType
	Serial        string
}

// ParseComponentSerial decodes one ComponentSerial payload: a type byte, a
// length byte, then that many bytes of NUL-trimmed serial string.
func ParseComponentSerial(data []byte) ComponentSerial {
	ct := newComponentType(data[0])
	length := int(data[1])
	end := 2 + length
	if end > len(data) {
		end = len(data)
	}
	return ComponentSerial{ComponentType: ct, Serial: trimNulString(data[2:end])}
}
