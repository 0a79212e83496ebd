package record

import "strings"

// AppTip, AppWarn, and AppSeriousWarn are the three severities of
// free-text message the app surfaces to the pilot; all three share the
// same length-prefixed, NUL-trimmed string payload.
type AppTip struct {
	Message string
}

type AppWarn struct {
	Message string
}

type AppSeriousWarn struct {
	Message string
}

func parseAppMessage(data []byte) string {
	return strings.TrimRight(string(data), "\x00")
}

// ParseAppTip decodes one AppTip payload.
func ParseAppTip(data []byte) AppTip { return AppTip{Message: parseAppMessage(data)} }

// ParseAppWarn decodes one AppWarn payload.
func ParseAppWarn(data []byte) AppWarn { return AppWarn{Message: parseAppMessage(data)} }

// ParseAppSeriousWarn decodes one AppSeriousWarn payload.
func ParseAppSeriousWarn(data []byte) AppSeriousWarn {
	return AppSeriousWarn{Message: parseAppMessage(data)}
}

// AppGPS carries the phone/tablet's own GPS fix, independent of the
// aircraft's OSD position.
type AppGPS struct {
	Longitude float64 // degrees
	Latitude  float64 // degrees
}

// ParseAppGPS decodes one AppGPS payload.
func ParseAppGPS(data []byte) AppGPS {
	return AppGPS{
		Longitude: float64FromLE(data[0:8]),
		Latitude:  float64FromLE(data[8:16]),
	}
}
