// Package keychain implements the FeaturePoint classifier and the Keychain
// key store used to select and chain the (iv, key) pair for feature-encrypted
// records, plus the keychain request builder (pass 1 of the two-pass parse).
package keychain

import (
	"fmt"
	"strconv"
	"strings"
)

// FeaturePoint names one of the 15 key buckets a record type can be
// classified into. The external keychain service addresses each bucket by
// the string form "FR_Standardization_Feature_<Name>_<Index>".
type FeaturePoint int

const (
	BaseFeature FeaturePoint = iota + 1
	VisionFeature
	WaypointFeature
	AgricultureFeature
	AirLinkFeature
	AfterSalesFeature
	DJIFlyCustomFeature
	PlaintextFeature
	FlightHubFeature
	GimbalFeature
	RCFeature
	CameraFeature
	BatteryFeature
	FlySafeFeature
	SecurityFeature
)

var featurePointNames = map[FeaturePoint]string{
	BaseFeature:         "Base",
	VisionFeature:       "Vision",
	WaypointFeature:     "Waypoint",
	AgricultureFeature:  "Agriculture",
	AirLinkFeature:      "AirLink",
	AfterSalesFeature:   "AfterSales",
	DJIFlyCustomFeature: "DJIFlyCustom",
	PlaintextFeature:    "Plaintext",
	FlightHubFeature:    "FlightHub",
	GimbalFeature:       "Gimbal",
	RCFeature:           "RC",
	CameraFeature:       "Camera",
	BatteryFeature:      "Battery",
	FlySafeFeature:      "FlySafe",
	SecurityFeature:     "Security",
}

var featurePointFromName = func() map[string]FeaturePoint {
	m := make(map[string]FeaturePoint, len(featurePointNames))
	for fp, name := range featurePointNames {
		m[name] = fp
	}
	return m
}()

// String renders the wire form "FR_Standardization_Feature_<Name>_<Index>"
// used in keychain request/response JSON bodies.
func (fp FeaturePoint) String() string {
	name, ok := featurePointNames[fp]
	if !ok {
		name = "Unknown"
	}
	return fmt.Sprintf("FR_Standardization_Feature_%s_%d", name, int(fp))
}

// MarshalText implements encoding.TextMarshaler so FeaturePoint can be used
// directly as a map key or struct field in JSON request/response bodies.
func (fp FeaturePoint) MarshalText() ([]byte, error) {
	return []byte(fp.String()), nil
}

const featurePointPrefix = "FR_Standardization_Feature_"

// UnmarshalText parses the "FR_Standardization_Feature_<Name>_<Index>" wire
// form back into a FeaturePoint, trusting the numeric index over the name
// (the index is authoritative; the name is documentation only).
func (fp *FeaturePoint) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), featurePointPrefix)
	if s == string(text) {
		return fmt.Errorf("keychain: invalid feature point %q", text)
	}
	idx := strings.LastIndexByte(s, '_')
	if idx < 0 {
		return fmt.Errorf("keychain: invalid feature point %q", text)
	}
	index, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return fmt.Errorf("keychain: invalid feature point index in %q: %w", text, err)
	}
	*fp = FeaturePoint(index)
	return nil
}

// FromRecordType classifies a (record_type, version) pair into its
// FeaturePoint key bucket. Several record types use BaseFeature or
// AfterSalesFeature at exactly version 13 and their dedicated feature for
// every other encrypted version; this quirk is preserved exactly as the
// original implementation defines it. Unlisted record types default to
// PlaintextFeature — a vendor-undocumented convention that is intentionally
// preserved (see DESIGN.md open question b).
func FromRecordType(recordType byte, version byte) FeaturePoint {
	switch recordType {
	case 1: // OSD
		return BaseFeature
	case 2: // Home
		return BaseFeature
	case 3: // Gimbal
		if version == 13 {
			return BaseFeature
		}
		return GimbalFeature
	case 4: // RC
		if version == 13 {
			return BaseFeature
		}
		return RCFeature
	case 5: // Custom
		return DJIFlyCustomFeature
	case 6: // Deform
		return BaseFeature
	case 7: // CenterBattery
		if version == 13 {
			return BaseFeature
		}
		return BatteryFeature
	case 8: // SmartBattery / PushedBattery
		if version == 13 {
			return BaseFeature
		}
		return BatteryFeature
	case 9: // AppTip
		return DJIFlyCustomFeature
	case 10: // AppWarn
		return DJIFlyCustomFeature
	case 11: // RCGPS / RCPushGPS
		if version == 13 {
			return BaseFeature
		}
		return RCFeature
	case 12: // RCDebug
		return AfterSalesFeature
	case 13: // RecoverInfo
		return BaseFeature
	case 14: // AppGPS
		return BaseFeature
	case 15: // Firmware
		return BaseFeature
	case 16: // OFDMDebug
		return AfterSalesFeature
	case 17: // VisionGroup
		return VisionFeature
	case 18: // VisionWarningString
		return VisionFeature
	case 19: // MCParams
		return AfterSalesFeature
	case 20: // AppOperation
		return DJIFlyCustomFeature
	case 21: // AGOSD
		return AgricultureFeature
	case 22: // SmartBatteryGroup
		if version == 13 {
			return AfterSalesFeature
		}
		return BatteryFeature
	case 24: // AppSeriousWarn
		return DJIFlyCustomFeature
	case 25: // Camera / CameraInfo
		if version == 13 {
			return BaseFeature
		}
		return CameraFeature
	case 26: // ADSBFlightData
		return AfterSalesFeature
	case 27: // ADSBFlightOriginal
		return AfterSalesFeature
	case 28: // FlyForbidDBuuid
		if version == 13 {
			return AfterSalesFeature
		}
		return FlySafeFeature
	case 29: // AppSpecialControlJoyStick
		if version == 13 {
			return BaseFeature
		}
		return RCFeature
	case 30: // AppLowFreqCustom
		return DJIFlyCustomFeature
	case 31: // NavigationModeGrouped
		return WaypointFeature
	case 32: // GSMissionStatus
		return WaypointFeature
	case 33: // VirtualStick / AppVirtualStick
		if version == 13 {
			return BaseFeature
		}
		return RCFeature
	case 34: // GSMissionEvent
		return WaypointFeature
	case 35: // WaypointMissionUpload
		return WaypointFeature
	case 36: // WaypointUpload
		return WaypointFeature
	case 38: // WaypointMissionDownload
		return WaypointFeature
	case 39: // WaypointDownload
		return WaypointFeature
	case 40: // ComponentSerialNumberDataType
		return BaseFeature
	case 41: // AgricultureDisplayField
		return AgricultureFeature
	case 43: // AgricultureRadarPush
		return AgricultureFeature
	case 44: // AgricultureSpray
		return AgricultureFeature
	case 45: // RTKDifference
		return AgricultureFeature
	case 46: // AgricultureFarmMissionInfo
		return AgricultureFeature
	case 47: // AgricultureFarmTaskTeamDataType
		return AgricultureFeature
	case 48: // AgricultureGroundStationPushData
		return AgricultureFeature
	case 49: // OFDM / AgricultureOFDMRadioSignalPush
		return AirLinkFeature
	case 50: // Recover / KeyStorageRecover
		return PlaintextFeature
	case 51: // FlySafeLimitInfo
		if version == 13 {
			return AfterSalesFeature
		}
		return FlySafeFeature
	case 52: // FlySafeUnlockLicenseUserActionInfo
		if version == 13 {
			return AfterSalesFeature
		}
		return FlySafeFeature
	case 53: // FlightHubInfo
		if version == 13 {
			return AfterSalesFeature
		}
		return FlightHubFeature
	case 54: // GOBusiness
		return DJIFlyCustomFeature
	case 55: // Unknown
		return SecurityFeature
	case 56: // KeyStorage
		return PlaintextFeature
	case 58: // HealthGroup
		return BaseFeature
	case 59: // FCIMUInfo
		return BaseFeature
	case 62: // RemoteControllerDisplayField
		return RCFeature
	case 63: // FlightControllerCommonOSDField
		return BaseFeature
	default:
		return PlaintextFeature
	}
}
