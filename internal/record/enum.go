package record

import "fmt"

// ByteEnum is the shared shape for every classifier enum decoded from a
// single byte or sub-byte field: a human name when the raw value is
// recognized, else "Unknown" with the raw value preserved for diagnostics
// and round-tripping. Every record enum in this package embeds one,
// constructed from its own name table.
type ByteEnum struct {
	name string
	raw  byte
}

func (e ByteEnum) String() string {
	if e.name == "" {
		return "Unknown"
	}
	return e.name
}

// Raw returns the on-disk byte value.
func (e ByteEnum) Raw() byte { return e.raw }

func (e ByteEnum) MarshalText() ([]byte, error) {
	if e.name == "" {
		return []byte(fmt.Sprintf("Unknown(%d)", e.raw)), nil
	}
	return []byte(e.name), nil
}

func newByteEnum(names map[byte]string, raw byte) ByteEnum {
	return ByteEnum{name: names[raw], raw: raw}
}

type DroneType struct{ ByteEnum }

var droneTypeNames = map[byte]string{
	0: "None", 1: "Inspire1", 2: "Phantom3Advanced", 3: "Phantom3Pro", 4: "Phantom3Standard",
	5: "OpenFrame", 6: "AceOne", 7: "WKM", 8: "Naza", 9: "A2", 10: "A3", 11: "Phantom4",
	14: "Matrice600", 15: "Phantom34K", 16: "MavicPro", 17: "Inspire2", 18: "Phantom4Pro",
	20: "N3", 21: "Spark", 23: "Matrice600Pro", 24: "MavicAir", 25: "Matrice200",
	27: "Phantom4Advanced", 28: "Matrice210", 29: "Phantom3SE", 30: "Matrice210RTK",
	36: "Phantom4ProV2", 41: "Mavic2", 51: "Mavic2Enterprise", 58: "MavicAir2",
	60: "Matrice300RTK", 63: "Mini2", 77: "Mavic3Enterprise", 84: "Mavic3Pro",
	89: "Matrice350RTK", 93: "Mini4Pro", 94: "Avata2",
}

func newDroneType(b byte) DroneType { return DroneType{newByteEnum(droneTypeNames, b)} }

type FlightMode struct{ ByteEnum }

var flightModeNames = map[byte]string{
	0: "Manual", 1: "Atti", 2: "AttiCourseLock", 3: "AttiHover", 4: "Hover",
	5: "GPSBlake", 6: "GPSAtti", 7: "GPSCourseLock", 8: "GPSHomeLock", 9: "GPSHotPoint",
	10: "AssistedTakeoff", 11: "AutoTakeoff", 12: "AutoLanding", 13: "AttiLanding",
	14: "GPSWaypoint", 15: "GoHome", 16: "ClickGo", 17: "Joystick", 18: "GPSAttiWristband",
	19: "Cinematic", 23: "AttiLimited", 24: "Draw", 25: "GPSFollowMe", 26: "ActiveTrack",
	27: "TapFly", 28: "Pano", 29: "Farming", 30: "FPV", 31: "GPSSport", 32: "GPSNovice",
	33: "ConfirmLanding", 35: "TerrainTracking", 36: "NaviAdvGoHome", 37: "NaviAdvLanding",
	38: "Tripod", 39: "TrackHeadlock", 41: "EngineStart", 43: "GPSGentle",
}

func newFlightMode(b byte) FlightMode { return FlightMode{newByteEnum(flightModeNames, b)} }

type AppCommand struct{ ByteEnum }

var appCommandNames = map[byte]string{
	1: "AutoFly", 2: "AutoLanding", 3: "HomePointNow", 4: "HomePointHot", 5: "HomePointLock",
	6: "GoHome", 7: "StartMotor", 8: "StopMotor", 9: "Calibration", 10: "DeformProtecClose",
	11: "DeformProtecOpen", 12: "DropGoHome", 13: "DropTakeOff", 14: "DropLanding",
	15: "DynamicHomePointOpen", 16: "DynamicHomePointClose", 17: "FollowFunctionOpen",
	18: "FollowFunctionClose", 19: "IOCOpen", 20: "IOCClose", 21: "DropCalibration",
	22: "PackMode", 23: "UnPackMode", 24: "EnterManualMode", 25: "StopDeform",
	28: "DownDeform", 29: "UpDeform", 30: "ForceLanding", 31: "ForceLanding2",
}

func newAppCommand(b byte) AppCommand { return AppCommand{newByteEnum(appCommandNames, b)} }

type GroundOrSky struct{ ByteEnum }

func newGroundOrSky(b byte) GroundOrSky {
	switch b {
	case 0, 1:
		return GroundOrSky{ByteEnum{name: "Ground", raw: b}}
	case 2, 3:
		return GroundOrSky{ByteEnum{name: "Sky", raw: b}}
	default:
		return GroundOrSky{ByteEnum{raw: b}}
	}
}

type GoHomeStatus struct{ ByteEnum }

var goHomeStatusNames = map[byte]string{
	0: "Standby", 1: "Preascending", 2: "Align", 3: "Ascending", 4: "Cruise",
	5: "Braking", 6: "Bypassing",
}

func newGoHomeStatus(b byte) GoHomeStatus { return GoHomeStatus{newByteEnum(goHomeStatusNames, b)} }

type BatteryType struct{ ByteEnum }

var batteryTypeNames = map[byte]string{1: "NonSmart", 2: "Smart"}

func newBatteryType(b byte) BatteryType { return BatteryType{newByteEnum(batteryTypeNames, b)} }

type FlightAction struct{ ByteEnum }

var flightActionNames = map[byte]string{
	0: "None", 1: "WarningPowerGoHome", 2: "WarningPowerLanding", 3: "SmartPowerGoHome",
	4: "SmartPowerLanding", 5: "LowVoltageLanding", 6: "LowVoltageGoHome",
	7: "SeriousLowVoltageLanding", 8: "RCOnekeyGoHome", 9: "RCAssistantTakeoff",
	10: "RCAutoTakeoff", 11: "RCAutoLanding", 12: "AppAutoGoHome", 13: "AppAutoLanding",
	14: "AppAutoTakeoff", 15: "OutOfControlGoHome", 16: "ApiAutoTakeoff",
	17: "ApiAutoLanding", 18: "ApiAutoGoHome", 19: "AvoidGroundLanding",
	20: "AirportAvoidLanding", 21: "TooCloseGoHomeLanding", 22: "TooFarGoHomeLanding",
	23: "AppWPMission", 24: "WPAutoTakeoff", 25: "GoHomeAvoid", 26: "PGoHomeFinish",
	27: "VertLowLimitLanding", 28: "BatteryForceLanding", 29: "MCProtectGoHome",
	30: "MotorblockLanding", 31: "AppRequestForceLanding", 32: "FakeBatteryLanding",
	33: "RTHComingObstacleLanding", 34: "IMUErrorRTH",
}

func newFlightAction(b byte) FlightAction { return FlightAction{newByteEnum(flightActionNames, b)} }

type MotorStartFailedCause struct{ ByteEnum }

var motorStartFailedCauseNames = map[byte]string{
	0: "None", 1: "CompassError", 2: "AssistantProtected", 3: "DeviceLocked",
	4: "DistanceLimit", 5: "IMUNeedCalibration", 6: "IMUSNError", 7: "IMUWarning",
	8: "CompassCalibrating", 9: "AttiError", 10: "NoviceProtected", 11: "BatteryCellError",
	12: "BatteryCommuniteError", 13: "SeriousLowVoltage", 14: "SeriousLowPower",
	15: "LowVoltage", 16: "TempureVolLow", 17: "SmartLowToLand", 18: "BatteryNotReady",
	19: "SimulatorMode", 20: "PackMode", 21: "AttitudeAbnormal", 22: "UnActive",
	23: "FlyForbiddenError", 24: "BiasError", 25: "EscError", 26: "ImuInitError",
	27: "SystemUpgrade", 28: "SimulatorStarted", 29: "ImuingError", 30: "AttiAngleOver",
	31: "GyroscopeError", 32: "AcceleratorError", 33: "CompassFailed", 34: "BarometerError",
	35: "BarometerNegative", 36: "CompassBig", 37: "GyroscopeBiasBig", 38: "AcceleratorBiasBig",
	39: "CompassNoiseBig", 40: "BarometerNoiseBig", 41: "InvalidSn", 44: "FlashOperating",
	45: "GPSdisconnect", 47: "SDCardException", 61: "IMUNoconnection", 62: "RCCalibration",
	63: "RCCalibrationException", 64: "RCCalibrationUnfinished", 65: "RCCalibrationException2",
	66: "RCCalibrationException3", 67: "AircraftTypeMismatch", 68: "FoundUnfinishedModule",
	70: "CyroAbnormal", 71: "BaroAbnormal", 72: "CompassAbnormal", 73: "GPSAbnormal",
	74: "NSAbnormal", 75: "TopologyAbnormal", 76: "RCNeedCali", 77: "InvalidFloat",
	78: "M600BatTooLittle", 79: "M600BatAuthErr", 80: "M600BatCommErr",
	81: "M600BatDifVoltLarge1", 82: "M600BatDifVoltLarge2", 83: "InvalidVersion",
	84: "GimbalGyroAbnormal", 85: "GimbalESCPitchNonData", 86: "GimbalESCRollNonData",
	87: "GimbalESCYawNonData", 88: "GimbalFirmwIsUpdating", 89: "GimbalDisorder",
	90: "GimbalPitchShock", 91: "GimbalRollShock", 92: "GimbalYawShock",
	93: "IMUcCalibrationFinished", 101: "BattVersionError", 102: "RTKBadSignal",
	103: "RTKDeviationError", 112: "ESCCalibrating", 113: "GPSSignInvalid",
	114: "GimbalIsCalibrating", 115: "LockByApp", 116: "StartFlyHeightError",
	117: "ESCVersionNotMatch", 118: "IMUOriNotMatch", 119: "StopByApp",
	120: "CompassIMUOriNotMatch", 122: "CompassIMUOriNotMatch", 123: "BatteryOverTemperature",
	124: "BatteryInstallError", 125: "BeImpact",
}

func newMotorStartFailedCause(b byte) MotorStartFailedCause {
	return MotorStartFailedCause{newByteEnum(motorStartFailedCauseNames, b)}
}

type NonGPSCause struct{ ByteEnum }

var nonGPSCauseNames = map[byte]string{
	0: "Already", 1: "Forbid", 2: "GpsNumNonEnough", 3: "GpsHdopLarge",
	4: "GpsPositionNonMatch", 5: "SpeedErrorLarge", 6: "YawErrorLarge", 7: "CompassErrorLarge",
}

func newNonGPSCause(b byte) NonGPSCause { return NonGPSCause{newByteEnum(nonGPSCauseNames, b)} }

type ImuInitFailReason struct{ ByteEnum }

var imuInitFailReasonNames = map[byte]string{
	0: "MonitorError", 1: "CollectingData", 3: "AcceDead", 4: "CompassDead",
	5: "BarometerDead", 6: "BarometerNegative", 7: "CompassModTooLarge",
	8: "GyroBiasTooLarge", 9: "AcceBiasTooLarge", 10: "CompassNoiseTooLarge",
	11: "BarometerNoiseTooLarge", 12: "WaitingMcStationary", 13: "AcceMoveTooLarge",
	14: "McHeaderMoved", 15: "McVibrated",
}

func newImuInitFailReason(b byte) ImuInitFailReason {
	return ImuInitFailReason{newByteEnum(imuInitFailReasonNames, b)}
}

// GimbalMode, FlightModeSwitch, IOCMode, CompassCalibrationState,
// BatteryGoHomeStatus, SDCardState, CameraWorkMode, SenderType,
// ComponentType share the ByteEnum shape with smaller tables; grouped here
// since each record type that uses one only needs a handful of codes.

type GimbalMode struct{ ByteEnum }

var gimbalModeNames = map[byte]string{0: "Free", 1: "FPV", 2: "YawFollow"}

func newGimbalMode(b byte) GimbalMode { return GimbalMode{newByteEnum(gimbalModeNames, b)} }

type IOCMode struct{ ByteEnum }

var iocModeNames = map[byte]string{1: "CourseLock", 2: "HomeLock", 3: "HotspotSurround"}

func newIOCMode(b byte) IOCMode { return IOCMode{newByteEnum(iocModeNames, b)} }

type CompassCalibrationState struct{ ByteEnum }

var compassCalibrationStateNames = map[byte]string{
	0: "NotCalibrating", 1: "Horizontal", 2: "Vertical", 3: "Successful", 4: "Failed",
}

func newCompassCalibrationState(b byte) CompassCalibrationState {
	return CompassCalibrationState{newByteEnum(compassCalibrationStateNames, b)}
}

type GoHomeMode struct{ ByteEnum }

func newGoHomeMode(fixedHeight bool) GoHomeMode {
	if fixedHeight {
		return GoHomeMode{ByteEnum{name: "FixedHeight", raw: 1}}
	}
	return GoHomeMode{ByteEnum{name: "Normal", raw: 0}}
}

type SDCardState struct{ ByteEnum }

var sdCardStateNames = map[byte]string{
	0: "Normal", 1: "NoCard", 2: "InvalidCard", 3: "WriteProtected", 4: "Unformatted",
	5: "Formatting", 6: "IllegalFileSys", 8: "Full", 9: "LowSpeed", 11: "IndexMax",
	12: "Initialize", 13: "SuggestFormat", 14: "Repairing",
}

func newSDCardState(b byte) SDCardState { return SDCardState{newByteEnum(sdCardStateNames, b)} }

type CameraWorkMode struct{ ByteEnum }

var cameraWorkModeNames = map[byte]string{
	0: "Capture", 1: "Recording", 2: "Playback", 3: "Transcode", 4: "Tuning",
	5: "PowerSave", 6: "Download", 7: "XcodePlayback", 8: "Broadcast",
}

func newCameraWorkMode(b byte) CameraWorkMode { return CameraWorkMode{newByteEnum(cameraWorkModeNames, b)} }

type SenderType struct{ ByteEnum }

var senderTypeNames = map[byte]string{
	0: "None", 1: "Camera", 3: "MC", 4: "Gimbal", 6: "RC", 11: "Battery",
}

func newSenderType(b byte) SenderType { return SenderType{newByteEnum(senderTypeNames, b)} }

type ComponentType struct{ ByteEnum }

var componentTypeNames = map[byte]string{
	1: "Camera", 2: "Aircraft", 3: "RC", 4: "Battery",
}

func newComponentType(b byte) ComponentType { return ComponentType{newByteEnum(componentTypeNames, b)} }

type FailSafeProtectionType struct{ ByteEnum }

var failSafeProtectionTypeNames = map[byte]string{0: "Hover", 1: "Landing", 2: "GoHome"}

func newFailSafeProtectionType(b byte) FailSafeProtectionType {
	return FailSafeProtectionType{newByteEnum(failSafeProtectionTypeNames, b)}
}

type VirtualStickVerticalControlMode struct{ ByteEnum }

var virtualStickVerticalControlModeNames = map[byte]string{0: "Velocity", 1: "Position"}

func newVirtualStickVerticalControlMode(b byte) VirtualStickVerticalControlMode {
	return VirtualStickVerticalControlMode{newByteEnum(virtualStickVerticalControlModeNames, b)}
}

type VirtualStickRollPitchControlMode struct{ ByteEnum }

var virtualStickRollPitchControlModeNames = map[byte]string{0: "Angle", 1: "Velocity"}

func newVirtualStickRollPitchControlMode(b byte) VirtualStickRollPitchControlMode {
	return VirtualStickRollPitchControlMode{newByteEnum(virtualStickRollPitchControlModeNames, b)}
}

type VirtualStickYawControlMode struct{ ByteEnum }

var virtualStickYawControlModeNames = map[byte]string{0: "Angle", 1: "Velocity"}

func newVirtualStickYawControlMode(b byte) VirtualStickYawControlMode {
	return VirtualStickYawControlMode{newByteEnum(virtualStickYawControlModeNames, b)}
}

type VirtualStickFlightCoordinateSystem struct{ ByteEnum }

var virtualStickFlightCoordinateSystemNames = map[byte]string{0: "Ground", 1: "Body"}

func newVirtualStickFlightCoordinateSystem(b byte) VirtualStickFlightCoordinateSystem {
	return VirtualStickFlightCoordinateSystem{newByteEnum(virtualStickFlightCoordinateSystemNames, b)}
}

type DeformMode struct{ ByteEnum }

var deformModeNames = map[byte]string{0: "Pack", 1: "Protect", 2: "Normal"}

func newDeformMode(b byte) DeformMode { return DeformMode{newByteEnum(deformModeNames, b)} }

type DeformStatus struct{ ByteEnum }

var deformStatusNames = map[byte]string{
	1: "FoldComplete", 2: "Folding", 3: "StretchComplete", 4: "Stretching", 5: "StopDeformation",
}

func newDeformStatus(b byte) DeformStatus { return DeformStatus{newByteEnum(deformStatusNames, b)} }

type BatteryGoHomeStatus struct{ ByteEnum }

var batteryGoHomeStatusNames = map[byte]string{0: "NonGoHome", 1: "GoHome", 2: "GoHomeAlready"}

func newBatteryGoHomeStatus(b byte) BatteryGoHomeStatus {
	return BatteryGoHomeStatus{newByteEnum(batteryGoHomeStatusNames, b)}
}

type FlightModeSwitch struct{ ByteEnum }

var flightModeSwitchNames = map[byte]string{0: "One", 1: "Two", 2: "Three"}

// newFlightModeSwitch applies the Mavic Pro remote's inverted switch-
// position mapping (position values 0/1/2 mean Two/Three/One on that
// specific remote) before looking up the display name.
func newFlightModeSwitch(value byte, productTypeName string) FlightModeSwitch {
	mapped := value
	if productTypeName == "MavicPro" {
		switch value {
		case 0:
			mapped = 1
		case 1:
			mapped = 2
		case 2:
			mapped = 0
		}
	}
	return FlightModeSwitch{newByteEnum(flightModeSwitchNames, mapped)}
}
