// Package frame normalizes the decoded record stream into a flat,
// per-instant Frame: one row per OSD record, carrying forward whatever the
// most recent Gimbal/Camera/RC/Battery/Home/Recover/App records last said.
package frame

import (
	"time"

	"github.com/kevincowleys/dji-log-parser/internal/layout"
	"github.com/kevincowleys/dji-log-parser/internal/record"
)

// Frame is one normalized row of flight data, keyed to the OSD record that
// pushed it. Fields populated from an Option<T> in the source format are
// pointers here: nil means the upstream record never reported it.
type Frame struct {
	CustomDateTime time.Time `json:"CUSTOM.dateTime"`

	// OSD fields mirror the most recent OSD record.
	OSDFlyTime                float32                      `json:"OSD.flyTime"`
	OSDLatitude               float64                      `json:"OSD.lalitude"`
	OSDLongitude              float64                      `json:"OSD.longitude"`
	OSDHeight                 float32                      `json:"OSD.height"`
	OSDHeightMax              float32                      `json:"OSD.heightMax"`
	OSDVpsHeight              float32                      `json:"OSD.vpsHeight"`
	OSDAltitude               float32                      `json:"OSD.altitude"`
	OSDXSpeed                 float32                      `json:"OSD.xSpeed"`
	OSDXSpeedMax              float32                      `json:"OSD.xSpeedMax"`
	OSDYSpeed                 float32                      `json:"OSD.ySpeed"`
	OSDYSpeedMax              float32                      `json:"OSD.ySpeedMax"`
	OSDZSpeed                 float32                      `json:"OSD.zSpeed"`
	OSDZSpeedMax              float32                      `json:"OSD.zSpeedMax"`
	OSDPitch                  float32                      `json:"OSD.pitch"`
	OSDRoll                   float32                      `json:"OSD.roll"`
	OSDYaw                    float32                      `json:"OSD.yaw"`
	OSDFlycState              *record.FlightMode           `json:"OSD.flycState,omitempty"`
	OSDFlycCommand            *record.AppCommand           `json:"OSD.flycCommand,omitempty"`
	OSDFlightAction           *record.FlightAction         `json:"OSD.flightAction,omitempty"`
	OSDIsGPSUsed              bool                         `json:"OSD.isGPSUsed"`
	OSDNonGPSCause            *record.NonGPSCause          `json:"OSD.nonGPSCause,omitempty"`
	OSDGPSNum                 byte                         `json:"OSD.gpsNum"`
	OSDGPSLevel               byte                         `json:"OSD.gpsLevel"`
	OSDDroneType              *record.DroneType            `json:"OSD.droneType,omitempty"`
	OSDIsSwaveWork            bool                         `json:"OSD.isSwaveWork"`
	OSDWaveError              bool                         `json:"OSD.waveError"`
	OSDGoHomeStatus           *record.GoHomeStatus         `json:"OSD.goHomeStatus,omitempty"`
	OSDBatteryType            *record.BatteryType          `json:"OSD.batteryType,omitempty"`
	OSDIsOnGround             bool                         `json:"OSD.isOnGround"`
	OSDIsMotorOn              bool                         `json:"OSD.isMotorOn"`
	OSDIsMotorBlocked         bool                         `json:"OSD.isMotorBlocked"`
	OSDMotorStartFailedCause  *record.MotorStartFailedCause `json:"OSD.motorStartFailedCause,omitempty"`
	OSDIsImuPreheated         bool                         `json:"OSD.isImuPreheated"`
	OSDImuInitFailReason      *record.ImuInitFailReason    `json:"OSD.imuInitFailReason,omitempty"`
	OSDIsAcceletorOverRange   bool                         `json:"OSD.isAcceleratorOverRange"`
	OSDIsBarometerDeadInAir   bool                         `json:"OSD.isBarometerDeadInAir"`
	OSDIsCompassError         bool                         `json:"OSD.isCompassError"`
	OSDIsGoHomeHeightModified bool                         `json:"OSD.isGoHomeHeightModified"`
	OSDCanIOCWork             bool                         `json:"OSD.canIOCWork"`
	OSDIsNotEnoughForce       bool                         `json:"OSD.isNotEnoughForce"`
	OSDIsOutOfLimit           bool                         `json:"OSD.isOutOfLimit"`
	OSDIsPropellerCatapult    bool                         `json:"OSD.isPropellerCatapult"`
	OSDIsVibrating            bool                         `json:"OSD.isVibrating"`
	OSDIsVisionUsed           bool                         `json:"OSD.isVisionUsed"`
	OSDVoltageWarning         byte                         `json:"OSD.voltageWarning"`

	// GIMBAL fields mirror the most recent Gimbal record.
	GimbalMode          *record.GimbalMode `json:"GIMBAL.mode,omitempty"`
	GimbalPitch         float32            `json:"GIMBAL.pitch"`
	GimbalRoll          float32            `json:"GIMBAL.roll"`
	GimbalYaw           float32            `json:"GIMBAL.yaw"`
	GimbalIsPitchAtLimit bool              `json:"GIMBAL.isPitchAtLimit"`
	GimbalIsRollAtLimit bool               `json:"GIMBAL.isRollAtLimit"`
	GimbalIsYawAtLimit  bool               `json:"GIMBAL.isYawAtLimit"`
	GimbalIsStuck       bool               `json:"GIMBAL.isStuck"`

	// CAMERA.isPhoto resets to false on every new OSD frame; the other
	// CAMERA fields carry forward.
	CameraIsPhoto          bool                    `json:"CAMERA.isPhoto"`
	CameraIsVideo          bool                    `json:"CAMERA.isVideo"`
	CameraSDCardIsInserted bool                    `json:"CAMERA.sdCardIsInserted"`
	CameraSDCardState      *record.SDCardState     `json:"CAMERA.sdCardState,omitempty"`

	// RC fields mirror the most recent RC/OFDM records.
	RCDownlinkSignal *byte  `json:"RC.downlinkSignal,omitempty"`
	RCUplinkSignal   *byte  `json:"RC.uplinkSignal,omitempty"`
	RCAileron        uint16 `json:"RC.aileron"`
	RCElevator       uint16 `json:"RC.elevator"`
	RCThrottle       uint16 `json:"RC.throttle"`
	RCRudder         uint16 `json:"RC.rudder"`

	// BATTERY fields mirror whichever battery record shape the log uses.
	// CellVoltages is sized from the aircraft's product type at frame
	// construction time (2-12 cells depending on model), not hardcoded.
	BatteryChargeLevel             byte      `json:"BATTERY.chargeLevel"`
	BatteryVoltage                 float32   `json:"BATTERY.voltage"`
	BatteryCurrent                 float32   `json:"BATTERY.current"`
	BatteryCurrentCapacity         uint32    `json:"BATTERY.currentCapacity"`
	BatteryFullCapacity            uint32    `json:"BATTERY.fullCapacity"`
	BatteryCellNum                 byte      `json:"BATTERY.cellNum"`
	BatteryIsCellVoltageEstimated  bool      `json:"BATTERY.isCellVoltageEstimated"`
	BatteryCellVoltages            []float32 `json:"BATTERY.cellVoltages"`
	BatteryCellVoltageDeviation    float32   `json:"BATTERY.cellVoltageDeviation"`
	BatteryMaxCellVoltageDeviation float32   `json:"BATTERY.maxCellVoltageDeviation"`
	BatteryTemperature             float32   `json:"BATTERY.temperature"`
	BatteryMinTemperature          float32   `json:"BATTERY.minTemperature"`
	BatteryMaxTemperature          float32   `json:"BATTERY.maxTemperature"`

	// HOME fields mirror the most recent Home record.
	HomeLatitude                      float64               `json:"HOME.latitude"`
	HomeLongitude                     float64               `json:"HOME.longitude"`
	HomeAltitude                      float32               `json:"HOME.altitude"`
	HomeHeightLimit                   float32               `json:"HOME.heightLimit"`
	HomeIsHomeRecord                  bool                  `json:"HOME.isHomeRecord"`
	HomeGoHomeMode                    *record.GoHomeMode    `json:"HOME.goHomeMode,omitempty"`
	HomeIsDynamicHomePointEnabled     bool                  `json:"HOME.isDynamicHomePointEnabled"`
	HomeIsNearDistanceLimit           bool                  `json:"HOME.isNearDistanceLimit"`
	HomeIsNearHeightLimit             bool                  `json:"HOME.isNearHeightLimit"`
	HomeIsCompassCalibrating          bool                  `json:"HOME.isCompassCalibrating"`
	HomeCompassCalibrationState       *record.CompassCalibrationState `json:"HOME.compassCalibrationState,omitempty"`
	HomeIsMultipleModeEnabled         bool                  `json:"HOME.isMultipleModeEnabled"`
	HomeIsBeginnerMode                bool                  `json:"HOME.isBeginnerMode"`
	HomeIsIOCEnabled                  bool                  `json:"HOME.isIOCEnabled"`
	HomeIOCMode                       *record.IOCMode       `json:"HOME.IOCMode,omitempty"`
	HomeGoHomeHeight                  uint16                `json:"HOME.goHomeHeight"`
	HomeIOCCourseLockAngle            *int16                `json:"HOME.IOCCourseLockAngle,omitempty"`
	HomeMaxAllowedHeight              float32               `json:"HOME.maxAllowedHeight"`
	HomeCurrentFlightRecordIndex      uint16                `json:"HOME.currentFlightRecordIndex"`

	// RECOVER fields are written once, from the single RecoverInfo record.
	// RecoverAppPlatform carries the aircraft product type recorded at
	// recovery time; the container format has no separate recovered-app
	// platform field the way DETAILS.appPlatform does.
	RecoverAppPlatform *layout.ProductType `json:"RECOVER.appPlatform,omitempty"`
	RecoverAppVersion  string           `json:"RECOVER.appVersion"`
	RecoverAircraftName string          `json:"RECOVER.aircraftName"`
	RecoverAircraftSN  string           `json:"RECOVER.aircraftSerial"`
	RecoverCameraSN    string           `json:"RECOVER.cameraSerial"`
	RecoverRcSN        string           `json:"RECOVER.rcSerial"`
	RecoverBatterySN   string           `json:"RECOVER.batterySerial"`

	// APP fields reset to empty on every new OSD frame.
	AppTip  string `json:"APP.tip"`
	AppWarn string `json:"APP.warn"`

	// DETAILS fields are the flight summary, copied in unchanged on every
	// OSD frame.
	DetailsTotalTime          float32          `json:"DETAILS.totalTime"`
	DetailsTotalDistance      float32          `json:"DETAILS.totalDistance"`
	DetailsMaxHeight          float32          `json:"DETAILS.maxHeight"`
	DetailsMaxHorizontalSpeed float32          `json:"DETAILS.maxHorizontalSpeed"`
	DetailsMaxVerticalSpeed   float32          `json:"DETAILS.maxVerticalSpeed"`
	DetailsPhotoNum           int32            `json:"DETAILS.photoNum"`
	DetailsVideoTime          int64            `json:"DETAILS.videoTime"`
	DetailsAircraftName       string           `json:"DETAILS.aircraftName"`
	DetailsAircraftSN         string           `json:"DETAILS.aircraftSerial"`
	DetailsCameraSN           string           `json:"DETAILS.cameraSerial"`
	DetailsRcSN               string           `json:"DETAILS.rcSerial"`
	DetailsAppPlatform        *layout.Platform `json:"DETAILS.appPlatform,omitempty"`
	DetailsAppVersion         string           `json:"DETAILS.appVersion"`
}

// appendMessage joins a new message onto an accumulator, semicolon
// separated, matching how the app concatenates multiple tips/warnings that
// land within the same frame.
func appendMessage(original, message string) string {
	if original != "" {
		return original + "; " + message
	}
	return message
}

// reset clears the event-scoped fields that only apply to the frame they
// were reported in. Cell voltages are cleared too, but only when they were
// never actually measured (estimated from the pack voltage), since a new
// frame shouldn't inherit a stale estimate.
func (f *Frame) reset() {
	f.CameraIsPhoto = false
	f.AppTip = ""
	f.AppWarn = ""

	if f.BatteryIsCellVoltageEstimated {
		for i := range f.BatteryCellVoltages {
			f.BatteryCellVoltages[i] = 0
		}
	}
}

// finalize computes values derived from the frame's current state, once all
// of this frame's records have been applied: running maxima for height and
// speed, a per-cell voltage estimate when no cell-level record ever arrived,
// running min/max battery temperature, and the cell voltage deviation (plus
// its running maximum).
func (f *Frame) finalize() {
	if f.OSDHeightMax < f.OSDHeight {
		f.OSDHeightMax = f.OSDHeight
	}
	if f.OSDXSpeedMax < f.OSDXSpeed {
		f.OSDXSpeedMax = f.OSDXSpeed
	}
	if f.OSDYSpeedMax < f.OSDYSpeed {
		f.OSDYSpeedMax = f.OSDYSpeed
	}
	if f.OSDZSpeedMax < f.OSDZSpeed {
		f.OSDZSpeedMax = f.OSDZSpeed
	}

	if len(f.BatteryCellVoltages) > 0 && f.BatteryCellVoltages[0] == 0 && f.BatteryVoltage > 0 {
		f.BatteryIsCellVoltageEstimated = true
		estimate := f.BatteryVoltage / float32(f.BatteryCellNum)
		for i := range f.BatteryCellVoltages {
			f.BatteryCellVoltages[i] = estimate
		}
	}

	if f.BatteryTemperature > f.BatteryMaxTemperature {
		f.BatteryMaxTemperature = f.BatteryTemperature
	}
	if f.BatteryTemperature < f.BatteryMinTemperature || f.BatteryMinTemperature == 0 {
		f.BatteryMinTemperature = f.BatteryTemperature
	}

	var maxVoltage, minVoltage float32
	for i, v := range f.BatteryCellVoltages {
		if i == 0 || v > maxVoltage {
			maxVoltage = v
		}
		if i == 0 || v < minVoltage {
			minVoltage = v
		}
	}
	deviation := round((maxVoltage-minVoltage)*1000.0) / 1000.0
	f.BatteryCellVoltageDeviation = deviation
	if deviation > f.BatteryMaxCellVoltageDeviation {
		f.BatteryMaxCellVoltageDeviation = deviation
	}
}

// RecordsToFrames normalizes a decoded record stream into one Frame per OSD
// record. Every other record type updates the in-progress frame in place;
// details seeds the per-frame DETAILS.* fields, and its product type sizes
// the battery cell array.
func RecordsToFrames(records []record.Record, details layout.Details) []Frame {
	frames := make([]Frame, 0, len(records))

	cellNum := details.ProductType.BatteryCellNum()
	cur := Frame{
		BatteryCellNum:                cellNum,
		BatteryCellVoltages:           make([]float32, cellNum),
		BatteryIsCellVoltageEstimated: true,
	}
	frameIndex := 0

	for _, rec := range records {
		switch rec.Kind {
		case record.KindOSD:
			osd := rec.OSD

			if frameIndex > 0 {
				cur.finalize()
				frames = append(frames, cur)
				cur.reset()
			}

			cur.DetailsTotalTime = float32(details.TotalTime)
			cur.DetailsTotalDistance = details.TotalDistance
			cur.DetailsMaxHeight = details.MaxHeight
			cur.DetailsMaxHorizontalSpeed = details.MaxHorizontalSpeed
			cur.DetailsMaxVerticalSpeed = details.MaxVerticalSpeed
			cur.DetailsPhotoNum = details.CaptureNum
			cur.DetailsVideoTime = details.VideoTime
			cur.DetailsAircraftName = details.AircraftName
			cur.DetailsAircraftSN = details.AircraftSN
			cur.DetailsCameraSN = details.CameraSN
			cur.DetailsRcSN = details.RcSN
			platform := details.AppPlatform
			cur.DetailsAppPlatform = &platform
			cur.DetailsAppVersion = details.AppVersion

			cur.OSDFlyTime = osd.FlyTime
			cur.OSDLatitude = osd.Latitude
			cur.OSDLongitude = osd.Longitude
			// The on-disk altitude is relative to the home point; correct it
			// to absolute once a home altitude has been established.
			cur.OSDAltitude = osd.Altitude + cur.HomeAltitude
			cur.OSDHeight = osd.Altitude
			cur.OSDVpsHeight = osd.SWaveHeight
			cur.OSDXSpeed = osd.SpeedX
			cur.OSDYSpeed = osd.SpeedY
			cur.OSDZSpeed = osd.SpeedZ
			cur.OSDPitch = osd.Pitch
			cur.OSDYaw = osd.Yaw
			cur.OSDRoll = osd.Roll

			flightMode := osd.FlightMode
			if cur.OSDFlycState == nil || *cur.OSDFlycState != flightMode {
				cur.AppTip = appendMessage(cur.AppTip, "Flight mode changed to "+flightMode.String()+".")
			}
			cur.OSDFlycState = &flightMode

			if osd.AppCommand.Raw() == 0 {
				cur.OSDFlycCommand = nil
			} else {
				cmd := osd.AppCommand
				cur.OSDFlycCommand = &cmd
			}
			action := osd.FlightAction
			cur.OSDFlightAction = &action
			cur.OSDGPSNum = osd.GpsNum
			cur.OSDGPSLevel = osd.GpsLevel
			cur.OSDIsGPSUsed = osd.IsGpsValid
			nonGPS := osd.NonGpsCause
			cur.OSDNonGPSCause = &nonGPS
			droneType := osd.DroneType
			cur.OSDDroneType = &droneType
			cur.OSDIsSwaveWork = osd.IsSwaveWork
			cur.OSDWaveError = osd.WaveError
			goHome := osd.GoHomeStatus
			cur.OSDGoHomeStatus = &goHome
			batteryType := osd.BatteryType
			cur.OSDBatteryType = &batteryType
			cur.OSDIsOnGround = osd.GroundOrSky.String() == "Ground"
			cur.OSDIsMotorOn = osd.IsMotorUp
			cur.OSDIsMotorBlocked = osd.IsMotorBlocked
			motorFail := osd.MotorStartFailedCause
			cur.OSDMotorStartFailedCause = &motorFail
			cur.OSDIsImuPreheated = osd.IsImuPreheated
			imuFail := osd.ImuInitFailReason
			cur.OSDImuInitFailReason = &imuFail
			cur.OSDIsAcceletorOverRange = osd.IsAcceletorOverRange
			cur.OSDIsBarometerDeadInAir = osd.IsBarometerDeadInAir
			cur.OSDIsCompassError = osd.IsCompassError
			cur.OSDIsGoHomeHeightModified = osd.IsGoHomeHeightModified
			cur.OSDCanIOCWork = osd.CanIocWork
			cur.OSDIsNotEnoughForce = osd.IsNotEnoughForce
			cur.OSDIsOutOfLimit = osd.IsOutOfLimit
			cur.OSDIsPropellerCatapult = osd.IsPropellerCatapult
			cur.OSDIsVibrating = osd.IsVibrating
			cur.OSDIsVisionUsed = osd.IsVisionUsed
			cur.OSDVoltageWarning = osd.VoltageWarning

			frameIndex++

		case record.KindGimbal:
			g := rec.Gimbal
			mode := g.Mode
			cur.GimbalMode = &mode
			cur.GimbalPitch = g.Pitch
			cur.GimbalRoll = g.Roll
			cur.GimbalYaw = g.Yaw
			if !cur.GimbalIsPitchAtLimit && g.IsPitchAtLimit {
				cur.AppTip = appendMessage(cur.AppTip, "Gimbal pitch axis endpoint reached.")
			}
			cur.GimbalIsPitchAtLimit = g.IsPitchAtLimit
			if !cur.GimbalIsRollAtLimit && g.IsRollAtLimit {
				cur.AppTip = appendMessage(cur.AppTip, "Gimbal roll axis endpoint reached.")
			}
			cur.GimbalIsRollAtLimit = g.IsRollAtLimit
			if !cur.GimbalIsYawAtLimit && g.IsYawAtLimit {
				cur.AppTip = appendMessage(cur.AppTip, "Gimbal yaw axis endpoint reached.")
			}
			cur.GimbalIsYawAtLimit = g.IsYawAtLimit
			cur.GimbalIsStuck = g.IsStuck

		case record.KindCamera:
			c := rec.Camera
			cur.CameraIsPhoto = c.IsShootingSinglePhoto
			cur.CameraIsVideo = c.IsRecording
			cur.CameraSDCardIsInserted = c.HasSdCard
			state := c.SdCardState
			cur.CameraSDCardState = &state

		case record.KindRC:
			r := rec.RC
			cur.RCAileron = r.Aileron
			cur.RCElevator = r.Elevator
			cur.RCThrottle = r.Throttle
			cur.RCRudder = r.Rudder

		case record.KindCenterBattery:
			b := rec.CenterBattery
			cur.BatteryChargeLevel = b.RelativeCapacity
			cur.BatteryVoltage = b.Voltage
			cur.BatteryCurrentCapacity = uint32(b.CurrentCapacity)
			cur.BatteryFullCapacity = uint32(b.FullCapacity)
			cur.BatteryIsCellVoltageEstimated = false

			cellVoltages := [6]float32{b.VoltageCell1, b.VoltageCell2, b.VoltageCell3, b.VoltageCell4, b.VoltageCell5, b.VoltageCell6}
			for i := 0; i < len(cur.BatteryCellVoltages) && i < len(cellVoltages); i++ {
				cur.BatteryCellVoltages[i] = cellVoltages[i]
			}

			cur.BatteryTemperature = b.Temperature

		case record.KindSmartBattery:
			b := rec.SmartBattery
			cur.BatteryChargeLevel = b.Percent
			cur.BatteryVoltage = b.Voltage

		case record.KindSmartBatteryGroup:
			g := rec.SmartBatteryGroup
			switch g.Kind {
			case record.SmartBatteryGroupDynamic:
				d := g.Dynamic
				// When the aircraft carries more than one battery pack, only
				// the pack at index 1 reports accurate values; every other
				// pack's record is ignored rather than overwriting the frame.
				if details.ProductType.BatteryNum() < 2 || d.Index == 1 {
					cur.BatteryVoltage = d.CurrentVoltage
					cur.BatteryCurrent = d.CurrentCurrent
					cur.BatteryCurrentCapacity = d.RemainedCapacity
					cur.BatteryFullCapacity = d.FullCapacity
					cur.BatteryChargeLevel = d.CapacityPercent
					cur.BatteryTemperature = d.Temperature
				}
			case record.SmartBatteryGroupSingleVoltage:
				sv := g.SingleVoltage
				n := len(cur.BatteryCellVoltages)
				if int(sv.CellCount) < n {
					n = int(sv.CellCount)
				}
				if n > len(sv.CellVoltages) {
					n = len(sv.CellVoltages)
				}
				cur.BatteryIsCellVoltageEstimated = false
				for i := 0; i < n; i++ {
					cur.BatteryCellVoltages[i] = sv.CellVoltages[i]
				}
				// Static battery info carries nothing the frame tracks.
			}

		case record.KindOFDM:
			o := rec.OFDM
			signal := o.SignalPercent
			if o.IsUp {
				cur.RCUplinkSignal = &signal
			} else {
				cur.RCDownlinkSignal = &signal
			}

		case record.KindCustom:
			cur.CustomDateTime = rec.Custom.UpdateTimeStamp

		case record.KindHome:
			h := rec.Home
			cur.HomeLatitude = h.Latitude
			cur.HomeLongitude = h.Longitude
			// The first Home record establishes the correction baseline for
			// any OSD altitude already recorded in this frame.
			if cur.HomeAltitude == 0 {
				cur.OSDAltitude += h.Altitude
			}
			cur.HomeAltitude = h.Altitude
			cur.HomeHeightLimit = h.MaxAllowedHeight
			cur.HomeIsHomeRecord = h.IsHomeRecord
			goHomeMode := h.GoHomeMode
			cur.HomeGoHomeMode = &goHomeMode
			cur.HomeIsDynamicHomePointEnabled = h.IsDynamicHomePointEnabled
			cur.HomeIsNearDistanceLimit = h.IsNearDistanceLimit
			cur.HomeIsNearHeightLimit = h.IsNearHeightLimit
			cur.HomeIsCompassCalibrating = h.IsCompassAdjust
			if h.IsCompassAdjust {
				state := h.CompassState
				cur.HomeCompassCalibrationState = &state
			}
			cur.HomeIsMultipleModeEnabled = h.IsMultipleModeOpen
			cur.HomeIsBeginnerMode = h.IsBeginnerMode
			cur.HomeIsIOCEnabled = h.IsIocOpen
			if h.IsIocOpen {
				iocMode := h.IocMode
				cur.HomeIOCMode = &iocMode
			}
			cur.HomeGoHomeHeight = h.GoHomeHeight
			if h.IsIocOpen {
				angle := h.IocCourseLockAngle
				cur.HomeIOCCourseLockAngle = &angle
			}
			cur.HomeMaxAllowedHeight = h.MaxAllowedHeight
			cur.HomeCurrentFlightRecordIndex = h.CurrentFlightRecordIndex

		case record.KindRecoverInfo:
			r := rec.RecoverInfo
			productType := r.ProductType
			cur.RecoverAppPlatform = &productType
			cur.RecoverAppVersion = r.AppVersion
			cur.RecoverAircraftName = r.AircraftName
			cur.RecoverAircraftSN = r.AircraftSN
			cur.RecoverCameraSN = r.CameraSN
			cur.RecoverRcSN = r.RcSN
			cur.RecoverBatterySN = r.BatterySN

		case record.KindAppTip:
			cur.AppTip = appendMessage(cur.AppTip, rec.AppTip.Message)

		case record.KindAppWarn:
			cur.AppWarn = appendMessage(cur.AppWarn, rec.AppWarn.Message)

		case record.KindAppSeriousWarn:
			cur.AppWarn = appendMessage(cur.AppWarn, rec.AppSeriousWarn.Message)
		}
	}

	if frameIndex > 0 {
		cur.finalize()
		frames = append(frames, cur)
	}

	return frames
}

func round(v float32) float32 {
	if v < 0 {
		return -round(-v)
	}
	whole := float32(int64(v))
	if v-whole >= 0.5 {
		return whole + 1
	}
	return whole
}
