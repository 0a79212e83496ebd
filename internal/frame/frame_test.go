package frame

import (
	"testing"

	"github.com/kevincowleys/dji-log-parser/internal/layout"
	"github.com/kevincowleys/dji-log-parser/internal/record"
)

func osdRecord(altitude float32) record.Record {
	o := record.OSD{Altitude: altitude}
	return record.Record{Kind: record.KindOSD, OSD: &o}
}

func TestRecordsToFramesOneFramePerOSD(t *testing.T) {
	records := []record.Record{osdRecord(10), osdRecord(20), osdRecord(30)}
	details := layout.Details{AircraftName: "Mavic"}

	frames := RecordsToFrames(records, details)
	if len(frames) != 3 {
		t.Fatalf("len(frames) = %d, want 3", len(frames))
	}
	for i, want := range []float32{10, 20, 30} {
		if frames[i].OSDHeight != want {
			t.Errorf("frames[%d].OSDHeight = %v, want %v", i, frames[i].OSDHeight, want)
		}
		if frames[i].DetailsAircraftName != "Mavic" {
			t.Errorf("frames[%d].DetailsAircraftName = %q, want %q", i, frames[i].DetailsAircraftName, "Mavic")
		}
	}
}

func TestRecordsToFramesEmptyInputProducesNoFrames(t *testing.T) {
	frames := RecordsToFrames(nil, layout.Details{})
	if len(frames) != 0 {
		t.Errorf("len(frames) = %d, want 0", len(frames))
	}
}

func TestGimbalStateCarriesForwardAcrossFrames(t *testing.T) {
	gimbal := record.Gimbal{Pitch: 5, Roll: 1, Yaw: -2}
	records := []record.Record{
		osdRecord(0),
		{Kind: record.KindGimbal, Gimbal: &gimbal},
		osdRecord(1),
		osdRecord(2),
	}

	frames := RecordsToFrames(records, layout.Details{})
	if len(frames) != 3 {
		t.Fatalf("len(frames) = %d, want 3", len(frames))
	}
	if frames[0].GimbalPitch != 5 {
		t.Errorf("frames[0].GimbalPitch = %v, want 5 (the Gimbal record follows frame 0's OSD and folds into it)", frames[0].GimbalPitch)
	}
	if frames[1].GimbalPitch != 5 || frames[2].GimbalPitch != 5 {
		t.Errorf("GimbalPitch did not carry forward: frames[1]=%v frames[2]=%v, want 5", frames[1].GimbalPitch, frames[2].GimbalPitch)
	}
}

func TestCameraFieldsResetEachFrame(t *testing.T) {
	camera := record.Camera{IsShootingSinglePhoto: true, IsRecording: true}
	records := []record.Record{
		osdRecord(0),
		{Kind: record.KindCamera, Camera: &camera},
		osdRecord(1), // only CAMERA.isPhoto should reset to false here
	}

	frames := RecordsToFrames(records, layout.Details{})
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2", len(frames))
	}
	if !frames[0].CameraIsPhoto || !frames[0].CameraIsVideo {
		t.Errorf("frames[0] camera flags = %+v, want both true", frames[0])
	}
	if frames[1].CameraIsPhoto {
		t.Errorf("frames[1].CameraIsPhoto = true, want false (reset on new OSD frame)")
	}
	if !frames[1].CameraIsVideo {
		t.Errorf("frames[1].CameraIsVideo = false, want true (recording state carries forward, not reset)")
	}
}

func TestAppTipAndWarnResetEachFrame(t *testing.T) {
	tip := record.AppTip{Message: "hello"}
	warn := record.AppWarn{Message: "careful"}
	records := []record.Record{
		osdRecord(0),
		{Kind: record.KindAppTip, AppTip: &tip},
		{Kind: record.KindAppWarn, AppWarn: &warn},
		osdRecord(1),
	}

	frames := RecordsToFrames(records, layout.Details{})
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2", len(frames))
	}
	if frames[0].AppTip != "hello" {
		t.Errorf("frames[0].AppTip = %q, want %q", frames[0].AppTip, "hello")
	}
	if frames[0].AppWarn != "careful" {
		t.Errorf("frames[0].AppWarn = %q, want %q", frames[0].AppWarn, "careful")
	}
	if frames[1].AppTip != "" || frames[1].AppWarn != "" {
		t.Errorf("frames[1] tip/warn = %q/%q, want both empty after reset", frames[1].AppTip, frames[1].AppWarn)
	}
}

func TestHomeAltitudeCorrectsAlreadyRecordedOSDAltitude(t *testing.T) {
	home := record.Home{Altitude: 100}
	records := []record.Record{
		osdRecord(10), // recorded before any Home record: altitude relative to home
		{Kind: record.KindHome, Home: &home},
		osdRecord(20), // recorded after: Home's baseline already established
	}

	frames := RecordsToFrames(records, layout.Details{})
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2", len(frames))
	}
	if frames[0].OSDAltitude != 10+100 {
		t.Errorf("frames[0].OSDAltitude = %v, want %v (corrected retroactively)", frames[0].OSDAltitude, 10+100)
	}
	if frames[1].OSDAltitude != 20+100 {
		t.Errorf("frames[1].OSDAltitude = %v, want %v", frames[1].OSDAltitude, 20+100)
	}
}

func TestCenterBatteryUpdatesCellVoltageDeviation(t *testing.T) {
	battery := record.CenterBattery{
		VoltageCell1: 4.0,
		VoltageCell2: 3.8,
		VoltageCell3: 4.0,
		VoltageCell4: 3.9,
	}
	records := []record.Record{
		osdRecord(0),
		{Kind: record.KindCenterBattery, CenterBattery: &battery},
	}

	frames := RecordsToFrames(records, layout.Details{})
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}
	f := frames[0]
	wantDeviation := float32(0.2) // max 4.0 - min 3.8
	if diff := f.BatteryCellVoltageDeviation - wantDeviation; diff > 0.001 || diff < -0.001 {
		t.Errorf("BatteryCellVoltageDeviation = %v, want ~%v", f.BatteryCellVoltageDeviation, wantDeviation)
	}
	if f.BatteryMaxCellVoltageDeviation != f.BatteryCellVoltageDeviation {
		t.Errorf("BatteryMaxCellVoltageDeviation = %v, want it to match the single observed deviation %v", f.BatteryMaxCellVoltageDeviation, f.BatteryCellVoltageDeviation)
	}
}

func TestSmartBatteryGroupDynamicIgnoresNonIndexOneOnDualBatteryAircraft(t *testing.T) {
	details := layout.Details{ProductType: layout.ParseProductType(1)} // Inspire1: 2 packs

	first := record.SmartBatteryGroup{Kind: record.SmartBatteryGroupDynamic, Dynamic: record.SmartBatteryDynamic{Index: 1, CurrentVoltage: 22.0}}
	second := record.SmartBatteryGroup{Kind: record.SmartBatteryGroupDynamic, Dynamic: record.SmartBatteryDynamic{Index: 2, CurrentVoltage: 99.0}}
	records := []record.Record{
		osdRecord(0),
		{Kind: record.KindSmartBatteryGroup, SmartBatteryGroup: &first},
		{Kind: record.KindSmartBatteryGroup, SmartBatteryGroup: &second},
	}

	frames := RecordsToFrames(records, details)
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}
	if frames[0].BatteryVoltage != 22.0 {
		t.Errorf("BatteryVoltage = %v, want 22 (index 2 pack on a dual-battery aircraft must be ignored)", frames[0].BatteryVoltage)
	}
}

func TestSmartBatteryGroupDynamicAppliesAnyIndexOnSingleBatteryAircraft(t *testing.T) {
	details := layout.Details{ProductType: layout.ParseProductType(13)} // MavicPro: 1 pack

	dyn := record.SmartBatteryGroup{Kind: record.SmartBatteryGroupDynamic, Dynamic: record.SmartBatteryDynamic{Index: 0, CurrentVoltage: 11.1}}
	records := []record.Record{
		osdRecord(0),
		{Kind: record.KindSmartBatteryGroup, SmartBatteryGroup: &dyn},
	}

	frames := RecordsToFrames(records, details)
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}
	if frames[0].BatteryVoltage != 11.1 {
		t.Errorf("BatteryVoltage = %v, want 11.1 (single-battery aircraft applies regardless of index)", frames[0].BatteryVoltage)
	}
}

func TestBatteryCellVoltagesSizedFromProductType(t *testing.T) {
	details := layout.Details{ProductType: layout.ParseProductType(70)} // Matrice300RTK: 12 cells

	frames := RecordsToFrames([]record.Record{osdRecord(0)}, details)
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}
	if got := len(frames[0].BatteryCellVoltages); got != 12 {
		t.Errorf("len(BatteryCellVoltages) = %d, want 12", got)
	}
	if frames[0].BatteryCellNum != 12 {
		t.Errorf("BatteryCellNum = %d, want 12", frames[0].BatteryCellNum)
	}
}

func TestCenterBatteryCopiesAllSixCells(t *testing.T) {
	details := layout.Details{ProductType: layout.ParseProductType(6)} // Matrice100: 6 cells
	battery := record.CenterBattery{
		VoltageCell1: 4.0, VoltageCell2: 3.9, VoltageCell3: 3.8,
		VoltageCell4: 3.7, VoltageCell5: 3.6, VoltageCell6: 3.5,
	}
	records := []record.Record{
		osdRecord(0),
		{Kind: record.KindCenterBattery, CenterBattery: &battery},
	}

	frames := RecordsToFrames(records, details)
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}
	want := []float32{4.0, 3.9, 3.8, 3.7, 3.6, 3.5}
	got := frames[0].BatteryCellVoltages
	if len(got) != len(want) {
		t.Fatalf("len(BatteryCellVoltages) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("BatteryCellVoltages[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFlightModeChangeAddsAppTip(t *testing.T) {
	osd1 := record.OSD{FlightMode: record.FlightMode{}}
	records := []record.Record{
		{Kind: record.KindOSD, OSD: &osd1},
	}
	frames := RecordsToFrames(records, layout.Details{})
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}
	// The very first OSD record always transitions from a nil flyc state,
	// so it always reports a mode change.
	if frames[0].AppTip == "" {
		t.Errorf("expected the first OSD record to report a flight mode change tip")
	}
}
