package keychain

import "testing"

func TestFeaturePointString(t *testing.T) {
	if got := BaseFeature.String(); got != "FR_Standardization_Feature_Base_1" {
		t.Errorf("BaseFeature.String() = %q", got)
	}
	if got := SecurityFeature.String(); got != "FR_Standardization_Feature_Security_15" {
		t.Errorf("SecurityFeature.String() = %q", got)
	}
}

func TestFeaturePointTextRoundTrip(t *testing.T) {
	for fp := BaseFeature; fp <= SecurityFeature; fp++ {
		text, err := fp.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", fp, err)
		}
		var got FeaturePoint
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != fp {
			t.Errorf("round trip %d -> %q -> %d", fp, text, got)
		}
	}
}

func TestFromRecordTypeVersion13SpecialCase(t *testing.T) {
	cases := []struct {
		recordType byte
		version    byte
		want       FeaturePoint
	}{
		{3, 13, BaseFeature},
		{3, 14, GimbalFeature},
		{4, 13, BaseFeature},
		{4, 7, RCFeature},
		{7, 13, BaseFeature},
		{7, 14, BatteryFeature},
		{25, 13, BaseFeature},
		{25, 14, CameraFeature},
		{11, 13, BaseFeature},
		{11, 14, RCFeature},
		{9, 14, DJIFlyCustomFeature},
		{255, 14, PlaintextFeature}, // unlisted record type defaults
	}
	for _, c := range cases {
		got := FromRecordType(c.recordType, c.version)
		if got != c.want {
			t.Errorf("FromRecordType(%d, %d) = %v, want %v", c.recordType, c.version, got, c.want)
		}
	}
}

// TestFromRecordTypeExhaustive transcribes every arm of the original
// from_record_type match (feature_point.rs) and asserts the exact bucket it
// produces, at both version 13 (the encrypted-but-not-yet-split version,
// where several types fold into BaseFeature/AfterSalesFeature) and version 14
// (where those same types resolve to their dedicated feature).
func TestFromRecordTypeExhaustive(t *testing.T) {
	const v13 = 13
	const vOther = 14

	cases := []struct {
		recordType byte
		version    byte
		want       FeaturePoint
	}{
		{1, vOther, BaseFeature},
		{2, vOther, BaseFeature},
		{3, v13, BaseFeature},
		{3, vOther, GimbalFeature},
		{4, v13, BaseFeature},
		{4, vOther, RCFeature},
		{5, vOther, DJIFlyCustomFeature},
		{5, v13, DJIFlyCustomFeature},
		{6, vOther, BaseFeature},
		{7, v13, BaseFeature},
		{7, vOther, BatteryFeature},
		{8, v13, BaseFeature},
		{8, vOther, BatteryFeature},
		{9, vOther, DJIFlyCustomFeature},
		{10, vOther, DJIFlyCustomFeature},
		{11, v13, BaseFeature},
		{11, vOther, RCFeature},
		{12, vOther, AfterSalesFeature},
		{13, vOther, BaseFeature},
		{14, vOther, BaseFeature},
		{15, vOther, BaseFeature},
		{16, vOther, AfterSalesFeature},
		{17, vOther, VisionFeature},
		{18, vOther, VisionFeature},
		{19, vOther, AfterSalesFeature},
		{20, vOther, DJIFlyCustomFeature},
		{21, vOther, AgricultureFeature},
		{22, v13, AfterSalesFeature},
		{22, vOther, BatteryFeature},
		{24, vOther, DJIFlyCustomFeature},
		{25, v13, BaseFeature},
		{25, vOther, CameraFeature},
		{26, vOther, AfterSalesFeature},
		{27, vOther, AfterSalesFeature},
		{28, v13, AfterSalesFeature},
		{28, vOther, FlySafeFeature},
		{29, v13, BaseFeature},
		{29, vOther, RCFeature},
		{30, vOther, DJIFlyCustomFeature},
		{31, vOther, WaypointFeature},
		{32, vOther, WaypointFeature},
		{33, v13, BaseFeature},
		{33, vOther, RCFeature},
		{34, vOther, WaypointFeature},
		{35, vOther, WaypointFeature},
		{36, vOther, WaypointFeature},
		{38, vOther, WaypointFeature},
		{39, vOther, WaypointFeature},
		{40, v13, BaseFeature},
		{40, vOther, BaseFeature},
		{41, vOther, AgricultureFeature},
		{43, vOther, AgricultureFeature},
		{44, vOther, AgricultureFeature},
		{45, vOther, AgricultureFeature},
		{46, vOther, AgricultureFeature},
		{47, vOther, AgricultureFeature},
		{48, vOther, AgricultureFeature},
		{49, vOther, AirLinkFeature},
		{50, vOther, PlaintextFeature},
		{51, v13, AfterSalesFeature},
		{51, vOther, FlySafeFeature},
		{52, v13, AfterSalesFeature},
		{52, vOther, FlySafeFeature},
		{53, v13, AfterSalesFeature},
		{53, vOther, FlightHubFeature},
		{54, vOther, DJIFlyCustomFeature},
		{55, vOther, SecurityFeature},
		{56, vOther, PlaintextFeature},
		{58, vOther, BaseFeature},
		{59, vOther, BaseFeature},
		{62, vOther, RCFeature},
		{63, vOther, BaseFeature},
		{23, vOther, PlaintextFeature}, // unlisted in the original match
		{37, vOther, PlaintextFeature}, // unlisted in the original match
		{42, vOther, PlaintextFeature}, // unlisted in the original match
		{57, vOther, PlaintextFeature}, // unlisted in the original match
		{60, vOther, PlaintextFeature}, // unlisted in the original match
		{99, vOther, PlaintextFeature}, // unlisted in the original match
	}

	for _, c := range cases {
		got := FromRecordType(c.recordType, c.version)
		if got != c.want {
			t.Errorf("FromRecordType(%d, %d) = %v, want %v", c.recordType, c.version, got, c.want)
		}
	}
}

func TestKeychainQueueAdvance(t *testing.T) {
	g1 := FromFeaturePoints([]FeaturePointEntry{{FeaturePoint: BaseFeature, IV: []byte("iv1"), Key: []byte("k1")}})
	g2 := FromFeaturePoints([]FeaturePointEntry{{FeaturePoint: BaseFeature, IV: []byte("iv2"), Key: []byte("k2")}})

	q := NewQueue([]Keychain{g1, g2})
	head := q.Head()
	if e, ok := head.Get(BaseFeature); !ok || string(e.IV) != "iv1" {
		t.Fatalf("expected first group active, got %+v", e)
	}

	next := q.Advance()
	if e, ok := next.Get(BaseFeature); !ok || string(e.IV) != "iv2" {
		t.Fatalf("expected second group active, got %+v", e)
	}

	exhausted := q.Advance()
	if len(exhausted) != 0 {
		t.Fatalf("expected empty keychain after exhausting queue, got %+v", exhausted)
	}
}

func TestRequestBuilderGrouping(t *testing.T) {
	b := NewBuilder(14, 3)
	b.PushCiphertext(BaseFeature, "C1")
	b.PushCiphertext(BaseFeature, "C2")
	b.CloseGroup()
	b.PushCiphertext(BaseFeature, "C3")

	req := b.Request()
	if req.Version != 14 || req.Department != 3 {
		t.Fatalf("unexpected request header: %+v", req)
	}
	if len(req.KeychainArray) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(req.KeychainArray))
	}
	if len(req.KeychainArray[0]) != 2 || len(req.KeychainArray[1]) != 1 {
		t.Fatalf("unexpected group sizes: %+v", req.KeychainArray)
	}
	if req.KeychainArray[0][0].AesCiphertext != "C1" || req.KeychainArray[1][0].AesCiphertext != "C3" {
		t.Fatalf("unexpected ciphertext assignment: %+v", req.KeychainArray)
	}
}
