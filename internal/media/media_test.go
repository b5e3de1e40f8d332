package media

import "testing"

func TestRescale(t *testing.T) {
	cases := []struct {
		ts       int64
		from, to Rational
		want     int64
	}{
		{90000, Rational{1, 90000}, TimeBaseQ, 1000000},
		{1, Rational{1, 3}, Rational{1, 2}, 1},
		{-1, Rational{1, 3}, Rational{1, 2}, -1},
		{3, Rational{1, 2}, Rational{1, 1}, 2},
		{NoPTS, Rational{1, 2}, Rational{1, 1}, NoPTS},
	}
	for _, tc := range cases {
		if got := Rescale(tc.ts, tc.from, tc.to); got != tc.want {
			t.Fatalf("Rescale(%d, %v, %v) = %d, want %d", tc.ts, tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCompare(t *testing.T) {
	if Compare(1, Rational{1, 2}, 500, Rational{1, 1000}) != 0 {
		t.Fatalf("equal instants should compare equal")
	}
	if Compare(1, Rational{1, 2}, 499, Rational{1, 1000}) != 1 {
		t.Fatalf("expected greater")
	}
}

func TestReduce(t *testing.T) {
	if got := (Rational{1920 * 1, 1080 * 1}).Reduce(); got != (Rational{16, 9}) {
		t.Fatalf("got %v", got)
	}
	if got := (Rational{3, -6}).Reduce(); got != (Rational{-1, 2}) {
		t.Fatalf("got %v", got)
	}
}

func TestDictKeepsInsertionOrder(t *testing.T) {
	var d Dict
	d.Set("language", "eng")
	d.Set("title", "main")
	d.Set("language", "fre")
	d.Set("title", "")
	if d.Len() != 1 {
		t.Fatalf("len %d", d.Len())
	}
	if v, ok := d.Get("language"); !ok || v != "fre" {
		t.Fatalf("got %q %v", v, ok)
	}
}

func TestSideDataNames(t *testing.T) {
	if SideDataDisplayMatrix.String() != "Display Matrix" {
		t.Fatalf("packet name %q", SideDataDisplayMatrix.String())
	}
	if SideDataDisplayMatrix.FrameName() != "3x3 displaymatrix" {
		t.Fatalf("frame name %q", SideDataDisplayMatrix.FrameName())
	}
	if SideDataUnknown.String() != "unknown" || SideDataType(1000).FrameName() != "unknown" {
		t.Fatalf("unnamed types must report unknown")
	}
	sd := SideData{Type: SideDataSkipSamples}
	if (FrameSideData{&sd}).TypeName() != "Skip samples" || sd.TypeName() != "Skip Samples" {
		t.Fatalf("typed names")
	}
}

func TestUpdateTimings(t *testing.T) {
	fc := NewFormatContext("x")
	fc.Size = 1000000
	st := fc.AddStream(NewCodecParameters(TypeVideo, "h264"))
	st.StartTime = 90000
	st.Duration = 900000
	fc.UpdateTimings()
	if fc.StartTime != 1000000 || fc.Duration != 10000000 {
		t.Fatalf("start %d duration %d", fc.StartTime, fc.Duration)
	}
	if fc.BitRate != 800000 {
		t.Fatalf("bit rate %d", fc.BitRate)
	}
}
