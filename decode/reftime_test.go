package decode

import "testing"

func TestStartTime(t *testing.T) {
	hdr := Header{StartDate: "02.01.20", StartTime: "23.15.30"}

	start, jd, err := StartTime(hdr)
	if err != nil {
		t.Fatalf("StartTime: %v", err)
	}

	if start.Year() != 2020 || start.Month().String() != "January" || start.Day() != 2 {
		t.Errorf("date = %v, want 2020-01-02", start)
	}
	if start.Hour() != 23 || start.Minute() != 15 || start.Second() != 30 {
		t.Errorf("time = %v, want 23:15:30", start)
	}
	if jd <= 0 {
		t.Errorf("Julian day = %v, want > 0", jd)
	}
}

func TestStartTimeTwoDigitYearConvention(t *testing.T) {
	hdr := Header{StartDate: "15.06.90", StartTime: "00.00.00"}
	start, _, err := StartTime(hdr)
	if err != nil {
		t.Fatalf("StartTime: %v", err)
	}
	if start.Year() != 1990 {
		t.Errorf("year = %d, want 1990 (yy=90 predates the 2000 cutover)", start.Year())
	}

	hdr2 := Header{StartDate: "15.06.10", StartTime: "00.00.00"}
	start2, _, err := StartTime(hdr2)
	if err != nil {
		t.Fatalf("StartTime: %v", err)
	}
	if start2.Year() != 2010 {
		t.Errorf("year = %d, want 2010 (yy=10 is post-2000)", start2.Year())
	}
}

func TestStartTimeMalformed(t *testing.T) {
	hdr := Header{StartDate: "bad", StartTime: "00.00.00"}
	if _, _, err := StartTime(hdr); err == nil {
		t.Fatal("expected an error for a malformed start date")
	}
}
