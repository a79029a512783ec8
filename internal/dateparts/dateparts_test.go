package dateparts

import "testing"

func TestRoundTripDateTime(t *testing.T) {
	s := "2026-03-05T14:30:00Z"
	p, ok := Parse(s, FormatDateTime)
	if !ok {
		t.Fatal("expected parse ok")
	}
	if got := ToString(p); got != s {
		t.Errorf("round trip: got %q, want %q", got, s)
	}
}

func TestParseDateDefaultsTimeToMidnight(t *testing.T) {
	p, ok := Parse("2026-03-05", FormatDateTime)
	if !ok {
		t.Fatal("expected parse ok")
	}
	if p.Values[3] != 0 || p.Values[4] != 0 {
		t.Errorf("expected 00:00, got %d:%d", p.Values[3], p.Values[4])
	}
}

func TestAdjustMonthWraps(t *testing.T) {
	p := Parts{Values: []int{2026, 12, 15}, Format: FormatDate}
	p = Adjust(p, 1, 1)
	if p.Values[1] != 1 {
		t.Errorf("expected month to wrap to 1, got %d", p.Values[1])
	}
}

func TestAdjustYearClamps(t *testing.T) {
	p := Parts{Values: []int{2100, 1, 1}, Format: FormatDate}
	p = Adjust(p, 0, 1)
	if p.Values[0] != 2100 {
		t.Errorf("expected year clamped at 2100, got %d", p.Values[0])
	}
	p = Parts{Values: []int{1900, 1, 1}, Format: FormatDate}
	p = Adjust(p, 0, -1)
	if p.Values[0] != 1900 {
		t.Errorf("expected year clamped at 1900, got %d", p.Values[0])
	}
}

func TestAdjustClampsDayOnMonthChange(t *testing.T) {
	p := Parts{Values: []int{2026, 1, 31}, Format: FormatDate}
	p = Adjust(p, 1, 1) // move to february
	if p.Values[2] > 28 {
		t.Errorf("expected day clamped for february, got %d", p.Values[2])
	}
}

func TestDaysInMonthLeapYear(t *testing.T) {
	if DaysInMonth(2024, 2) != 29 {
		t.Error("2024 is a leap year, expected 29 days in february")
	}
	if DaysInMonth(2023, 2) != 28 {
		t.Error("2023 is not a leap year, expected 28 days in february")
	}
	if DaysInMonth(2000, 2) != 29 {
		t.Error("2000 is divisible by 400, expected leap year")
	}
	if DaysInMonth(1900, 2) != 28 {
		t.Error("1900 is divisible by 100 but not 400, expected non-leap")
	}
}

func TestAdjustInverseRestoresParts(t *testing.T) {
	p := Parts{Values: []int{2026, 6, 15}, Format: FormatDate}
	up := Adjust(p, 2, 1)
	down := Adjust(up, 2, -1)
	if down.Values[2] != p.Values[2] {
		t.Errorf("day adjust+inverse: got %d, want %d", down.Values[2], p.Values[2])
	}
}
