package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"123e4567-e89b-42d3-a456-426614174000",
		"123E4567-E89B-42D3-A456-426614174000",
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
	}
	invalid := []string{
		"123e4567e89b42d3a456426614174000",     // missing dashes
		"g23e4567-e89b-42d3-a456-426614174000", // invalid hex
		"123e4567-e89b-42d3-c456-426614174000", // invalid variant
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"01-01-2023", "2023/01/01", "2023-13-01", "2023-02-30", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input      string
		ok         bool
		hour, min  int
	}{
		{"09:00", true, 9, 0},
		{"09:00:30", true, 9, 0},
		{"23:59", true, 23, 59},
		{"24:00", false, 0, 0},
		{"9am", false, 0, 0},
		{"", false, 0, 0},
	}
	for _, c := range cases {
		got, ok := ParseTimeOfDay(c.input)
		if ok != c.ok {
			t.Errorf("ParseTimeOfDay(%q) ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if ok && (got.Hour() != c.hour || got.Minute() != c.min) {
			t.Errorf("ParseTimeOfDay(%q) = %02d:%02d, want %02d:%02d", c.input, got.Hour(), got.Minute(), c.hour, c.min)
		}
	}
}

func TestIsValidLatitudeLongitude(t *testing.T) {
	if !IsValidLatitude(11.5564) || !IsValidLatitude(-90) || !IsValidLatitude(90) {
		t.Error("expected valid latitudes to pass")
	}
	if IsValidLatitude(90.1) || IsValidLatitude(-91) {
		t.Error("expected out-of-range latitudes to fail")
	}
	if !IsValidLongitude(104.9282) || !IsValidLongitude(-180) || !IsValidLongitude(180) {
		t.Error("expected valid longitudes to pass")
	}
	if IsValidLongitude(180.1) || IsValidLongitude(-181) {
		t.Error("expected out-of-range longitudes to fail")
	}
}

func TestIsValidWeekday(t *testing.T) {
	for d := 1; d <= 7; d++ {
		if !IsValidWeekday(d) {
			t.Errorf("IsValidWeekday(%d) = false, want true", d)
		}
	}
	for _, d := range []int{0, 8, -1} {
		if IsValidWeekday(d) {
			t.Errorf("IsValidWeekday(%d) = true, want false", d)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "shift_start", Message: "shift_start must be a valid time (HH:MM)"},
	}

	if errs.Error() != "name: name is required; shift_start: shift_start must be a valid time (HH:MM)" {
		t.Errorf("unexpected Error(): %q", errs.Error())
	}

	m := errs.ToMap()
	if len(m) != 2 || m["name"] != "name is required" {
		t.Errorf("unexpected ToMap(): %v", m)
	}
}
