package weather

import "testing"

// =========================================================================
// WMO CODE TABLE TESTS
// =========================================================================

func TestDescribe(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, "Clear Sky"},
		{3, "Overcast"},
		{61, "Slight Rain"},
		{95, "Thunderstorm"},
		{99, "Thunderstorm with Heavy Hail"},
		{42, "Unknown"},  // gap in the WMO table
		{999, "Unknown"}, // out of range entirely
		{-1, "Unknown"},
	}

	for _, tc := range cases {
		if got := describe(tc.code); got != tc.want {
			t.Errorf("describe(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestIconFor(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, "01d"},
		{2, "02d"},
		{3, "03d"},
		{45, "50d"},
		{55, "10d"},
		{63, "10d"},
		{82, "10d"},
		{77, "13d"},
		{86, "13d"},
		{96, "11d"},
	}

	for _, tc := range cases {
		if got := iconFor(tc.code); got != tc.want {
			t.Errorf("iconFor(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestIconFor_UnknownCodeIsClearSky(t *testing.T) {
	// Unknown codes pair an "Unknown" description with the clear-sky icon.
	// That mismatch is deliberate (the frontend always has an icon to show),
	// so pin it down.
	if got := iconFor(999); got != "01d" {
		t.Errorf("iconFor(999) = %q, want %q", got, "01d")
	}
	if got := describe(999); got != "Unknown" {
		t.Errorf("describe(999) = %q, want %q", got, "Unknown")
	}
}

func TestEveryDescribedCodeHasNonDefaultIconOrIsClear(t *testing.T) {
	// Every code in the description table except clear sky itself must map
	// to a non-clear icon; a "10d" showing up for snow means the switch and
	// the map drifted apart.
	for code := range wmoDescriptions {
		icon := iconFor(code)
		if code != 0 && icon == "01d" {
			t.Errorf("code %d (%s) fell through to the clear-sky icon", code, wmoDescriptions[code])
		}
	}
}
