package weather

// WMO weather interpretation codes → human description. This is a closed,
// fixed table: Open-Meteo reports conditions as these numeric codes and the
// API exposes text instead.
var wmoDescriptions = map[int]string{
	0:  "Clear Sky",
	1:  "Mainly Clear",
	2:  "Partly Cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing Rime Fog",
	51: "Light Drizzle",
	53: "Moderate Drizzle",
	55: "Dense Drizzle",
	61: "Slight Rain",
	63: "Moderate Rain",
	65: "Heavy Rain",
	71: "Slight Snow",
	73: "Moderate Snow",
	75: "Heavy Snow",
	77: "Snow Grains",
	80: "Slight Rain Showers",
	81: "Moderate Rain Showers",
	82: "Violent Rain Showers",
	85: "Slight Snow Showers",
	86: "Heavy Snow Showers",
	95: "Thunderstorm",
	96: "Thunderstorm with Slight Hail",
	99: "Thunderstorm with Heavy Hail",
}

// describe maps a WMO code to its description. Codes outside the table map
// to "Unknown".
func describe(code int) string {
	if d, ok := wmoDescriptions[code]; ok {
		return d
	}
	return "Unknown"
}

// iconFor maps a WMO code to an icon tag (OpenWeatherMap-style icon codes,
// which the frontend's icon set is keyed by).
//
// Unknown codes fall through to "01d", the clear-sky icon. Pairing an
// "Unknown" description with a clear-sky icon is an acknowledged
// imprecision kept for frontend compatibility; the tests pin it down.
func iconFor(code int) string {
	switch {
	case code == 0:
		return "01d"
	case code == 1 || code == 2:
		return "02d"
	case code == 3:
		return "03d"
	case code == 45 || code == 48:
		return "50d"
	case code == 51 || code == 53 || code == 55,
		code == 61 || code == 63 || code == 65,
		code == 80 || code == 81 || code == 82:
		return "10d"
	case code == 71 || code == 73 || code == 75 || code == 77,
		code == 85 || code == 86:
		return "13d"
	case code == 95 || code == 96 || code == 99:
		return "11d"
	default:
		return "01d"
	}
}
