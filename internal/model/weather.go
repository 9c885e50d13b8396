package model

// Location is a geocoded place resolved from a free-text query.
//
// Photon returns discrete name/country/state fields; Nominatim only returns a
// composite display string, which the resolver splits into these fields. Both
// providers end up in this one shape so callers never care which answered.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Type    string  `json:"type"` // provider-supplied place-type tag, e.g. "city", "village"
}

// WeatherSnapshot is the normalized current-conditions record.
//
// All values are metric, straight from Open-Meteo: °C for temperatures,
// hPa for pressure, provider wind units passed through. Temperature,
// feels-like and wind speed are rounded to 1 decimal before exposure;
// humidity and pressure pass through as the provider reports them.
type WeatherSnapshot struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	Country     string  `json:"country"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

// HourlyPoint is one entry of the 48-hour forecast.
//
// Entries are produced in provider order (chronological) and the series is
// truncated to 48 entries — a 2-day horizon.
type HourlyPoint struct {
	Dt          int64   `json:"dt"`   // unix timestamp
	Time        string  `json:"time"` // "03:04 PM"
	Date        string  `json:"date"` // "Mon, Jan 02"
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Pop         float64 `json:"pop"` // precipitation probability, %
	WindSpeed   float64 `json:"wind_speed"`
}

// DailyPoint is one entry of the 7-day forecast.
//
// Humidity is always 0: Open-Meteo does not expose humidity at daily
// granularity, and we preserve that gap rather than derive a number.
// TempAvg is (max+min)/2.
type DailyPoint struct {
	Dt          int64   `json:"dt"`
	Date        string  `json:"date"` // "Mon, Jan 02"
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	TempAvg     float64 `json:"temp_avg"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Pop         float64 `json:"pop"`
	WindSpeed   float64 `json:"wind_speed"`
}

// HistoryRecord is one saved weather query as stored in the history sheet.
// Numeric cells come back from the Sheets API as strings; the sheets package
// parses them leniently (unparseable cells become 0).
type HistoryRecord struct {
	Timestamp   string  `json:"timestamp"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
}
